package domain

// User is a registered principal. The username is the natural key.
//
// Password is stored and compared in plaintext to preserve the service's
// historical verification contract. Placeholder only — a production
// deployment would store a salted hash behind the same repository
// interface without changing any caller.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// Book is a catalog entry keyed by its ISBN. Reviews maps a reviewer's
// username to that user's single review text.
type Book struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// Clone returns a deep copy of the book so callers can hold a snapshot
// without racing against later review writes.
func (b Book) Clone() Book {
	out := b
	out.Reviews = make(map[string]string, len(b.Reviews))
	for user, text := range b.Reviews {
		out.Reviews[user] = text
	}
	return out
}

// Session binds a caller-session identity to a logged-in user. Token is
// the signed session JWT; its embedded expiry claim, not this record,
// decides whether the session is still live.
type Session struct {
	ID       string
	Username string
	Token    string
}

// Credentials is the login/register request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
