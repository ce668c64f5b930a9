package domain

import "context"

// SessionRepository is the server-side session carrier: it maps a
// caller-session identity (the value of the session cookie) to the
// session bound at login.
//
// The carrier does no expiry bookkeeping of its own. Liveness is decided
// by validating the stored token's signed expiry claim, so a stale entry
// for an expired token reads as "no session" even before it is purged.
type SessionRepository interface {
	// Bind stores the session under its ID, overwriting any prior
	// binding for the same caller session. Logging in again never
	// stacks sessions.
	Bind(ctx context.Context, session Session) error

	// Get returns the session bound to the given caller-session ID.
	// Returns (nil, nil) when the ID has no binding.
	Get(ctx context.Context, id string) (*Session, error)
}
