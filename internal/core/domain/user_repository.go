package domain

import "context"

// UserRepository defines the data-access contract for registered users.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on the backing
// store directly.
type UserRepository interface {
	// Find returns the user matching the given username.
	// Returns (nil, nil) when no user is found.
	Find(ctx context.Context, username string) (*User, error)

	// IsAvailable returns true when no user with the given username
	// exists yet. Pure read, no side effect.
	IsAvailable(ctx context.Context, username string) (bool, error)

	// Create inserts a new user and reports whether the insert won.
	// The availability check and the insert are atomic: of any set of
	// concurrent Create calls for the same username, exactly one
	// returns true.
	Create(ctx context.Context, username, password string) (bool, error)
}
