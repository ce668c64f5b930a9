// Package v1 provides catalog and review business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent the caller-facing
// failure conditions of the registered-user subsystem. They should be
// wrapped with context using fmt.Errorf("%w") when returned from
// business logic methods.
//
// Example Usage:
//
//	if user == nil {
//	    return "", fmt.Errorf("authenticate user %q: %w", username, ErrInvalidCredentials)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrMissingCredentials):
//	    c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for the registered-user operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrMissingCredentials indicates username or password was absent
	// from the request. Checked before any registry lookup.
	// HTTP Status: 400 Bad Request
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidCredentials indicates the username/password pair matches
	// no registered user. Covers the unknown-user case too, so existence
	// is never revealed.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists indicates the username is already registered.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrUnauthenticated indicates the caller holds no live session:
	// no session cookie, no carrier binding, or an expired token.
	// HTTP Status: 401 Unauthorized
	ErrUnauthenticated = errors.New("not logged in")

	// ErrBookNotFound indicates the requested ISBN is not in the catalog.
	// HTTP Status: 404 Not Found
	ErrBookNotFound = errors.New("book not found")

	// ErrMissingReview indicates the review text was absent or empty.
	// HTTP Status: 400 Bad Request
	ErrMissingReview = errors.New("review text required")

	// ErrNoReview indicates the caller has no review on the book to delete.
	// HTTP Status: 400 Bad Request
	ErrNoReview = errors.New("no review found for this user")
)
