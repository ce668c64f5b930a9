package domain

import "context"

// BookRepository defines the data-access contract for the catalog.
// Books are seeded once at startup and never created or deleted at
// runtime; only their review maps change. All returned books are
// snapshots — mutating them does not touch the store.
type BookRepository interface {
	// Save inserts or replaces a book. Used by the startup seed.
	Save(ctx context.Context, book Book) error

	// All returns every book keyed by ISBN.
	All(ctx context.Context) (map[string]Book, error)

	// ByISBN returns the book with the given ISBN.
	// Returns (nil, nil) when no book matches.
	ByISBN(ctx context.Context, isbn string) (*Book, error)

	// ByAuthor returns all books by the given author, exact match.
	ByAuthor(ctx context.Context, author string) ([]Book, error)

	// ByTitle returns all books with the given title, exact match.
	ByTitle(ctx context.Context, title string) ([]Book, error)

	// SetReview writes the reviewer's review on the book, replacing any
	// prior review by the same reviewer, and returns the updated book.
	// Returns (nil, nil) when the book does not exist; in that case
	// nothing is written.
	SetReview(ctx context.Context, isbn, reviewer, text string) (*Book, error)

	// DeleteReview removes the reviewer's review from the book.
	// The book result is (nil, ...) when the book does not exist;
	// removed reports whether the reviewer actually had a review.
	DeleteReview(ctx context.Context, isbn, reviewer string) (book *Book, removed bool, err error)
}
