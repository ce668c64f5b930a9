package repository

import (
	"context"
	"sync"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// MemoryBookRepository implements domain.BookRepository with a
// mutex-guarded map keyed by ISBN. One lock covers the book map and
// every review sub-map: review writes serialize, so concurrent
// reviewers on the same book cannot lose updates. All reads and all
// returned books are snapshots.
type MemoryBookRepository struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewBookRepository creates an empty MemoryBookRepository.
func NewBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{books: make(map[string]domain.Book)}
}

// Save inserts or replaces a book. A nil review map is normalized to an
// empty one so later review writes never need a presence check.
func (r *MemoryBookRepository) Save(_ context.Context, book domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.Reviews == nil {
		book.Reviews = make(map[string]string)
	}
	r.books[book.ISBN] = book.Clone()
	return nil
}

// All returns every book keyed by ISBN.
func (r *MemoryBookRepository) All(_ context.Context) (map[string]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Book, len(r.books))
	for isbn, book := range r.books {
		out[isbn] = book.Clone()
	}
	return out, nil
}

// ByISBN returns the book with the given ISBN, or (nil, nil) on a miss.
func (r *MemoryBookRepository) ByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[isbn]
	if !ok {
		return nil, nil
	}
	snapshot := book.Clone()
	return &snapshot, nil
}

// ByAuthor returns all books by the given author, exact match.
func (r *MemoryBookRepository) ByAuthor(_ context.Context, author string) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Book, 0)
	for _, book := range r.books {
		if book.Author == author {
			matches = append(matches, book.Clone())
		}
	}
	return matches, nil
}

// ByTitle returns all books with the given title, exact match.
func (r *MemoryBookRepository) ByTitle(_ context.Context, title string) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Book, 0)
	for _, book := range r.books {
		if book.Title == title {
			matches = append(matches, book.Clone())
		}
	}
	return matches, nil
}

// SetReview writes the reviewer's review on the book, replacing any
// prior review by the same reviewer. Returns (nil, nil) when the book
// does not exist; nothing is written in that case.
func (r *MemoryBookRepository) SetReview(_ context.Context, isbn, reviewer, text string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[isbn]
	if !ok {
		return nil, nil
	}
	book.Reviews[reviewer] = text
	snapshot := book.Clone()
	return &snapshot, nil
}

// DeleteReview removes the reviewer's review from the book. The book
// result is nil when the book does not exist; removed reports whether
// the reviewer actually had a review to delete.
func (r *MemoryBookRepository) DeleteReview(_ context.Context, isbn, reviewer string) (*domain.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[isbn]
	if !ok {
		return nil, false, nil
	}
	_, removed := book.Reviews[reviewer]
	if removed {
		delete(book.Reviews, reviewer)
	}
	snapshot := book.Clone()
	return &snapshot, removed, nil
}
