package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/middleware"
)

// ReviewService implements the protected review mutations. Every
// operation resolves the caller's session first, and the review key is
// always the session's bound username — never caller-supplied — so a
// user can only ever touch their own review.
type ReviewService struct {
	auth  *AuthService
	books domain.BookRepository
}

// NewReviewService creates a new ReviewService with the given dependencies.
func NewReviewService(auth *AuthService, books domain.BookRepository) *ReviewService {
	return &ReviewService{
		auth:  auth,
		books: books,
	}
}

// Upsert creates or replaces the caller's review on the book and
// returns the updated book. A second write by the same user replaces
// the text; it never appends.
func (s *ReviewService) Upsert(ctx context.Context, sessionID, isbn, text string) (*domain.Book, error) {
	ctx, span := middleware.StartSpan(ctx, "review.upsert", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	username, err := s.auth.CurrentPrincipal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Failure ordering matches the route contract: unknown book wins
	// over missing text. Neither touches the review map.
	book, err := s.books.ByISBN(ctx, isbn)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query book %q: %w", isbn, err)
	}
	if book == nil {
		return nil, fmt.Errorf("upsert review on %q: %w", isbn, ErrBookNotFound)
	}
	if text == "" {
		return nil, fmt.Errorf("upsert review on %q: %w", isbn, ErrMissingReview)
	}

	updated, err := s.books.SetReview(ctx, isbn, username, text)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("write review on %q: %w", isbn, err)
	}
	if updated == nil {
		// Books are never deleted at runtime; kept for contract completeness.
		return nil, fmt.Errorf("upsert review on %q: %w", isbn, ErrBookNotFound)
	}

	span.SetAttributes(attribute.String("user.name", username))
	span.AddEvent("review.written")
	return updated, nil
}

// Remove deletes the caller's review from the book and returns the
// updated book. Deleting when the caller has no review is an error;
// other users' reviews are structurally out of reach.
func (s *ReviewService) Remove(ctx context.Context, sessionID, isbn string) (*domain.Book, error) {
	ctx, span := middleware.StartSpan(ctx, "review.remove", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	username, err := s.auth.CurrentPrincipal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	updated, removed, err := s.books.DeleteReview(ctx, isbn, username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("delete review on %q: %w", isbn, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("delete review on %q: %w", isbn, ErrBookNotFound)
	}
	if !removed {
		return nil, fmt.Errorf("delete review on %q: %w", isbn, ErrNoReview)
	}

	span.SetAttributes(attribute.String("user.name", username))
	span.AddEvent("review.deleted")
	return updated, nil
}
