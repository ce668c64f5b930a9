package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededBooks(t *testing.T) *MemoryBookRepository {
	t.Helper()
	repo := NewBookRepository()
	require.NoError(t, SeedBooks(context.Background(), repo))
	return repo
}

func TestMemoryBookRepository_Seed(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	book, err := repo.ByISBN(ctx, "8")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Pride and Prejudice", book.Title)
	assert.Equal(t, "Jane Austen", book.Author)
	assert.NotNil(t, book.Reviews, "seed must initialize the review map")
	assert.Empty(t, book.Reviews)
}

func TestMemoryBookRepository_ByISBNMiss(t *testing.T) {
	repo := newSeededBooks(t)

	book, err := repo.ByISBN(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestMemoryBookRepository_ByAuthorAndTitle(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	byAuthor, err := repo.ByAuthor(ctx, "Honoré de Balzac")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byAuthor, err = repo.ByAuthor(ctx, "No Such Author")
	require.NoError(t, err)
	assert.NotNil(t, byAuthor, "no match must be an empty list, not nil")
	assert.Empty(t, byAuthor)

	byTitle, err := repo.ByTitle(ctx, "The Divine Comedy")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Dante Alighieri", byTitle[0].Author)
}

func TestMemoryBookRepository_SetReviewReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	book, err := repo.SetReview(ctx, "1", "alice", "great book")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, map[string]string{"alice": "great book"}, book.Reviews)

	// Same reviewer writes again: replace, never append.
	book, err = repo.SetReview(ctx, "1", "alice", "changed my mind")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, map[string]string{"alice": "changed my mind"}, book.Reviews)

	// A different reviewer gets their own key.
	book, err = repo.SetReview(ctx, "1", "bob", "decent")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Len(t, book.Reviews, 2)
}

func TestMemoryBookRepository_SetReviewUnknownBook(t *testing.T) {
	repo := newSeededBooks(t)

	book, err := repo.SetReview(context.Background(), "999", "alice", "lost")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestMemoryBookRepository_DeleteReview(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	_, err := repo.SetReview(ctx, "1", "alice", "great book")
	require.NoError(t, err)

	book, removed, err := repo.DeleteReview(ctx, "1", "alice")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.True(t, removed)
	assert.Empty(t, book.Reviews)

	// Deleting again: book exists, nothing to remove, map untouched.
	book, removed, err = repo.DeleteReview(ctx, "1", "alice")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.False(t, removed)

	// Unknown book.
	book, removed, err = repo.DeleteReview(ctx, "999", "alice")
	require.NoError(t, err)
	assert.Nil(t, book)
	assert.False(t, removed)
}

func TestMemoryBookRepository_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	_, err := repo.SetReview(ctx, "1", "alice", "great book")
	require.NoError(t, err)

	snapshot, err := repo.ByISBN(ctx, "1")
	require.NoError(t, err)
	snapshot.Reviews["mallory"] = "injected"

	fresh, err := repo.ByISBN(ctx, "1")
	require.NoError(t, err)
	assert.NotContains(t, fresh.Reviews, "mallory", "mutating a snapshot must not touch the store")
}

func TestMemoryBookRepository_ConcurrentReviewersLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := newSeededBooks(t)

	const reviewers = 50
	var wg sync.WaitGroup
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.SetReview(ctx, "1", fmt.Sprintf("user-%d", i), "fine")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	book, err := repo.ByISBN(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, book.Reviews, reviewers, "no concurrent write may be lost")
}
