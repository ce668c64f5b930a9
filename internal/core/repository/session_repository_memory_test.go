package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

func TestMemorySessionRepository_BindAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	session, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, session)

	err = repo.Bind(ctx, domain.Session{ID: "sid-1", Username: "alice", Token: "tok-a"})
	require.NoError(t, err)

	session, err = repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "tok-a", session.Token)
}

func TestMemorySessionRepository_BindOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	require.NoError(t, repo.Bind(ctx, domain.Session{ID: "sid-1", Username: "alice", Token: "tok-a"}))
	require.NoError(t, repo.Bind(ctx, domain.Session{ID: "sid-1", Username: "bob", Token: "tok-b"}))

	session, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "bob", session.Username, "a new login replaces the prior binding, it never stacks")
	assert.Equal(t, "tok-b", session.Token)
}
