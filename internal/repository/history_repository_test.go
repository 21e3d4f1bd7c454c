package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/model"
)

func TestHistoryRepository_ListByUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewHistoryRepository(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	first := &model.AIHistory{UserID: alice.ID, Title: "first", Query: "q1", Response: "r1"}
	second := &model.AIHistory{UserID: alice.ID, Title: "second", Query: "q2", Response: "r2"}
	other := &model.AIHistory{UserID: bob.ID, Title: "other", Query: "q3", Response: "r3"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	// Pin distinct creation times so the ordering is deterministic.
	require.NoError(t, repo.OverrideCreatedAt(ctx, first.ID, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.OverrideCreatedAt(ctx, second.ID, time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)))

	entries, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Title)
	assert.Equal(t, "first", entries[1].Title)
}

func TestHistoryRepository_Upsert(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewHistoryRepository(db)
	alice := seedUser(t, db, "alice@example.com")

	entry := &model.AIHistory{ID: 2001, UserID: alice.ID, Title: "imported", Query: "q", Response: "r"}
	created, err := repo.Upsert(ctx, entry, []string{"user_id", "title", "query", "response"})
	require.NoError(t, err)
	assert.True(t, created)

	entry = &model.AIHistory{ID: 2001, UserID: alice.ID, Title: "re-imported", Query: "q", Response: "r"}
	created, err = repo.Upsert(ctx, entry, []string{"user_id", "title", "query", "response"})
	require.NoError(t, err)
	assert.False(t, created)

	found, err := repo.FindByID(ctx, 2001)
	require.NoError(t, err)
	assert.Equal(t, "re-imported", found.Title)
}
