package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/jobboard/internal/posting"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "snapshots", "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveSnapshot_RoundTripKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	postings := []posting.Posting{
		{ID: "rec2", Title: "Backend Intern", Company: "Acme"},
		{ID: "rec1", Title: "Backend Engineer", Link: "https://acme.example.com/1", Promotion: posting.Promoted},
	}
	fetchedAt := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.SaveSnapshot(ctx, postings, fetchedAt))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, postings, got)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	at, err := store.FetchedAt(ctx)
	require.NoError(t, err)
	require.True(t, fetchedAt.Equal(at))

	n, err := store.GetMetadata(ctx, countKey)
	require.NoError(t, err)
	require.Equal(t, "2", n)
}

func TestSaveSnapshot_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, []posting.Posting{{ID: "a"}, {ID: "b"}}, time.Now()))
	require.NoError(t, store.SaveSnapshot(ctx, []posting.Posting{{ID: "c"}}, time.Now()))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "c", got[0].ID)
}

func TestSaveSnapshot_DuplicateIDsKept(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, []posting.Posting{{ID: "a", Title: "one"}, {ID: "a", Title: "two"}}, time.Now()))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestFetchedAt_Empty(t *testing.T) {
	store := newTestStore(t)

	at, err := store.FetchedAt(context.Background())
	require.NoError(t, err)
	require.True(t, at.IsZero())
}
