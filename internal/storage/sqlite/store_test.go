package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/testutil"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "db", "ghprs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LoadMissing(t *testing.T) {
	store := setupTestDB(t)

	state, err := store.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	reviewed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	state := model.SessionState{
		LastRefresh: model.NewNullTime(reviewed.Add(time.Minute)),
		PRs: map[string]model.TrackedPR{
			"42": {Acknowledged: true, PR: testutil.NewPR("42", "Fix bug", "org/r1", reviewed)},
		},
	}
	require.NoError(t, store.Save(ctx, "team", state))

	loaded, err := store.Load(ctx, "team")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.LastRefresh.Valid)
	assert.True(t, reviewed.Add(time.Minute).Equal(loaded.LastRefresh.Time))
	require.Contains(t, loaded.PRs, "42")
	assert.True(t, loaded.PRs["42"].Acknowledged)
	assert.Equal(t, "Fix bug", loaded.PRs["42"].PR.Title)

	// Saving again replaces the row
	state.PRs["42"] = model.TrackedPR{PR: state.PRs["42"].PR}
	require.NoError(t, store.Save(ctx, "team", state))

	loaded, err = store.Load(ctx, "team")
	require.NoError(t, err)
	assert.False(t, loaded.PRs["42"].Acknowledged)

	require.NoError(t, store.Delete(ctx, "team"))

	loaded, err = store.Load(ctx, "team")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ghprs.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "default", model.SessionState{
		PRs: map[string]model.TrackedPR{"1": {PR: testutil.NewPR("1", "One", "org/r1")}},
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Contains(t, loaded.PRs, "1")
	assert.False(t, loaded.LastRefresh.Valid)
}
