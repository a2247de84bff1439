package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/testutil"
)

func sampleState(t time.Time) model.SessionState {
	return model.SessionState{
		LastRefresh: model.NewNullTime(t),
		PRs: map[string]model.TrackedPR{
			"42": {Acknowledged: true, PR: testutil.NewPR("42", "Fix bug", "org/r1", t)},
			"43": {PR: testutil.NewPR("43", "No reviews yet", "org/r2")},
		},
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.json"))

	state, err := store.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	store := New(path)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, "default", sampleState(now)))
	assert.FileExists(t, path)

	// A fresh store reading the same file sees the same state
	loaded, err := New(path).Load(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.True(t, loaded.LastRefresh.Valid)
	assert.True(t, now.Equal(loaded.LastRefresh.Time))
	require.Len(t, loaded.PRs, 2)
	assert.True(t, loaded.PRs["42"].Acknowledged)
	assert.Equal(t, "Fix bug", loaded.PRs["42"].PR.Title)
	assert.Equal(t, "org/r1", loaded.PRs["42"].PR.Repository)
	assert.True(t, now.Equal(loaded.PRs["42"].PR.LatestReviewTime().Time))
	assert.False(t, loaded.PRs["43"].Acknowledged)
	assert.False(t, loaded.PRs["43"].PR.HasReviews())
}

func TestStore_NamedSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "state.json"))
	now := time.Now()

	require.NoError(t, store.Save(ctx, "alice", sampleState(now)))
	require.NoError(t, store.Save(ctx, "bob", model.SessionState{PRs: map[string]model.TrackedPR{}}))

	alice, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice.PRs, 2)

	bob, err := store.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.PRs)
	assert.False(t, bob.LastRefresh.Valid)

	require.NoError(t, store.Delete(ctx, "alice"))

	alice, err = store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, alice)

	bob, err = store.Load(ctx, "bob")
	require.NoError(t, err)
	assert.NotNil(t, bob)
}

func TestStore_DeleteMissing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"))
	assert.NoError(t, store.Delete(context.Background(), "nobody"))
}

func TestStore_NullLastRefresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	store := New(path)

	require.NoError(t, store.Save(ctx, "default", model.SessionState{PRs: map[string]model.TrackedPR{}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"last_refresh": null`)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := New(path)
	_, err := store.Load(context.Background(), "default")
	assert.ErrorContains(t, err, "failed to parse state file")

	err = store.Save(context.Background(), "default", model.SessionState{})
	assert.Error(t, err)
}
