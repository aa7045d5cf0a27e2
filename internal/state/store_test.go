package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	saved, err := s.Record(ctx, Receipt{
		Name:     "alpha",
		Version:  "1.2.0",
		Source:   "acme/toolbelt@main",
		Checksum: "abc123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.InstalledAt.IsZero())

	got, err := s.Get(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "1.2.0", got.Version)
	assert.Equal(t, "acme/toolbelt@main", got.Source)
	assert.Equal(t, "abc123", got.Checksum)
	assert.WithinDuration(t, saved.InstalledAt, got.InstalledAt, time.Millisecond)
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordReplacesByNameKeepingID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, Receipt{Name: "alpha", Version: "1.0.0"})
	require.NoError(t, err)

	second, err := s.Record(ctx, Receipt{Name: "alpha", Version: "1.1.0", Checksum: "def456"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.Get(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", got.Version)
	assert.Equal(t, "def456", got.Checksum)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListOrderedByName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"gamma", "alpha", "beta"} {
		_, err := s.Record(ctx, Receipt{Name: name})
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "beta", all[1].Name)
	assert.Equal(t, "gamma", all[2].Name)
}

func TestListEmpty(t *testing.T) {
	s := testStore(t)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, Receipt{Name: "alpha"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alpha"))

	_, err = s.Get(ctx, "alpha")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	s := testStore(t)

	err := s.Delete(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}
