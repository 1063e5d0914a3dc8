package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskly/internal/testutil"
)

// exerciseStore - общий контракт KVStore для всех реализаций
func exerciseStore(t *testing.T, s KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrorNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v, "set replaces the whole value")

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrorNotFound)

	assert.NoError(t, s.Delete(ctx, "k"), "deleting an absent key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseStore(t, s)

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "tasks-for-today", `[{"id":"t1"}]`))

		reopened, err := NewFileStore(dir)
		require.NoError(t, err)
		v, err := reopened.Get(ctx, "tasks-for-today")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"t1"}]`, v)
	})

	t.Run("two handles on one data dir", func(t *testing.T) {
		ctx := context.Background()
		shared := t.TempDir()
		first, err := NewFileStore(shared)
		require.NoError(t, err)
		second, err := NewFileStore(shared)
		require.NoError(t, err)

		require.NoError(t, first.Set(ctx, "tasks-for-today", "a"))
		require.NoError(t, second.Set(ctx, "projects", "b"))

		v, err := first.Get(ctx, "projects")
		require.NoError(t, err)
		assert.Equal(t, "b", v, "writes of the other handle are visible")

		require.NoError(t, first.Set(ctx, "current-project", "p1"))
		v, err = second.Get(ctx, "tasks-for-today")
		require.NoError(t, err)
		assert.Equal(t, "a", v)
		v, err = second.Get(ctx, "projects")
		require.NoError(t, err)
		assert.Equal(t, "b", v, "a write does not drop keys written elsewhere")

		require.NoError(t, second.Delete(ctx, "tasks-for-today"))
		_, err = first.Get(ctx, "tasks-for-today")
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("corrupt file fails to open", func(t *testing.T) {
		bad := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(bad, "taskly.json"), []byte("{"), 0o644))
		_, err := NewFileStore(bad)
		assert.Error(t, err)
	})
}

func TestPostgresStore(t *testing.T) {
	pool, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	s := NewPostgresStore(pool)
	require.NoError(t, s.EnsureSchema(context.Background()))
	testutil.TruncateTables(t, pool)

	exerciseStore(t, s)
}
