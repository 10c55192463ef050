package tokenstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/storefront-go/internal/api"
)

// Compile-time check: every backend satisfies the client's Storage.
var (
	_ api.Storage = (*FileStore)(nil)
	_ api.Storage = (*SQLiteStore)(nil)
	_ api.Storage = (*MemoryStore)(nil)
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()

	sqlite, err := NewSQLiteStore(context.Background(), filepath.Join(dir, "credentials.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		BackendFile:   NewFileStore(filepath.Join(dir, "credentials.json")),
		BackendSQLite: sqlite,
		BackendMemory: NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			v, err := store.Get("missing")
			require.NoError(t, err)
			assert.Equal(t, "", v)

			require.NoError(t, store.Set("a", "1"))
			require.NoError(t, store.Set("b", "2"))
			require.NoError(t, store.Set("a", "3"))

			v, err = store.Get("a")
			require.NoError(t, err)
			assert.Equal(t, "3", v)

			require.NoError(t, store.Remove("a"))
			require.NoError(t, store.Remove("a"), "removing twice is fine")

			v, err = store.Get("a")
			require.NoError(t, err)
			assert.Equal(t, "", v)

			v, err = store.Get("b")
			require.NoError(t, err)
			assert.Equal(t, "2", v)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fileStore, err := Open(ctx, BackendFile, filepath.Join(dir, "c.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, fileStore)

	defaulted, err := Open(ctx, "", filepath.Join(dir, "c.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, defaulted)

	mem, err := Open(ctx, BackendMemory, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	db, err := Open(ctx, BackendSQLite, filepath.Join(dir, "nested", "c.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, db)
	require.NoError(t, db.Close())

	_, err = Open(ctx, "redis", "", nil)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestFileStore_PermissionsAndCleanup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(api.TokenKey, "tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePerms), info.Mode().Perm())

	require.NoError(t, store.Remove(api.TokenKey))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty store removes its file")
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "credentials.json"))

	for range 5 {
		require.NoError(t, store.Set("k", "v"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), FilePerms))

	store := NewFileStore(path)
	_, err := store.Get("k")
	assert.ErrorContains(t, err, "decoding")

	assert.Error(t, store.Set("k", "v"))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set(api.RefreshTokenKey, "refresh-1"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(ctx, path, nil)
	require.NoError(t, err)
	defer second.Close()

	v, err := second.Get(api.RefreshTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", v)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := NewSQLiteStore(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("k", "v"))

	v, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestClientTokenLifecycle_AcrossProcesses(t *testing.T) {
	for name, store := range openBackends(t) {
		if name == BackendMemory {
			continue
		}

		t.Run(name, func(t *testing.T) {
			c := api.NewClient(api.Config{}, nil, store, nil)
			c.SetToken("access-1")
			require.NoError(t, store.Set(api.RefreshTokenKey, "refresh-1"))

			// A second client over the same medium sees the login.
			assert.Equal(t, "access-1", api.NewClient(api.Config{}, nil, store, nil).Token())

			c.ClearToken()

			fresh := api.NewClient(api.Config{}, nil, store, nil)
			assert.Equal(t, "", fresh.Token())

			refresh, err := store.Get(api.RefreshTokenKey)
			require.NoError(t, err)
			assert.Equal(t, "", refresh)
		})
	}
}
