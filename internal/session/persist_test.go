package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nookcoder/library-console/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseTokenStore(t *testing.T, store session.TokenStore) {
	t.Helper()

	_, err := store.Load()
	assert.ErrorIs(t, err, session.ErrNoToken)
	require.NoError(t, store.Delete())

	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, store.Delete())
	require.NoError(t, store.Delete())
	_, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestMemoryStore(t *testing.T) {
	exerciseTokenStore(t, session.NewMemoryStore(""))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	store, err := session.NewFileStore(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, session.DefaultKey), store.Path())

	exerciseTokenStore(t, store)

	require.NoError(t, store.Save("token"))
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_BlankFileIsNoToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k"), []byte(" \n"), 0o600))

	store, err := session.NewFileStore(dir, "k")
	require.NoError(t, err)
	_, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "libctl:", "")

	exerciseTokenStore(t, store)

	require.NoError(t, store.Save("shared"))
	got, err := mr.Get("libctl:library_token")
	require.NoError(t, err)
	assert.Equal(t, "shared", got)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "", "")
	mr.Close()

	_, err := store.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNoToken)

	s := session.New(store, &fakeTransport{})
	assert.False(t, s.IsAuthenticated())
}
