package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/mkdb/internal/logging"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

type storeFunc func(ctx context.Context, id string) (map[string]string, error)

func (f storeFunc) Credentials(ctx context.Context, id string) (map[string]string, error) {
	return f(ctx, id)
}

func TestEnvPrefix(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"local", "MKDB_LOCAL_"},
		{"local-sql", "MKDB_LOCAL_SQL_"},
		{"prod.db1", "MKDB_PROD_DB1_"},
		{"café", "MKDB_CAF__"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvPrefix(tt.id))
		})
	}
}

func TestEnvStore(t *testing.T) {
	env := map[string]string{
		"MKDB_LOCAL_SQL_USER":     "sa",
		"MKDB_LOCAL_SQL_PASSWORD": "secret",
	}
	store := &EnvStore{getenv: func(k string) string { return env[k] }}

	creds, err := store.Credentials(context.Background(), "local-sql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "sa", "password": "secret"}, creds)

	creds, err = store.Credentials(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	content := "local-sql:\n  user: sa\n  password: secret\npartial:\n  password: only\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))

	store := NewFileStore(dir, logging.NewNullLogger())

	creds, err := store.Credentials(context.Background(), "local-sql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "sa", "password": "secret"}, creds)

	creds, err = store.Credentials(context.Background(), "partial")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"password": "only"}, creds)

	creds, err = store.Credentials(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(t.TempDir(), logging.NewNullLogger())

	creds, err := store.Credentials(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestFileStore_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[broken"), 0600))

	_, err := NewFileStore(dir, logging.NewNullLogger()).Credentials(context.Background(), "x")
	assert.True(t, errors.Is(err, mkdb.ErrInvalidConfig))
}

func TestFileStore_WarnsOnWidePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("a:\n  password: b\n"), 0600))
	require.NoError(t, os.Chmod(path, 0644))

	var out strings.Builder
	store := NewFileStore(dir, logging.NewConsoleLoggerTo(&out, false))

	_, err := store.Credentials(context.Background(), "a")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "should be 0600")
}

func TestNewFileStore_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewFileStore(".", nil) })
}

func TestChain_MergesKeyByKeyInPrecedenceOrder(t *testing.T) {
	var calls []string
	store := func(name string, creds map[string]string) mkdb.CredentialStore {
		return storeFunc(func(ctx context.Context, id string) (map[string]string, error) {
			calls = append(calls, name)
			return creds, nil
		})
	}

	chain := Chain{
		store("env", map[string]string{"user": "from-env"}),
		store("file", map[string]string{"user": "from-file", "password": "from-file"}),
		store("empty", map[string]string{}),
	}

	creds, err := chain.Credentials(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "from-env", "password": "from-file"}, creds)
	assert.Equal(t, []string{"env", "file", "empty"}, calls)
}

func TestChain_EnvUserDoesNotHideFilePassword(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("local-sql:\n  password: secret\n"), 0600))

	env := &EnvStore{getenv: func(k string) string {
		if k == "MKDB_LOCAL_SQL_USER" {
			return "sa"
		}
		return ""
	}}
	chain := Chain{env, NewFileStore(dir, logging.NewNullLogger())}

	creds, err := chain.Credentials(context.Background(), "local-sql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "sa", "password": "secret"}, creds)
}

func TestChain_ErrorStops(t *testing.T) {
	boom := errors.New("boom")
	chain := Chain{storeFunc(func(ctx context.Context, id string) (map[string]string, error) {
		return nil, boom
	})}

	_, err := chain.Credentials(context.Background(), "x")
	assert.True(t, errors.Is(err, boom))
}

func TestChain_Empty(t *testing.T) {
	creds, err := Chain{}.Credentials(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, creds)
	assert.Empty(t, creds)
}
