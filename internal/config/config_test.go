package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

const sampleConfig = `active: local-sql
connections:
  - id: local-sql
    provider: MSSQL
    options:
      server: localhost
      port: "1433"
      user: sa
  - id: pg
    provider: postgres
    options:
      server: db.internal
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_Valid(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "local-sql", cfg.Active)
	assert.Len(t, cfg.Connections, 2)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, []string{"local-sql", "pg"}, cfg.IDs())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "connections: [oops")

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mkdb.ErrInvalidConfig))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &ProjectConfig{
		Active: "missing",
		Connections: []ConnectionConfig{
			{ID: "a", Provider: "oracle", Options: map[string]string{"server": "x"}},
			{ID: "a", Provider: "MSSQL"},
			{Provider: "MSSQL", Options: map[string]string{"server": "y"}},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mkdb.ErrInvalidConfig))
	assert.True(t, errors.Is(err, mkdb.ErrUnsupportedProvider))

	msg := err.Error()
	assert.Contains(t, msg, `duplicate id "a"`)
	assert.Contains(t, msg, `option "server" is required`)
	assert.Contains(t, msg, "connections[2]: id is required")
	assert.Contains(t, msg, `active connection "missing" is not defined`)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	conn, ok := cfg.Lookup("local-sql")
	require.True(t, ok)
	assert.Equal(t, "MSSQL", conn.ProviderName)
	assert.Equal(t, "localhost", conn.Server())

	conn.Options["server"] = "changed"
	again, _ := cfg.Lookup("local-sql")
	assert.Equal(t, "localhost", again.Server())

	_, ok = cfg.Lookup("nope")
	assert.False(t, ok)
}

func TestProfileSource_ActiveConnection(t *testing.T) {
	src := NewProfileSource(writeConfig(t, sampleConfig))
	src.getenv = func(string) string { return "" }

	conn, err := src.ActiveConnection(context.Background())
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, "local-sql", conn.ID)
}

func TestProfileSource_EnvOverride(t *testing.T) {
	src := NewProfileSource(writeConfig(t, sampleConfig))
	src.getenv = func(key string) string {
		if key == EnvActiveConnection {
			return "pg"
		}
		return ""
	}

	conn, err := src.ActiveConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pg", conn.ID)
}

func TestProfileSource_NoConfigMeansNoActiveConnection(t *testing.T) {
	src := NewProfileSource(t.TempDir())

	conn, err := src.ActiveConnection(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, conn)
}

func TestProfileSource_EmptyActive(t *testing.T) {
	src := NewProfileSource(writeConfig(t, "connections: []\n"))
	src.getenv = func(string) string { return "" }

	conn, err := src.ActiveConnection(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, conn)
}

func TestProfileSource_Connection(t *testing.T) {
	src := NewProfileSource(writeConfig(t, sampleConfig))

	conn, err := src.Connection("pg")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", conn.Server())

	_, err = src.Connection("nope")
	assert.True(t, errors.Is(err, mkdb.ErrInvalidConfig))
}

func TestFindDir_Explicit(t *testing.T) {
	assert.Equal(t, "/some/dir", FindDir("/some/dir"))
}
