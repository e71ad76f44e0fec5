package creator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/mkdb/internal/creator"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

func TestMSSQLStatement_ExactText(t *testing.T) {
	want := "BEGIN TRY\n" +
		"    CREATE DATABASE [Sales]\n" +
		"    SELECT 1 AS NoError\n" +
		"END TRY\n" +
		"BEGIN CATCH\n" +
		"    SELECT ERROR_MESSAGE() AS ErrorMessage;\n" +
		"END CATCH\n"
	assert.Equal(t, want, creator.MSSQLStatement("Sales"))
}

func TestMSSQLStatement_DoublesClosingBrackets(t *testing.T) {
	sql := creator.MSSQLStatement("Sales]Data")
	assert.Contains(t, sql, "CREATE DATABASE [Sales]]Data]\n")
}

func TestEscapeBracketIdentifier(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Sales", "Sales"},
		{"single bracket", "a]b", "a]]b"},
		{"trailing bracket", "abc]", "abc]]"},
		{"only brackets", "]]", "]]]]"},
		{"opening bracket untouched", "[x", "[x"},
		{"injection attempt", "x]; DROP DATABASE master; --", "x]]; DROP DATABASE master; --"},
		{"max length", strings.Repeat("]", mkdb.MaxDatabaseNameLength), strings.Repeat("]]", mkdb.MaxDatabaseNameLength)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := creator.EscapeBracketIdentifier(tc.in)
			assert.Equal(t, tc.want, got)
			// Undoing the escape must give back the input.
			assert.Equal(t, tc.in, strings.ReplaceAll(got, "]]", "]"))
		})
	}
}

func TestPostgresStatement_QuotesIdentifier(t *testing.T) {
	assert.Equal(t, `CREATE DATABASE "my database"`, creator.PostgresStatement("my database"))
	assert.Equal(t, `CREATE DATABASE "my""db"`, creator.PostgresStatement(`my"db`))
}

func TestMySQLStatement_DoublesBackticks(t *testing.T) {
	assert.Equal(t, "CREATE DATABASE `shop`", creator.MySQLStatement("shop"))
	assert.Equal(t, "CREATE DATABASE `a``b`", creator.MySQLStatement("a`b"))
}

func TestStatement_DispatchesOnProvider(t *testing.T) {
	testCases := []struct {
		provider string
		prefix   string
	}{
		{"MSSQL", "BEGIN TRY"},
		{"PGSQL", `CREATE DATABASE "x"`},
		{"MySQL", "CREATE DATABASE `x`"},
		{"CASSANDRA", `CREATE KEYSPACE "x"`},
	}

	for _, tc := range testCases {
		t.Run(tc.provider, func(t *testing.T) {
			conn := &mkdb.Connection{ID: "c", ProviderName: tc.provider}
			sql, err := creator.Statement(conn, "x")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(sql, tc.prefix), "got %q", sql)
		})
	}
}

func TestStatement_CassandraReplicationFactor(t *testing.T) {
	conn := &mkdb.Connection{
		ID:           "c",
		ProviderName: "CASSANDRA",
		Options:      map[string]string{mkdb.OptionReplicationFactor: "3"},
	}
	sql, err := creator.Statement(conn, "events")
	require.NoError(t, err)
	assert.Contains(t, sql, "'replication_factor': 3")

	conn.Options[mkdb.OptionReplicationFactor] = "zero"
	_, err = creator.Statement(conn, "events")
	assert.True(t, errors.Is(err, mkdb.ErrInvalidConfig))
}

func TestStatement_UnknownProvider(t *testing.T) {
	conn := &mkdb.Connection{ID: "c", ProviderName: "ORACLE"}
	_, err := creator.Statement(conn, "x")
	assert.ErrorIs(t, err, mkdb.ErrUnsupportedProvider)
}
