package creator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

const mssqlCreateTemplate = "BEGIN TRY\n" +
	"    CREATE DATABASE [%s]\n" +
	"    SELECT 1 AS NoError\n" +
	"END TRY\n" +
	"BEGIN CATCH\n" +
	"    SELECT ERROR_MESSAGE() AS ErrorMessage;\n" +
	"END CATCH\n"

const defaultReplicationFactor = 1

// EscapeBracketIdentifier doubles every closing bracket so the name can be
// embedded between [ and ].
func EscapeBracketIdentifier(name string) string {
	return strings.ReplaceAll(name, "]", "]]")
}

// MSSQLStatement returns the guarded SQL Server creation batch.
func MSSQLStatement(name string) string {
	return fmt.Sprintf(mssqlCreateTemplate, EscapeBracketIdentifier(name))
}

// PostgresStatement quotes name with pgx identifier rules.
func PostgresStatement(name string) string {
	return "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
}

// MySQLStatement wraps name in backticks, doubling embedded backticks.
func MySQLStatement(name string) string {
	return "CREATE DATABASE `" + strings.ReplaceAll(name, "`", "``") + "`"
}

// CassandraStatement creates a keyspace with SimpleStrategy replication.
func CassandraStatement(name string, replicationFactor int) string {
	quoted := `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	return fmt.Sprintf(
		"CREATE KEYSPACE %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}",
		quoted, replicationFactor)
}

// Statement builds the creation statement for the connection's provider.
func Statement(conn *mkdb.Connection, name string) (string, error) {
	kind, err := conn.Provider()
	if err != nil {
		return "", err
	}

	switch kind {
	case mkdb.ProviderMSSQL:
		return MSSQLStatement(name), nil
	case mkdb.ProviderPostgres:
		return PostgresStatement(name), nil
	case mkdb.ProviderMySQL:
		return MySQLStatement(name), nil
	case mkdb.ProviderCassandra:
		rf, err := replicationFactor(conn)
		if err != nil {
			return "", err
		}
		return CassandraStatement(name, rf), nil
	default:
		return "", fmt.Errorf("%s: %w", kind, mkdb.ErrUnsupportedProvider)
	}
}

func replicationFactor(conn *mkdb.Connection) (int, error) {
	raw := conn.Option(mkdb.OptionReplicationFactor)
	if raw == "" {
		return defaultReplicationFactor, nil
	}
	rf, err := strconv.Atoi(raw)
	if err != nil || rf < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q",
			mkdb.ErrInvalidConfig, mkdb.OptionReplicationFactor, raw)
	}
	return rf, nil
}
