package mkdb

import (
	"fmt"
	"strings"
)

// ProviderKind identifies the database engine behind a connection.
type ProviderKind int

const (
	ProviderUnknown ProviderKind = iota
	ProviderMSSQL
	ProviderPostgres
	ProviderMySQL
	ProviderCassandra
)

// DesignatedProvider is the provider kind whose implicit connections get
// stored credentials merged in and require interactive confirmation.
const DesignatedProvider = ProviderMSSQL

// String returns the provider name as it appears in connection profiles.
func (p ProviderKind) String() string {
	switch p {
	case ProviderMSSQL:
		return "MSSQL"
	case ProviderPostgres:
		return "PGSQL"
	case ProviderMySQL:
		return "MySQL"
	case ProviderCassandra:
		return "CASSANDRA"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseProviderKind maps a provider name to its kind. Matching is case-insensitive
// and accepts a few common aliases ("postgres", "sqlserver", ...).
func ParseProviderKind(name string) (ProviderKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mssql", "sqlserver":
		return ProviderMSSQL, nil
	case "pgsql", "postgres", "postgresql":
		return ProviderPostgres, nil
	case "mysql", "mariadb":
		return ProviderMySQL, nil
	case "cassandra":
		return ProviderCassandra, nil
	default:
		return ProviderUnknown, fmt.Errorf("%q: %w", name, ErrUnsupportedProvider)
	}
}

// Connection is a borrowed connection profile: a description of how to reach a
// server, not a live session. The Options map always carries OptionServer.
type Connection struct {
	// ID identifies the connection for credential lookups.
	ID string

	// ProviderName is the provider identifier as stored in the profile (e.g. "MSSQL").
	ProviderName string

	// Options holds connection settings such as server, port, user and password.
	Options map[string]string
}

// Provider parses ProviderName into a ProviderKind.
func (c *Connection) Provider() (ProviderKind, error) {
	return ParseProviderKind(c.ProviderName)
}

// Option returns the value of an option, or "" when unset.
func (c *Connection) Option(key string) string {
	if c == nil || c.Options == nil {
		return ""
	}
	return c.Options[key]
}

// Server returns the target server identifier.
func (c *Connection) Server() string {
	return c.Option(OptionServer)
}

// MergeOptions copies values onto the connection options, overwriting existing keys.
// Empty values are skipped so a partial credential set never blanks out a profile field.
func (c *Connection) MergeOptions(values map[string]string) {
	if len(values) == 0 {
		return
	}
	if c.Options == nil {
		c.Options = make(map[string]string, len(values))
	}
	for k, v := range values {
		if v == "" {
			continue
		}
		c.Options[k] = v
	}
}

// Clone returns a deep copy of the connection.
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	clone := &Connection{ID: c.ID, ProviderName: c.ProviderName}
	if c.Options != nil {
		clone.Options = make(map[string]string, len(c.Options))
		for k, v := range c.Options {
			clone.Options[k] = v
		}
	}
	return clone
}

// String describes the connection without exposing secrets.
func (c *Connection) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s@%s)", c.ProviderName, c.ID, c.Server())
}
