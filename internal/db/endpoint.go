package db

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Default ports per provider kind.
const (
	DefaultMSSQLPort     = 1433
	DefaultPostgresPort  = 5432
	DefaultMySQLPort     = 3306
	DefaultCassandraPort = 9042
)

// Management databases used to issue CREATE DATABASE when the profile does
// not name one.
const (
	defaultMSSQLDatabase    = "master"
	defaultPostgresDatabase = "postgres"
)

// endpoint is the resolved network address of a connection.
type endpoint struct {
	host string
	port int
}

func (e endpoint) String() string {
	return net.JoinHostPort(e.host, strconv.Itoa(e.port))
}

// resolveEndpoint reads the server and port options. A port embedded in the
// server option ("host:port") is honoured when no port option is set.
func resolveEndpoint(conn *mkdb.Connection, defaultPort int) (endpoint, error) {
	server := conn.Server()
	if server == "" {
		return endpoint{}, fmt.Errorf("%w: connection %q has no %s option", mkdb.ErrInvalidConfig, conn.ID, mkdb.OptionServer)
	}

	host, port := server, defaultPort
	if h, p, err := net.SplitHostPort(server); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	if raw := conn.Option(mkdb.OptionPort); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 65535 {
			return endpoint{}, fmt.Errorf("%w: invalid %s %q", mkdb.ErrInvalidConfig, mkdb.OptionPort, raw)
		}
		port = n
	}

	return endpoint{host: host, port: port}, nil
}

// authType returns the connection's authentication type, defaulting to SqlLogin.
func authType(conn *mkdb.Connection) string {
	if a := conn.Option(mkdb.OptionAuthenticationType); a != "" {
		return a
	}
	return mkdb.AuthSQLLogin
}

// optionBool parses a boolean option, returning def when unset or unparsable.
func optionBool(conn *mkdb.Connection, key string, def bool) bool {
	v, err := strconv.ParseBool(conn.Option(key))
	if err != nil {
		return def
	}
	return v
}

func unsupportedAuth(kind mkdb.ProviderKind, auth string) error {
	return fmt.Errorf("%s does not support authentication type %q: %w", kind, auth, mkdb.ErrUnsupportedAuthMethod)
}

// mssqlEndpoint is a SQL Server address. A named instance is reached through
// the SQL Browser unless a port is given explicitly.
type mssqlEndpoint struct {
	endpoint
	instance     string
	explicitPort bool
}

// resolveMSSQLEndpoint parses the server forms SQL Server tools accept:
// "host", "tcp:host", "host,port", "host\instance", "host\instance,port"
// and "host:port". "." and "(local)" mean localhost. The port and instance
// options override what the server string carries.
func resolveMSSQLEndpoint(conn *mkdb.Connection) (mssqlEndpoint, error) {
	server := strings.TrimSpace(conn.Server())
	if server == "" {
		return mssqlEndpoint{}, fmt.Errorf("%w: connection %q has no %s option", mkdb.ErrInvalidConfig, conn.ID, mkdb.OptionServer)
	}
	if len(server) > 4 && strings.EqualFold(server[:4], "tcp:") {
		server = server[4:]
	}

	ep := mssqlEndpoint{endpoint: endpoint{port: DefaultMSSQLPort}}

	if i := strings.LastIndexByte(server, ','); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(server[i+1:]))
		if err != nil || n <= 0 || n > 65535 {
			return mssqlEndpoint{}, fmt.Errorf("%w: invalid port in %s %q", mkdb.ErrInvalidConfig, mkdb.OptionServer, conn.Server())
		}
		ep.port, ep.explicitPort = n, true
		server = server[:i]
	}

	if i := strings.IndexByte(server, '\\'); i >= 0 {
		ep.instance = server[i+1:]
		server = server[:i]
	} else if h, p, err := net.SplitHostPort(server); err == nil && !ep.explicitPort {
		if n, err := strconv.Atoi(p); err == nil {
			server, ep.port, ep.explicitPort = h, n, true
		}
	}

	server = strings.Trim(server, "[]")
	switch strings.ToLower(server) {
	case ".", "(local)", "(localdb)":
		server = "localhost"
	}
	if server == "" {
		return mssqlEndpoint{}, fmt.Errorf("%w: no host in %s %q", mkdb.ErrInvalidConfig, mkdb.OptionServer, conn.Server())
	}
	ep.host = server

	if raw := conn.Option(mkdb.OptionPort); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 65535 {
			return mssqlEndpoint{}, fmt.Errorf("%w: invalid %s %q", mkdb.ErrInvalidConfig, mkdb.OptionPort, raw)
		}
		ep.port, ep.explicitPort = n, true
	}
	if instance := conn.Option(mkdb.OptionInstance); instance != "" {
		ep.instance = instance
	}
	return ep, nil
}

// urlHost is the sqlserver:// host part. go-mssqldb resolves a named
// instance's port itself when none is given.
func (e mssqlEndpoint) urlHost() string {
	if e.instance != "" && !e.explicitPort {
		return e.host
	}
	return e.endpoint.String()
}

func (e mssqlEndpoint) String() string {
	if e.instance != "" {
		return e.host + `\` + e.instance
	}
	return e.endpoint.String()
}
