package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// MSSQLTransport talks to SQL Server and Azure SQL through go-mssqldb.
// One transport pins a single physical connection.
type MSSQLTransport struct {
	conn   *mkdb.Connection
	ep     mssqlEndpoint
	logger mkdb.Logger
	tokens TokenProvider
	db     *sql.DB
}

// NewMSSQLTransport validates conn and returns an unconnected transport.
func NewMSSQLTransport(conn *mkdb.Connection, logger mkdb.Logger) (*MSSQLTransport, error) {
	if err := checkAuth(mkdb.ProviderMSSQL, conn); err != nil {
		return nil, err
	}
	ep, err := resolveMSSQLEndpoint(conn)
	if err != nil {
		return nil, err
	}
	return &MSSQLTransport{conn: conn, ep: ep, logger: logger}, nil
}

// mssqlConnectionString builds a sqlserver:// URL for the connection.
// Credentials are omitted when withCredentials is false (access token login).
func mssqlConnectionString(conn *mkdb.Connection, ep mssqlEndpoint, withCredentials bool) string {
	u := &url.URL{Scheme: "sqlserver", Host: ep.urlHost()}
	if ep.instance != "" {
		u.Path = "/" + ep.instance
	}
	if withCredentials {
		u.User = url.UserPassword(conn.Option(mkdb.OptionUser), conn.Option(mkdb.OptionPassword))
	}

	q := url.Values{}
	database := conn.Option(mkdb.OptionDatabase)
	if database == "" {
		database = defaultMSSQLDatabase
	}
	q.Set("database", database)
	q.Set("app name", "mkdb")
	if v := conn.Option(mkdb.OptionEncrypt); v != "" {
		q.Set("encrypt", v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Connect opens and verifies the session.
func (t *MSSQLTransport) Connect(ctx context.Context) error {
	db, err := t.open(ctx)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return wrapConnectionError(err, mkdb.ProviderMSSQL, t.ep.endpoint)
	}
	t.db = db
	t.logger.Verbose("Connected to SQL Server at %s", t.ep)
	return nil
}

func (t *MSSQLTransport) open(ctx context.Context) (*sql.DB, error) {
	if authType(t.conn) != mkdb.AuthAzureMFA {
		connector, err := mssql.NewConnector(mssqlConnectionString(t.conn, t.ep, true))
		if err != nil {
			return nil, fmt.Errorf("invalid SQL Server connection settings: %w", err)
		}
		return sql.OpenDB(connector), nil
	}

	tokens := t.tokens
	if tokens == nil {
		p, err := NewAzureTokenProvider(AzureSQLScope, t.conn.Options)
		if err != nil {
			return nil, err
		}
		tokens = p
	}
	t.logger.Verbose("Using %s", tokens)

	connector, err := mssql.NewAccessTokenConnector(mssqlConnectionString(t.conn, t.ep, false), func() (string, error) {
		token, _, err := tokens.GetToken(ctx)
		return token, err
	})
	if err != nil {
		return nil, fmt.Errorf("invalid SQL Server connection settings: %w", err)
	}
	return sql.OpenDB(connector), nil
}

// Query runs sql and returns its first result set. A server error raised
// outside the statement's own TRY/CATCH is converted to the sentinel result.
func (t *MSSQLTransport) Query(ctx context.Context, sql string) (*mkdb.ResultSet, error) {
	if t.db == nil {
		return nil, errors.New("transport is not connected")
	}

	rows, err := t.db.QueryContext(ctx, sql)
	if err != nil {
		return mssqlServerError(err)
	}
	defer rows.Close()

	rs, err := readResultSet(rows)
	if err != nil {
		return mssqlServerError(err)
	}
	return rs, nil
}

func mssqlServerError(err error) (*mkdb.ResultSet, error) {
	var sqlErr mssql.Error
	if errors.As(err, &sqlErr) {
		return mkdb.ServerErrorResult(sqlErr.Message), nil
	}
	return nil, err
}

// Close releases the session. Safe to call when Connect failed.
func (t *MSSQLTransport) Close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.db = nil
	return err
}

var _ mkdb.Transport = (*MSSQLTransport)(nil)
