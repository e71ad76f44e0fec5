package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// MySQLTransport talks to MySQL and MariaDB through go-sql-driver/mysql.
type MySQLTransport struct {
	conn   *mkdb.Connection
	ep     endpoint
	logger mkdb.Logger
	tokens TokenProvider
	db     *sql.DB
}

// NewMySQLTransport validates conn and returns an unconnected transport.
func NewMySQLTransport(conn *mkdb.Connection, logger mkdb.Logger) (*MySQLTransport, error) {
	if err := checkAuth(mkdb.ProviderMySQL, conn); err != nil {
		return nil, err
	}
	ep, err := resolveEndpoint(conn, DefaultMySQLPort)
	if err != nil {
		return nil, err
	}
	return &MySQLTransport{conn: conn, ep: ep, logger: logger}, nil
}

// mysqlConfig builds the driver config. Token-based logins send the token as
// a cleartext password, which the driver only allows over TLS.
func mysqlConfig(conn *mkdb.Connection, ep endpoint) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = conn.Option(mkdb.OptionUser)
	cfg.Passwd = conn.Option(mkdb.OptionPassword)
	cfg.Net = "tcp"
	cfg.Addr = ep.String()
	cfg.DBName = conn.Option(mkdb.OptionDatabase)

	if optionBool(conn, mkdb.OptionEncrypt, false) {
		cfg.TLSConfig = "true"
	}
	switch authType(conn) {
	case mkdb.AuthAWSIAM, mkdb.AuthAzureMFA:
		cfg.AllowCleartextPasswords = true
		cfg.TLSConfig = "true"
	}
	return cfg
}

// Connect opens and verifies the session.
func (t *MySQLTransport) Connect(ctx context.Context) error {
	cfg := mysqlConfig(t.conn, t.ep)

	tokens := t.tokens
	if tokens == nil {
		var err error
		if tokens, err = passwordTokenProvider(t.conn, t.ep, AzureOSSRDBMSScope); err != nil {
			return err
		}
	}
	if tokens != nil {
		t.logger.Verbose("Using %s", tokens)
		token, _, err := tokens.GetToken(ctx)
		if err != nil {
			return err
		}
		cfg.Passwd = token
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return fmt.Errorf("invalid MySQL connection settings: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return wrapConnectionError(err, mkdb.ProviderMySQL, t.ep)
	}
	t.db = db
	t.logger.Verbose("Connected to MySQL at %s", t.ep)
	return nil
}

// Query runs sql and returns its first result set. A *mysql.MySQLError is
// converted to the sentinel result.
func (t *MySQLTransport) Query(ctx context.Context, sql string) (*mkdb.ResultSet, error) {
	if t.db == nil {
		return nil, errors.New("transport is not connected")
	}

	rows, err := t.db.QueryContext(ctx, sql)
	if err != nil {
		return mysqlServerError(err)
	}
	defer rows.Close()

	rs, err := readResultSet(rows)
	if err != nil {
		return mysqlServerError(err)
	}
	if len(rs.Columns) == 0 {
		return commandResult("OK"), nil
	}
	return rs, nil
}

func mysqlServerError(err error) (*mkdb.ResultSet, error) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mkdb.ServerErrorResult(myErr.Message), nil
	}
	return nil, err
}

// Close releases the session. Safe to call when Connect failed.
func (t *MySQLTransport) Close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.db = nil
	return err
}

var _ mkdb.Transport = (*MySQLTransport)(nil)
