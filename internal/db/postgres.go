package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// PostgresTransport opens a single pgx connection. CREATE DATABASE cannot run
// inside a transaction or DO block, so server rejections are turned into the
// sentinel result here instead of in SQL.
type PostgresTransport struct {
	conn   *mkdb.Connection
	ep     endpoint
	logger mkdb.Logger
	tokens TokenProvider

	pg     *pgx.Conn
	dialer *cloudsqlconn.Dialer
}

// NewPostgresTransport validates conn and returns an unconnected transport.
func NewPostgresTransport(conn *mkdb.Connection, logger mkdb.Logger) (*PostgresTransport, error) {
	if err := checkAuth(mkdb.ProviderPostgres, conn); err != nil {
		return nil, err
	}
	ep := endpoint{host: conn.Option(mkdb.OptionInstance), port: DefaultPostgresPort}
	if authType(conn) == mkdb.AuthGoogleIAM {
		if ep.host == "" {
			return nil, fmt.Errorf("%w: Google Cloud SQL IAM auth requires the %s option (project:region:instance)",
				mkdb.ErrInvalidConfig, mkdb.OptionInstance)
		}
	} else {
		var err error
		if ep, err = resolveEndpoint(conn, DefaultPostgresPort); err != nil {
			return nil, err
		}
	}
	return &PostgresTransport{conn: conn, ep: ep, logger: logger}, nil
}

// postgresConfig builds the pgx connection config. Without a password option
// pgx looks the password up in $PGPASSFILE or ~/.pgpass for the profile's
// host, port, database and user. Connect replaces it when a token provider
// is in play.
func postgresConfig(conn *mkdb.Connection, ep endpoint) (*pgx.ConnConfig, error) {
	database := conn.Option(mkdb.OptionDatabase)
	if database == "" {
		database = defaultPostgresDatabase
	}

	sslmode := "prefer"
	if optionBool(conn, mkdb.OptionEncrypt, false) {
		sslmode = "require"
	}
	if authType(conn) == mkdb.AuthGoogleIAM {
		sslmode = "disable" // the Cloud SQL connector already encrypts
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s application_name=mkdb",
		quoteDSNValue(ep.host), ep.port, quoteDSNValue(database), sslmode)
	if user := conn.Option(mkdb.OptionUser); user != "" {
		dsn += " user=" + quoteDSNValue(user)
	}
	if password := conn.Option(mkdb.OptionPassword); password != "" {
		dsn += " password=" + quoteDSNValue(password)
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL connection settings: %w", err)
	}
	return cfg, nil
}

// quoteDSNValue quotes a keyword/value DSN value.
func quoteDSNValue(v string) string {
	out := []byte{'\''}
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' || v[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, v[i])
	}
	return string(append(out, '\''))
}

// Connect opens the connection, acquiring a cloud token or Cloud SQL dialer
// when the authentication type calls for it.
func (t *PostgresTransport) Connect(ctx context.Context) error {
	cfg, err := postgresConfig(t.conn, t.ep)
	if err != nil {
		return err
	}

	switch authType(t.conn) {
	case mkdb.AuthGoogleIAM:
		dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
		if err != nil {
			return fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
		}
		instance := t.ep.host
		cfg.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.Dial(ctx, instance)
		}
		t.dialer = dialer
	case mkdb.AuthAzureMFA, mkdb.AuthAWSIAM:
		tokens := t.tokens
		if tokens == nil {
			if tokens, err = passwordTokenProvider(t.conn, t.ep, AzureOSSRDBMSScope); err != nil {
				return err
			}
		}
		t.logger.Verbose("Using %s", tokens)
		token, _, err := tokens.GetToken(ctx)
		if err != nil {
			return err
		}
		cfg.Password = token
	}

	pg, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return wrapConnectionError(err, mkdb.ProviderPostgres, t.ep)
	}
	t.pg = pg
	t.logger.Verbose("Connected to PostgreSQL at %s", t.ep)
	return nil
}

// Query runs sql and returns its first result set. Statements without a
// result report their command tag under the NoError column.
func (t *PostgresTransport) Query(ctx context.Context, sql string) (*mkdb.ResultSet, error) {
	if t.pg == nil {
		return nil, errors.New("transport is not connected")
	}

	rows, err := t.pg.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return pgServerError(err)
	}
	defer rows.Close()

	rs := &mkdb.ResultSet{}
	for _, fd := range rows.FieldDescriptions() {
		rs.Columns = append(rs.Columns, fd.Name)
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = displayValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return pgServerError(err)
	}

	if len(rs.Columns) == 0 {
		return commandResult(rows.CommandTag().String()), nil
	}
	return rs, nil
}

func pgServerError(err error) (*mkdb.ResultSet, error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mkdb.ServerErrorResult(pgErr.Message), nil
	}
	return nil, err
}

// Close releases the connection and any Cloud SQL dialer.
func (t *PostgresTransport) Close() error {
	var err error
	if t.pg != nil {
		err = t.pg.Close(context.Background())
		t.pg = nil
	}
	if t.dialer != nil {
		if derr := t.dialer.Close(); err == nil {
			err = derr
		}
		t.dialer = nil
	}
	return err
}

var _ mkdb.Transport = (*PostgresTransport)(nil)
