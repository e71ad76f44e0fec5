package db

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// DefaultCassandraTimeout bounds connect and query round trips.
const DefaultCassandraTimeout = 10 * time.Second

// CassandraTransport creates keyspaces over a gocql session. Keyspaces are
// Cassandra's closest equivalent of a database.
type CassandraTransport struct {
	conn    *mkdb.Connection
	ep      endpoint
	logger  mkdb.Logger
	session *gocql.Session
}

// NewCassandraTransport validates conn and returns an unconnected transport.
func NewCassandraTransport(conn *mkdb.Connection, logger mkdb.Logger) (*CassandraTransport, error) {
	if err := checkAuth(mkdb.ProviderCassandra, conn); err != nil {
		return nil, err
	}
	ep, err := resolveEndpoint(conn, DefaultCassandraPort)
	if err != nil {
		return nil, err
	}
	return &CassandraTransport{conn: conn, ep: ep, logger: logger}, nil
}

// cassandraCluster builds the cluster config for the connection.
func cassandraCluster(conn *mkdb.Connection, ep endpoint) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(ep.host)
	cluster.Port = ep.port
	cluster.Timeout = DefaultCassandraTimeout
	cluster.ConnectTimeout = DefaultCassandraTimeout
	cluster.Consistency = gocql.Quorum
	cluster.DisableInitialHostLookup = true

	if user := conn.Option(mkdb.OptionUser); user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: user,
			Password: conn.Option(mkdb.OptionPassword),
		}
	}
	if optionBool(conn, mkdb.OptionEncrypt, false) {
		cluster.SslOpts = &gocql.SslOptions{EnableHostVerification: true}
	}
	return cluster
}

// Connect creates the session.
func (t *CassandraTransport) Connect(ctx context.Context) error {
	session, err := cassandraCluster(t.conn, t.ep).CreateSession()
	if err != nil {
		return wrapConnectionError(err, mkdb.ProviderCassandra, t.ep)
	}
	t.session = session
	t.logger.Verbose("Connected to Cassandra at %s", t.ep)
	return nil
}

// Query executes a schema statement. Rejections reported by the coordinator
// (already exists, syntax, unauthorized) become the sentinel result.
func (t *CassandraTransport) Query(ctx context.Context, stmt string) (*mkdb.ResultSet, error) {
	if t.session == nil {
		return nil, errors.New("transport is not connected")
	}

	if err := t.session.Query(stmt).WithContext(ctx).Exec(); err != nil {
		var reqErr gocql.RequestError
		if errors.As(err, &reqErr) {
			return mkdb.ServerErrorResult(reqErr.Message()), nil
		}
		return nil, err
	}
	return commandResult("OK"), nil
}

// Close releases the session. Safe to call when Connect failed.
func (t *CassandraTransport) Close() error {
	if t.session != nil {
		t.session.Close()
		t.session = nil
	}
	return nil
}

var _ mkdb.Transport = (*CassandraTransport)(nil)
