package mkdb

import "context"

// Transport is a live, connected session to a database server, created from a
// Connection profile for the duration of one creation attempt.
//
// Thread-Safety: NOT safe for concurrent use. One Transport serves one invocation.
type Transport interface {
	// Connect establishes the session. A failure here is a hard failure.
	Connect(ctx context.Context) error

	// Query executes sql and returns its first result set. Server-side rejections
	// of the statement should come back as ServerErrorResult rather than as an
	// error where the backend allows telling them apart.
	Query(ctx context.Context, sql string) (*ResultSet, error)

	// Close releases the session. Safe to call when Connect failed.
	Close() error
}

// TransportFactory creates the transport for a connection's provider kind.
type TransportFactory interface {
	NewTransport(conn *Connection) (Transport, error)
}

// TransportFactoryFunc adapts a function to TransportFactory.
type TransportFactoryFunc func(conn *Connection) (Transport, error)

// NewTransport calls f(conn).
func (f TransportFactoryFunc) NewTransport(conn *Connection) (Transport, error) {
	return f(conn)
}

// DatabaseCreator issues the guarded creation statement and classifies the result.
type DatabaseCreator interface {
	Create(ctx context.Context, conn *Connection, rawName string) Outcome
}
