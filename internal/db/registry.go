package db

import (
	"fmt"
	"sync"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// TransportConstructor creates a transport for one connection.
type TransportConstructor func(conn *mkdb.Connection, logger mkdb.Logger) (mkdb.Transport, error)

// Registry implements mkdb.TransportFactory by dispatching on the
// connection's provider kind. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[mkdb.ProviderKind]TransportConstructor
	logger mkdb.Logger
}

// NewRegistry returns a registry with every built-in transport registered.
func NewRegistry(logger mkdb.Logger) *Registry {
	r := NewEmptyRegistry(logger)
	r.Register(mkdb.ProviderMSSQL, func(c *mkdb.Connection, l mkdb.Logger) (mkdb.Transport, error) {
		return NewMSSQLTransport(c, l)
	})
	r.Register(mkdb.ProviderPostgres, func(c *mkdb.Connection, l mkdb.Logger) (mkdb.Transport, error) {
		return NewPostgresTransport(c, l)
	})
	r.Register(mkdb.ProviderMySQL, func(c *mkdb.Connection, l mkdb.Logger) (mkdb.Transport, error) {
		return NewMySQLTransport(c, l)
	})
	r.Register(mkdb.ProviderCassandra, func(c *mkdb.Connection, l mkdb.Logger) (mkdb.Transport, error) {
		return NewCassandraTransport(c, l)
	})
	return r
}

// NewEmptyRegistry returns a registry with no transports. Panics if logger is nil.
func NewEmptyRegistry(logger mkdb.Logger) *Registry {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Registry{ctors: make(map[mkdb.ProviderKind]TransportConstructor), logger: logger}
}

// Register sets the constructor for kind, replacing any previous one.
func (r *Registry) Register(kind mkdb.ProviderKind, ctor TransportConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[kind] = ctor
}

// Supports reports whether a constructor is registered for kind.
func (r *Registry) Supports(kind mkdb.ProviderKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[kind]
	return ok
}

// NewTransport creates an unconnected transport for conn.
func (r *Registry) NewTransport(conn *mkdb.Connection) (mkdb.Transport, error) {
	if conn == nil {
		return nil, mkdb.ErrNoActiveConnection
	}
	kind, err := conn.Provider()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no transport registered for %s: %w", kind, mkdb.ErrUnsupportedProvider)
	}
	return ctor(conn, r.logger)
}

var _ mkdb.TransportFactory = (*Registry)(nil)
