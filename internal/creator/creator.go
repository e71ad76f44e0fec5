package creator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Creator implements mkdb.DatabaseCreator on top of a TransportFactory.
type Creator struct {
	transports mkdb.TransportFactory
	logger     mkdb.Logger
}

// New creates a Creator. Panics if any dependency is nil.
func New(transports mkdb.TransportFactory, logger mkdb.Logger) *Creator {
	if transports == nil {
		panic("transports cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Creator{transports: transports, logger: logger}
}

// Create opens a transport for conn, runs the guarded creation statement for
// rawName and classifies the first result. rawName must already be validated.
//
// The transport is closed exactly once on every path, including panics
// raised by the transport, which are reported as OutcomeExecError.
func (c *Creator) Create(ctx context.Context, conn *mkdb.Connection, rawName string) (outcome mkdb.Outcome) {
	outcome = mkdb.Outcome{DatabaseName: rawName, Server: conn.Server()}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Recovered from panic while creating database %q: %v", rawName, r)
			outcome.Kind = mkdb.OutcomeExecError
			outcome.Message = fmt.Sprint(r)
			outcome.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	sql, err := Statement(conn, rawName)
	if errors.Is(err, mkdb.ErrUnsupportedProvider) {
		outcome.Kind = mkdb.OutcomeConnectFailed
		outcome.Err = err
		return outcome
	}
	if err != nil {
		outcome.Kind = mkdb.OutcomeExecError
		outcome.Message = err.Error()
		outcome.Err = err
		return outcome
	}

	mkdb.TraceConnecting(ctx)
	c.logger.Verbose("Connecting to %s", conn)

	transport, err := c.transports.NewTransport(conn)
	if err != nil {
		c.logger.Verbose("Cannot create transport for %s: %v", conn, err)
		outcome.Kind = mkdb.OutcomeConnectFailed
		outcome.Err = err
		return outcome
	}
	transport = releaseOnce(transport)
	defer func() {
		if cerr := transport.Close(); cerr != nil {
			c.logger.Verbose("Closing transport for %s: %v", conn, cerr)
		}
	}()

	if err := transport.Connect(ctx); err != nil {
		c.logger.Verbose("Connect to %s failed: %v", conn, err)
		outcome.Kind = mkdb.OutcomeConnectFailed
		outcome.Err = err
		return outcome
	}

	mkdb.TraceExecuting(ctx)
	c.logger.Verbose("Executing: %s", sql)

	result, err := transport.Query(ctx, sql)
	if err != nil {
		outcome.Kind = mkdb.OutcomeExecError
		outcome.Message = err.Error()
		outcome.Err = err
		return outcome
	}

	if result.FirstColumn() == mkdb.ErrorMessageColumn {
		outcome.Kind = mkdb.OutcomeExecError
		outcome.Message = result.FirstValue()
		return outcome
	}

	outcome.Kind = mkdb.OutcomeExecOK
	return outcome
}

// onceTransport makes Close idempotent so a deferred Close and an explicit
// one never release the underlying session twice.
type onceTransport struct {
	mkdb.Transport
	once sync.Once
	err  error
}

func releaseOnce(t mkdb.Transport) mkdb.Transport {
	if _, ok := t.(*onceTransport); ok {
		return t
	}
	return &onceTransport{Transport: t}
}

func (t *onceTransport) Close() error {
	t.once.Do(func() {
		t.err = t.Transport.Close()
	})
	return t.err
}

var _ mkdb.DatabaseCreator = (*Creator)(nil)
