package mkdb

import "context"

// ConnectionResolver picks the connection a database is created on.
type ConnectionResolver interface {
	// Resolve returns explicit when non-nil, otherwise the active connection.
	// Returns ErrNoActiveConnection or ErrConfirmationDeclined to abort.
	Resolve(ctx context.Context, explicit *Connection) (*Connection, error)
}

// ResultReporter turns outcomes into user messages and task status.
type ResultReporter interface {
	Report(outcome Outcome, task Task)
	ReportAbort()
}

// CreateOptions are the inputs of one create-database invocation.
type CreateOptions struct {
	// Connection is an optional pre-resolved connection. When set, no
	// confirmation is asked.
	Connection *Connection

	// DatabaseName skips the name prompt when non-empty. It is validated
	// before any connection step.
	DatabaseName string
}

// DatabaseCreationService runs the whole create-database workflow.
type DatabaseCreationService interface {
	CreateDatabase(ctx context.Context, opts CreateOptions) error
}
