// Package resolver picks the connection a database will be created on.
package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Resolver chooses between an explicit connection and the host's active one.
type Resolver struct {
	source      mkdb.ConnectionSource
	credentials mkdb.CredentialStore
	confirmer   mkdb.Confirmer
	logger      mkdb.Logger
}

// New creates a Resolver. Panics if any dependency is nil.
func New(source mkdb.ConnectionSource, credentials mkdb.CredentialStore, confirmer mkdb.Confirmer, logger mkdb.Logger) *Resolver {
	if source == nil {
		panic("source cannot be nil")
	}
	if credentials == nil {
		panic("credentials cannot be nil")
	}
	if confirmer == nil {
		panic("confirmer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Resolver{
		source:      source,
		credentials: credentials,
		confirmer:   confirmer,
		logger:      logger,
	}
}

// ConfirmationQuestion is the question asked before creating a database on an
// implicit connection.
func ConfirmationQuestion(server string) string {
	return fmt.Sprintf("Create a new database on server %s?", server)
}

// Resolve returns the connection to create the database on.
//
// An explicit connection is returned unchanged. Otherwise the active
// connection is used; when its provider is mkdb.DesignatedProvider, stored
// credentials are merged into a copy of it and the user must confirm.
//
// Errors:
//   - mkdb.ErrNoActiveConnection when there is neither
//   - mkdb.ErrConfirmationDeclined when the user does not confirm
func (r *Resolver) Resolve(ctx context.Context, explicit *mkdb.Connection) (*mkdb.Connection, error) {
	if explicit != nil {
		r.logger.Verbose("Using explicit connection %s", explicit)
		return explicit, nil
	}

	active, err := r.source.ActiveConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active connection: %w", err)
	}
	if active == nil {
		return nil, mkdb.ErrNoActiveConnection
	}

	kind, err := active.Provider()
	if err != nil || kind != mkdb.DesignatedProvider {
		r.logger.Verbose("Using active connection %s", active)
		return active, nil
	}

	conn := active.Clone()
	stored, err := r.credentials.Credentials(ctx, conn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for connection %q: %w", conn.ID, err)
	}
	conn.MergeOptions(stored)
	r.logger.Verbose("Merged %d stored credential value(s) into connection %q", len(stored), conn.ID)

	ok, err := r.confirmer.Confirm(ctx, ConfirmationQuestion(conn.Server()))
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return nil, mkdb.ErrConfirmationDeclined
	}
	return conn, nil
}
