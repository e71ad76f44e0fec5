package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database authentication.
type TokenProvider interface {
	// GetToken acquires a token used in place of a password (or as an access
	// token on SQL Server). Returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must NOT include secrets.
	String() string
}

// OAuth scopes Azure AD issues database tokens for.
const (
	// AzureSQLScope is the resource for Azure SQL Database and SQL Server with Entra ID.
	AzureSQLScope = "https://database.windows.net/.default"

	// AzureOSSRDBMSScope covers Azure Database for PostgreSQL and MySQL.
	AzureOSSRDBMSScope = "https://ossrdbms-aad.database.windows.net/.default"
)
