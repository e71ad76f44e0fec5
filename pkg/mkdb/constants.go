package mkdb

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess            = 0  // Database created
	ExitGeneralError       = 1  // Unknown or unclassified error
	ExitUsageError         = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic              = 3  // Internal panic (unexpected crash)
	ExitConfigError        = 10 // Invalid configuration or unsupported provider
	ExitConnectionError    = 11 // Failed to connect to the server
	ExitDeclined           = 12 // User declined confirmation or dismissed the prompt
	ExitExecutionFailed    = 13 // Server rejected CREATE DATABASE
	ExitNoActiveConnection = 14 // No explicit or active connection
	ExitInvalidName        = 15 // Database name failed validation
)

const (
	// MaxDatabaseNameLength is the longest database name accepted by the name validator.
	MaxDatabaseNameLength = 124

	// ErrorMessageColumn is the sentinel column name a guarded statement uses
	// to return a server-side error as a result row.
	ErrorMessageColumn = "ErrorMessage"

	// NoErrorColumn is the column a guarded statement selects on success.
	NoErrorColumn = "NoError"
)

// Option keys understood by every transport.
const (
	OptionServer             = "server"
	OptionPort               = "port"
	OptionDatabase           = "database"
	OptionUser               = "user"
	OptionPassword           = "password"
	OptionAuthenticationType = "authenticationType"
	OptionEncrypt            = "encrypt"
	OptionRegion             = "region"
	OptionInstance           = "instance"
	OptionReplicationFactor  = "replicationFactor"
)

// Authentication types carried in OptionAuthenticationType.
const (
	AuthSQLLogin  = "SqlLogin"
	AuthAzureMFA  = "AzureMFA"
	AuthAWSIAM    = "AWSIAM"
	AuthGoogleIAM = "GoogleIAM"
)
