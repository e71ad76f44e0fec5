package mkdb

import "context"

// ConnectionSource exposes the host's notion of the currently active connection.
type ConnectionSource interface {
	// ActiveConnection returns the active connection, or nil when there is none.
	ActiveConnection(ctx context.Context) (*Connection, error)
}

// CredentialStore looks up stored credentials for a connection id.
// A store with nothing for the id returns an empty map and no error.
type CredentialStore interface {
	Credentials(ctx context.Context, connectionID string) (map[string]string, error)
}

// Confirmer asks the user a yes/no question before acting on an implicit connection.
//
// Implementations:
//   - ui.Console: line-based Yes/No prompt
//   - ui.AssumeYesConfirmer: approves without asking (--yes)
//   - tui.Prompter: arrow-key selector in interactive terminals
type Confirmer interface {
	// Confirm returns true only on an explicit "yes". Dismissal returns false, nil.
	Confirm(ctx context.Context, question string) (bool, error)
}

// NamePrompter asks for the new database name.
type NamePrompter interface {
	// PromptDatabaseName shows prompt and validates input inline with validate,
	// which returns a message for invalid input or "". An empty result with a
	// nil error means the user dismissed the prompt.
	PromptDatabaseName(ctx context.Context, prompt string, validate func(string) string) (string, error)
}

// Notifier displays user-visible messages.
type Notifier interface {
	ShowInfo(message string)
	ShowError(message string)
}
