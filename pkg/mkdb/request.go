package mkdb

import (
	"fmt"
	"unicode/utf8"
)

// CreationRequest pairs a validated database name with the connection it will
// be created on. It lives for a single invocation.
type CreationRequest struct {
	// DatabaseName is the raw, unescaped name as typed by the user.
	DatabaseName string

	// Connection is the resolved and, where required, confirmed connection.
	Connection *Connection
}

// NewCreationRequest validates the name and returns a request bound to conn.
func NewCreationRequest(name string, conn *Connection) (*CreationRequest, error) {
	if err := ValidateDatabaseName(name); err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, fmt.Errorf("creation request requires a connection: %w", ErrNoActiveConnection)
	}
	return &CreationRequest{DatabaseName: name, Connection: conn}, nil
}

// DatabaseNameValidationMessage returns the inline validation text for a
// prompt, or "" when the value is acceptable. Empty input is not flagged here:
// an empty submission dismisses the prompt instead.
func DatabaseNameValidationMessage(value string) string {
	if utf8.RuneCountInString(value) > MaxDatabaseNameLength {
		return fmt.Sprintf("Must be %d chars or less", MaxDatabaseNameLength)
	}
	return ""
}

// ValidateDatabaseName checks that name is non-empty and at most
// MaxDatabaseNameLength characters.
func ValidateDatabaseName(name string) error {
	if name == "" {
		return fmt.Errorf("database name is required: %w", ErrInvalidDatabaseName)
	}
	if msg := DatabaseNameValidationMessage(name); msg != "" {
		return fmt.Errorf("%s: %w", msg, ErrInvalidDatabaseName)
	}
	return nil
}
