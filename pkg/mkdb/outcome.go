package mkdb

import "fmt"

// OutcomeKind is the terminal state of one creation attempt.
type OutcomeKind int

const (
	// OutcomeUnknown is the zero value: no creation attempt produced a result.
	OutcomeUnknown OutcomeKind = iota
	// OutcomeConnectFailed means the transport connection could not be established.
	// No SQL was sent.
	OutcomeConnectFailed
	// OutcomeExecError means the server rejected the statement, or an unexpected
	// failure occurred after connecting.
	OutcomeExecError
	// OutcomeExecOK means the database was created.
	OutcomeExecOK
)

// String returns the state name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUnknown:
		return "Unknown"
	case OutcomeConnectFailed:
		return "ConnectFailed"
	case OutcomeExecError:
		return "ExecError"
	case OutcomeExecOK:
		return "ExecOK"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Outcome is the typed result of DatabaseCreator.Create.
type Outcome struct {
	Kind OutcomeKind

	// DatabaseName is the original, unescaped name.
	DatabaseName string

	// Server is the target server the statement was aimed at.
	Server string

	// Message holds the server's error text for OutcomeExecError.
	Message string

	// Err holds the underlying transport error for OutcomeConnectFailed, or the
	// unexpected error behind an OutcomeExecError.
	Err error
}

// Succeeded reports whether the database was created.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeExecOK
}

// AsError converts a failed outcome into an error wrapping the matching
// sentinel, so callers can map it to an exit code. Returns nil on success.
func (o Outcome) AsError() error {
	switch o.Kind {
	case OutcomeExecOK:
		return nil
	case OutcomeConnectFailed:
		if o.Err != nil {
			return fmt.Errorf("%w: %w", ErrConnectionFailed, o.Err)
		}
		return ErrConnectionFailed
	case OutcomeUnknown:
		return fmt.Errorf("create database %q: %w: no result was produced", o.DatabaseName, ErrExecutionFailed)
	default:
		return fmt.Errorf("create database %q: %w: %s", o.DatabaseName, ErrExecutionFailed, o.Message)
	}
}

// ResultSet is the first result returned by a transport query. Values are
// rendered as display strings; NULL renders as "NULL".
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// FirstColumn returns the name of the first column, or "" for an empty result.
func (r *ResultSet) FirstColumn() string {
	if r == nil || len(r.Columns) == 0 {
		return ""
	}
	return r.Columns[0]
}

// FirstValue returns the first row's first value, or "" when absent.
func (r *ResultSet) FirstValue() string {
	if r == nil || len(r.Rows) == 0 || len(r.Rows[0]) == 0 {
		return ""
	}
	return r.Rows[0][0]
}

// ServerErrorResult builds the one-row sentinel result used to carry a server
// error message through the regular query path.
func ServerErrorResult(message string) *ResultSet {
	return &ResultSet{
		Columns: []string{ErrorMessageColumn},
		Rows:    [][]string{{message}},
	}
}
