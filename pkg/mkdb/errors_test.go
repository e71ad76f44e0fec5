package mkdb_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, mkdb.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), mkdb.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), mkdb.ExitUsageError},
		{"general error", errors.New("something went wrong"), mkdb.ExitGeneralError},
		{"connection failed", mkdb.ErrConnectionFailed, mkdb.ExitConnectionError},
		{"wrapped connection failed", fmt.Errorf("create: %w", mkdb.ErrConnectionFailed), mkdb.ExitConnectionError},
		{"declined", mkdb.ErrConfirmationDeclined, mkdb.ExitDeclined},
		{"prompt cancelled", mkdb.ErrPromptCancelled, mkdb.ExitDeclined},
		{"execution failed", mkdb.ErrExecutionFailed, mkdb.ExitExecutionFailed},
		{"no active connection", mkdb.ErrNoActiveConnection, mkdb.ExitNoActiveConnection},
		{"invalid name", mkdb.ErrInvalidDatabaseName, mkdb.ExitInvalidName},
		{"unsupported provider", mkdb.ErrUnsupportedProvider, mkdb.ExitConfigError},
		{"connection refused text", errors.New("dial tcp: connection refused"), mkdb.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mkdb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestOutcome_AsError(t *testing.T) {
	ok := mkdb.Outcome{Kind: mkdb.OutcomeExecOK, DatabaseName: "db"}
	if err := ok.AsError(); err != nil {
		t.Fatalf("expected nil error for success, got %v", err)
	}

	transportErr := errors.New("login failed")
	connectFailed := mkdb.Outcome{Kind: mkdb.OutcomeConnectFailed, Err: transportErr}
	err := connectFailed.AsError()
	if !errors.Is(err, mkdb.ErrConnectionFailed) || !errors.Is(err, transportErr) {
		t.Errorf("expected connection failure wrapping transport error, got %v", err)
	}

	execErr := mkdb.Outcome{Kind: mkdb.OutcomeExecError, DatabaseName: "db", Message: "already exists"}
	err = execErr.AsError()
	if !errors.Is(err, mkdb.ErrExecutionFailed) {
		t.Errorf("expected execution failure, got %v", err)
	}
}

func TestOutcome_ZeroValueIsUnknown(t *testing.T) {
	var o mkdb.Outcome

	if o.Kind != mkdb.OutcomeUnknown || o.Kind.String() != "Unknown" {
		t.Fatalf("expected zero outcome to be Unknown, got %s", o.Kind)
	}
	if o.Succeeded() {
		t.Error("zero outcome must not count as success")
	}

	err := o.AsError()
	if !errors.Is(err, mkdb.ErrExecutionFailed) || errors.Is(err, mkdb.ErrConnectionFailed) {
		t.Errorf("expected execution failure, not a connection failure, got %v", err)
	}
}
