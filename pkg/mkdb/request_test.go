package mkdb_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

func TestValidateDatabaseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Sales", false},
		{"with bracket", "Sales]Data", false},
		{"exactly max", strings.Repeat("a", mkdb.MaxDatabaseNameLength), false},
		{"multibyte at max", strings.Repeat("é", mkdb.MaxDatabaseNameLength), false},
		{"one over max", strings.Repeat("a", mkdb.MaxDatabaseNameLength+1), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mkdb.ValidateDatabaseName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDatabaseName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, mkdb.ErrInvalidDatabaseName) {
				t.Errorf("expected ErrInvalidDatabaseName, got %v", err)
			}
		})
	}
}

func TestDatabaseNameValidationMessage(t *testing.T) {
	if msg := mkdb.DatabaseNameValidationMessage("ok"); msg != "" {
		t.Errorf("expected no message, got %q", msg)
	}
	if msg := mkdb.DatabaseNameValidationMessage(""); msg != "" {
		t.Errorf("empty input should not produce an inline message, got %q", msg)
	}
	msg := mkdb.DatabaseNameValidationMessage(strings.Repeat("x", 125))
	if msg != "Must be 124 chars or less" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestNewCreationRequest(t *testing.T) {
	conn := &mkdb.Connection{ID: "c1", ProviderName: "MSSQL"}

	req, err := mkdb.NewCreationRequest("Sales", conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.DatabaseName != "Sales" || req.Connection != conn {
		t.Errorf("unexpected request: %+v", req)
	}

	if _, err := mkdb.NewCreationRequest("Sales", nil); !errors.Is(err, mkdb.ErrNoActiveConnection) {
		t.Errorf("expected ErrNoActiveConnection, got %v", err)
	}
	if _, err := mkdb.NewCreationRequest(strings.Repeat("x", 200), conn); !errors.Is(err, mkdb.ErrInvalidDatabaseName) {
		t.Errorf("expected ErrInvalidDatabaseName, got %v", err)
	}
}

func TestResultSet_Accessors(t *testing.T) {
	var empty *mkdb.ResultSet
	if empty.FirstColumn() != "" || empty.FirstValue() != "" {
		t.Error("nil result set should return empty strings")
	}

	rs := mkdb.ServerErrorResult("boom")
	if rs.FirstColumn() != mkdb.ErrorMessageColumn {
		t.Errorf("unexpected first column %q", rs.FirstColumn())
	}
	if rs.FirstValue() != "boom" {
		t.Errorf("unexpected first value %q", rs.FirstValue())
	}
}
