//go:build conntest

package conntest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

var kinds = []mkdb.ProviderKind{mkdb.ProviderMSSQL, mkdb.ProviderPostgres, mkdb.ProviderMySQL}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestCreate_NewDatabase(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			srv := serverFor(t, kind)
			name := uniqueName("mkdb_new")

			outcome := newCreator().Create(context.Background(), srv.Connection("ct"), name)

			require.Equal(t, mkdb.OutcomeExecOK, outcome.Kind, "message: %s err: %v", outcome.Message, outcome.Err)
			assert.Equal(t, name, outcome.DatabaseName)
		})
	}
}

func TestCreate_DuplicateIsServerError(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			srv := serverFor(t, kind)
			name := uniqueName("mkdb_dup")
			c := newCreator()

			first := c.Create(context.Background(), srv.Connection("ct"), name)
			require.True(t, first.Succeeded(), "first create: %s", first.Message)

			second := c.Create(context.Background(), srv.Connection("ct"), name)
			assert.Equal(t, mkdb.OutcomeExecError, second.Kind)
			assert.True(t, strings.Contains(strings.ToLower(second.Message), "exist"),
				"server message should say the database exists: %q", second.Message)
		})
	}
}

func TestCreate_NameNeedingQuotes(t *testing.T) {
	names := map[mkdb.ProviderKind]string{
		mkdb.ProviderMSSQL:    "Sales]Data",
		mkdb.ProviderPostgres: `my "quoted" db`,
		mkdb.ProviderMySQL:    "back`tick",
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			srv := serverFor(t, kind)
			name := names[kind] + uniqueName("")

			outcome := newCreator().Create(context.Background(), srv.Connection("ct"), name)
			assert.True(t, outcome.Succeeded(), "message: %s err: %v", outcome.Message, outcome.Err)
		})
	}
}

func TestCreate_WrongPasswordIsConnectFailure(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			srv := serverFor(t, kind)
			conn := srv.Connection("ct")
			conn.Options[mkdb.OptionPassword] = "definitely-wrong-password"

			outcome := newCreator().Create(context.Background(), conn, uniqueName("mkdb_nope"))

			assert.Equal(t, mkdb.OutcomeConnectFailed, outcome.Kind)
			require.Error(t, outcome.Err)
		})
	}
}

func TestCreate_UnreachableServer(t *testing.T) {
	conn := &mkdb.Connection{
		ID:           "ct",
		ProviderName: "PGSQL",
		Options:      map[string]string{"server": "127.0.0.1", "port": "1", "user": "x", "password": "y"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	outcome := newCreator().Create(ctx, conn, "never")
	assert.Equal(t, mkdb.OutcomeConnectFailed, outcome.Kind)
}
