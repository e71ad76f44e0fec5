package credentials

import (
	"context"
	"os"
	"strings"
	"unicode"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// EnvStore reads MKDB_<ID>_USER and MKDB_<ID>_PASSWORD.
type EnvStore struct {
	getenv func(string) string
}

var _ mkdb.CredentialStore = (*EnvStore)(nil)

func NewEnvStore() *EnvStore {
	return &EnvStore{getenv: os.Getenv}
}

func (s *EnvStore) Credentials(ctx context.Context, connectionID string) (map[string]string, error) {
	prefix := EnvPrefix(connectionID)
	creds := map[string]string{}
	if v := s.getenv(prefix + "USER"); v != "" {
		creds[mkdb.OptionUser] = v
	}
	if v := s.getenv(prefix + "PASSWORD"); v != "" {
		creds[mkdb.OptionPassword] = v
	}
	return creds, nil
}

// EnvPrefix returns the variable prefix for a connection id: upper-cased,
// with every non-alphanumeric rune replaced by '_'.
func EnvPrefix(connectionID string) string {
	var b strings.Builder
	b.WriteString("MKDB_")
	for _, r := range connectionID {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	return b.String()
}
