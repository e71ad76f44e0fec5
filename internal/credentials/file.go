package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/vvka-141/mkdb/pkg/mkdb"
	"gopkg.in/yaml.v3"
)

// FileName is the credentials file kept next to mkdb.yaml.
const FileName = "credentials.yaml"

type fileEntry struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// FileStore reads credentials.yaml:
//
//	local-sql:
//	  user: sa
//	  password: secret
type FileStore struct {
	path   string
	logger mkdb.Logger
}

var _ mkdb.CredentialStore = (*FileStore)(nil)

func NewFileStore(dir string, logger mkdb.Logger) *FileStore {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &FileStore{path: filepath.Join(dir, FileName), logger: logger}
}

func (s *FileStore) Credentials(ctx context.Context, connectionID string) (map[string]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o077 != 0 {
		s.logger.Info("Warning: %s has permissions %04o; it should be 0600", s.path, info.Mode().Perm())
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var entries map[string]fileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", s.path, mkdb.ErrInvalidConfig, err)
	}

	creds := map[string]string{}
	entry, ok := entries[connectionID]
	if !ok {
		return creds, nil
	}
	if entry.User != "" {
		creds[mkdb.OptionUser] = entry.User
	}
	if entry.Password != "" {
		creds[mkdb.OptionPassword] = entry.Password
	}
	return creds, nil
}
