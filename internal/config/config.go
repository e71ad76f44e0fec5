// Package config loads mkdb.yaml connection profiles.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vvka-141/mkdb/pkg/mkdb"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "mkdb.yaml"

	// EnvConfigDir names the directory searched when --config-dir is not given
	// and the current directory has no mkdb.yaml.
	EnvConfigDir = "MKDB_CONFIG_DIR"

	// EnvActiveConnection overrides the active profile id.
	EnvActiveConnection = "MKDB_ACTIVE_CONNECTION"
)

type ConnectionConfig struct {
	ID       string            `yaml:"id"`
	Provider string            `yaml:"provider"`
	Options  map[string]string `yaml:"options"`
}

type ProjectConfig struct {
	Active      string             `yaml:"active"`
	Connections []ConnectionConfig `yaml:"connections"`

	// Dir is the directory the file was loaded from.
	Dir string `yaml:"-"`
}

// Load reads mkdb.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", configPath, mkdb.ErrInvalidConfig, err)
	}
	cfg.Dir = dir
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// FindDir picks the directory holding mkdb.yaml: explicit when set, otherwise
// the working directory, then $MKDB_CONFIG_DIR. Returns the working directory
// when neither has a config so Load reports ErrConfigNotFound.
func FindDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	if fileExists(filepath.Join(wd, ConfigFileName)) {
		return wd
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return env
	}
	return wd
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks every profile and reports all problems at once.
func (c *ProjectConfig) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Connections))
	for i, conn := range c.Connections {
		if conn.ID == "" {
			errs = append(errs, fmt.Errorf("connections[%d]: id is required", i))
		} else if seen[conn.ID] {
			errs = append(errs, fmt.Errorf("connections[%d]: duplicate id %q", i, conn.ID))
		}
		seen[conn.ID] = true

		if _, err := mkdb.ParseProviderKind(conn.Provider); err != nil {
			errs = append(errs, fmt.Errorf("connections[%d]: provider %w", i, err))
		}
		if conn.Options[mkdb.OptionServer] == "" {
			errs = append(errs, fmt.Errorf("connections[%d]: option %q is required", i, mkdb.OptionServer))
		}
	}
	if c.Active != "" && !seen[c.Active] {
		errs = append(errs, fmt.Errorf("active connection %q is not defined", c.Active))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", mkdb.ErrInvalidConfig, errors.Join(errs...))
}

// Lookup returns the profile with the given id as a Connection.
func (c *ProjectConfig) Lookup(id string) (*mkdb.Connection, bool) {
	for _, conn := range c.Connections {
		if conn.ID == id {
			return conn.toConnection(), true
		}
	}
	return nil, false
}

// IDs returns the profile ids in sorted order.
func (c *ProjectConfig) IDs() []string {
	ids := make([]string, 0, len(c.Connections))
	for _, conn := range c.Connections {
		ids = append(ids, conn.ID)
	}
	sort.Strings(ids)
	return ids
}

func (cc ConnectionConfig) toConnection() *mkdb.Connection {
	conn := &mkdb.Connection{
		ID:           cc.ID,
		ProviderName: cc.Provider,
		Options:      make(map[string]string, len(cc.Options)),
	}
	for k, v := range cc.Options {
		conn.Options[k] = v
	}
	return conn
}

// ProfileSource serves the active profile of a config directory as the
// host's active connection.
type ProfileSource struct {
	dir    string
	getenv func(string) string
}

var _ mkdb.ConnectionSource = (*ProfileSource)(nil)

func NewProfileSource(dir string) *ProfileSource {
	return &ProfileSource{dir: dir, getenv: os.Getenv}
}

// ActiveConnection returns the profile named by $MKDB_ACTIVE_CONNECTION or
// the file's "active" key. A missing config file or an empty active id means
// there is no active connection.
func (s *ProfileSource) ActiveConnection(ctx context.Context) (*mkdb.Connection, error) {
	cfg, err := Load(s.dir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return nil, nil
		}
		return nil, err
	}

	active := cfg.Active
	if env := s.getenv(EnvActiveConnection); env != "" {
		active = env
	}
	if active == "" {
		return nil, nil
	}

	conn, ok := cfg.Lookup(active)
	if !ok {
		return nil, fmt.Errorf("active connection %q: %w", active, mkdb.ErrInvalidConfig)
	}
	return conn, nil
}

// Connection looks up a profile by id for the explicit --connection path.
func (s *ProfileSource) Connection(id string) (*mkdb.Connection, error) {
	cfg, err := Load(s.dir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("connection %q: %w in %s", id, err, s.dir)
		}
		return nil, err
	}
	conn, ok := cfg.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("connection %q is not defined: %w", id, mkdb.ErrInvalidConfig)
	}
	return conn, nil
}
