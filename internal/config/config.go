// Package config loads the vtable configuration file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/table"
)

// SchemaVersion is the configuration schema this build writes and understands.
const SchemaVersion = "1.0.0"

// supportedSchema is the semver constraint a config file's schema_version must satisfy.
const supportedSchema = "^1"

// Environment variable names.
const (
	EnvLogLevel  = "VTABLE_LOG_LEVEL"
	EnvLogFormat = "VTABLE_LOG_FORMAT"
	EnvHome      = "VTABLE_HOME"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration document.
type Config struct {
	SchemaVersion string        `yaml:"schema_version"`
	Table         TableConfig   `yaml:"table"`
	Logging       LoggingConfig `yaml:"logging"`
}

// TableConfig holds defaults for the table view.
type TableConfig struct {
	Overscan       int     `yaml:"overscan"`
	RowHeight      float64 `yaml:"row_height"`
	ToggleCycle    string  `yaml:"toggle_cycle"`
	MultiSort      bool    `yaml:"multi_sort"`
	Wrap           bool    `yaml:"wrap"`
	MaxColumnWidth int     `yaml:"max_column_width"`
	Collation      string  `yaml:"collation"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		Table: TableConfig{
			Overscan:       table.DefaultOverscan,
			RowHeight:      1,
			ToggleCycle:    table.CycleAscDescNone.String(),
			MaxColumnWidth: 40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir returns the vtable home directory, honouring VTABLE_HOME.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, ".vtable"), nil
}

// DefaultPath returns the location of the user config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the effective configuration: defaults, then the file at path
// (a missing default file is not an error), then environment overrides.
// An empty path selects DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if err = ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
}

// Validate checks the document against the supported schema and value ranges.
func (c *Config) Validate() error {
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(c.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: schema_version %q: %w", ErrInvalidConfig, c.SchemaVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: schema_version %s does not satisfy %s", ErrInvalidConfig, v, supportedSchema)
	}

	if c.Table.Overscan < 0 {
		return fmt.Errorf("%w: table.overscan must be >= 0, got %d", ErrInvalidConfig, c.Table.Overscan)
	}
	if c.Table.RowHeight < 0 {
		return fmt.Errorf("%w: table.row_height must be >= 0, got %g", ErrInvalidConfig, c.Table.RowHeight)
	}
	if c.Table.MaxColumnWidth < 0 {
		return fmt.Errorf("%w: table.max_column_width must be >= 0", ErrInvalidConfig)
	}
	if _, err = table.ParseToggleCycle(c.Table.ToggleCycle); err != nil {
		return fmt.Errorf("%w: table.toggle_cycle: %w", ErrInvalidConfig, err)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q must be console or json", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// fileHeader is written above the YAML document by Save.
const fileHeader = `# vtable configuration.
# A section present in this file replaces the built-in defaults as a whole:
# keys omitted from an edited section fall back to zero values, not defaults.
`

// ZeroedDefaults lists table settings that are zero where the built-in
// default is not, which is what a partial table section in a config file
// produces.
func (c *Config) ZeroedDefaults() []string {
	def := Default().Table
	var out []string
	if c.Table.Overscan == 0 && def.Overscan != 0 {
		out = append(out, fmt.Sprintf("table.overscan (default %d)", def.Overscan))
	}
	if c.Table.RowHeight == 0 && def.RowHeight != 0 {
		out = append(out, fmt.Sprintf("table.row_height (default %g)", def.RowHeight))
	}
	if c.Table.MaxColumnWidth == 0 && def.MaxColumnWidth != 0 {
		out = append(out, fmt.Sprintf("table.max_column_width (default %d)", def.MaxColumnWidth))
	}
	return out
}

// Save writes the configuration as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append([]byte(fileHeader), data...)
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
