// Package config loads the settings needed to open a Root from a YAML file
// and the environment.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/fsentity"
	"github.com/jmgilman/go/fsentity/errors"
	"github.com/jmgilman/go/fsentity/fs/billy"
	"github.com/jmgilman/go/fsentity/fs/core"
	"github.com/jmgilman/go/fsentity/internal/logging"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = stderrors.New("config file not found")

// FileName is the config file looked up by the CLI when no path is given.
const FileName = "fsentity.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvRoot      = "FSENTITY_ROOT"
	EnvBackend   = "FSENTITY_BACKEND"
	EnvLogLevel  = "FSENTITY_LOG_LEVEL"
	EnvLogFormat = "FSENTITY_LOG_FORMAT"
)

// Config describes a Root. Modes are octal strings such as "0644".
type Config struct {
	Root      string `yaml:"root"`
	Backend   string `yaml:"backend"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
	FileMode  string `yaml:"file_mode,omitempty"`
	DirMode   string `yaml:"dir_mode,omitempty"`

	// Concurrency bounds parallel stats during directory listings; 0 keeps
	// the default.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Default returns a Config for the local backend with no root set.
func Default() *Config {
	return &Config{
		Backend:   core.FSTypeLocal.String(),
		LogLevel:  logging.LogLevelInfo.String(),
		LogFormat: string(logging.LogFormatText),
		FileMode:  "0644",
		DirMode:   "0755",
	}
}

// Load reads the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to read config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with any FSENTITY_* variables that are set.
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		EnvRoot:      &c.Root,
		EnvBackend:   &c.Backend,
		EnvLogLevel:  &c.LogLevel,
		EnvLogFormat: &c.LogFormat,
	} {
		if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New(errors.CodeInvalidConfig, "root is required")
	}
	if core.ParseFSType(c.Backend) == core.FSTypeUnknown {
		return errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "unsupported backend %q", c.Backend), "backend", c.Backend)
	}
	if _, err := logging.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseLogFormat(c.LogFormat); err != nil {
		return err
	}
	if _, err := parseMode(c.FileMode, fsentity.DefaultFileMode); err != nil {
		return err
	}
	if _, err := parseMode(c.DirMode, fsentity.DefaultDirMode); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// LogConfig returns the logger settings. c must be valid.
func (c *Config) LogConfig() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level, _ = logging.ParseLogLevel(c.LogLevel)
	lc.Format, _ = logging.ParseLogFormat(c.LogFormat)
	return lc
}

// Open validates c and returns a Root for it. Options in opts are applied
// after those derived from c. On the memory backend the root directory is
// created first.
func Open(c *Config, opts ...fsentity.Option) (*fsentity.Root, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	fileMode, _ := parseMode(c.FileMode, fsentity.DefaultFileMode)
	dirMode, _ := parseMode(c.DirMode, fsentity.DefaultDirMode)

	var backend core.FS
	switch core.ParseFSType(c.Backend) {
	case core.FSTypeMemory:
		mem := billy.NewMemory()
		if err := mem.MkdirAll(c.Root, dirMode); err != nil {
			return nil, errors.Wrap(err, errors.CodeIO, "failed to create in-memory root")
		}
		backend = mem
	default:
		backend = billy.NewLocal()
	}

	all := []fsentity.Option{
		fsentity.WithBackend(backend),
		fsentity.WithLogger(logging.NewLogger(c.LogConfig())),
		fsentity.WithFileMode(fileMode),
		fsentity.WithDirMode(dirMode),
	}
	if c.Concurrency > 0 {
		all = append(all, fsentity.WithConcurrency(c.Concurrency))
	}
	all = append(all, opts...)
	return fsentity.New(c.Root, all...)
}

func parseMode(s string, def fs.FileMode) (fs.FileMode, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil || v > 0o777 {
		return 0, errors.Newf(errors.CodeInvalidConfig, "invalid permission %q", s)
	}
	return fs.FileMode(v), nil
}
