// Package config resolves runtime settings from defaults, an optional YAML
// file, a .env file, environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/stagetrack/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvDSN        = "STAGETRACK_DB"
	EnvAddr       = "STAGETRACK_ADDR"
	EnvPort       = "PORT"
	EnvStaticDir  = "STAGETRACK_STATIC_DIR"
	EnvLogLevel   = "STAGETRACK_LOG_LEVEL"
	EnvLogFormat  = "STAGETRACK_LOG_FORMAT"
	EnvCORSOrigin = "STAGETRACK_CORS_ORIGIN"
)

// Flag names bound by ApplyFlags.
const (
	FlagDSN        = "db"
	FlagAddr       = "addr"
	FlagStaticDir  = "static-dir"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
	FlagCORSOrigin = "cors-origin"
)

var configFileNames = []string{"stagetrack.yml", "stagetrack.yaml"}

// Config holds all runtime settings.
type Config struct {
	// DSN is a SQLite path, ":memory:", or a postgres:// URL.
	DSN        string `yaml:"db,omitempty"`
	Addr       string `yaml:"addr,omitempty"`
	StaticDir  string `yaml:"staticDir,omitempty"`
	LogLevel   string `yaml:"logLevel,omitempty"`
	LogFormat  string `yaml:"logFormat,omitempty"`
	CORSOrigin string `yaml:"corsOrigin,omitempty"`
}

// Default returns the built-in settings. The database lives under
// ~/.stagetrack, or in the working directory when there is no home.
func Default() Config {
	dsn := "stagetrack.db"
	if home, err := os.UserHomeDir(); err == nil {
		dsn = filepath.Join(home, ".stagetrack", "stagetrack.db")
	}
	return Config{
		DSN:        dsn,
		Addr:       ":3000",
		StaticDir:  "public",
		LogLevel:   "info",
		LogFormat:  logging.FormatText,
		CORSOrigin: "*",
	}
}

// Load resolves settings relative to the working directory. configPath names
// an explicit YAML file; when empty, stagetrack.yml is used if present.
func Load(configPath string) (Config, error) {
	return LoadFrom(".", configPath)
}

// LoadFrom is Load with an explicit base directory for the default config
// file and the .env file.
func LoadFrom(dir, configPath string) (Config, error) {
	cfg := Default()

	if err := applyFile(&cfg, dir, configPath); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the .env file.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, dir, configPath string) error {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		return decodeFile(cfg, configPath, data)
	}
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return decodeFile(cfg, path, data)
	}
	return nil
}

// decodeFile overlays the keys present in the file onto cfg.
func decodeFile(cfg *Config, path string, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDSN); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvStaticDir); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvCORSOrigin); ok {
		cfg.CORSOrigin = v
	}
}

// ApplyFlags overlays the flags the user set explicitly. Flags missing from
// flags are ignored, so commands only need to define the ones they accept.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	for name, dst := range map[string]*string{
		FlagDSN:        &c.DSN,
		FlagAddr:       &c.Addr,
		FlagStaticDir:  &c.StaticDir,
		FlagLogLevel:   &c.LogLevel,
		FlagLogFormat:  &c.LogFormat,
		FlagCORSOrigin: &c.CORSOrigin,
	} {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		*dst = f.Value.String()
	}
	return c.Validate()
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.DSN == "" {
		return errors.New("database DSN must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}
