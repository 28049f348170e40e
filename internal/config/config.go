// Package config resolves habitrackr settings from built-in defaults, the
// YAML config file, a .env file and HABITRACKR_* environment variables.
// Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// Config holds the resolved settings
type Config struct {
	Store        string                 `yaml:"store" env:"STORE"`
	Timezone     string                 `yaml:"timezone" env:"TIMEZONE"`
	DeletePolicy constants.DeletePolicy `yaml:"delete_policy" env:"DELETE_POLICY"`
	AutoBackup   bool                   `yaml:"auto_backup" env:"AUTO_BACKUP"`
	Debug        bool                   `yaml:"debug" env:"DEBUG"`
	LogLevel     string                 `yaml:"log_level" env:"LOG_LEVEL"`
}

// Defaults returns the built-in settings
func Defaults() Config {
	return Config{
		Store:        constants.DefaultConfigPath,
		Timezone:     "Local",
		DeletePolicy: constants.DeletePolicyCascade,
		AutoBackup:   true,
	}
}

// Loader reads configuration. Zero values use the real environment.
type Loader struct {
	// Path of the YAML file. Empty means DefaultConfigDir/config.yaml.
	Path string
	// EnvFile is the dotenv file to read. Empty means ".env" in the working directory.
	EnvFile string
	// Environ lists KEY=VALUE pairs. Nil means os.Environ().
	Environ []string
}

// DefaultPath returns the default location of the YAML config file
func DefaultPath() string {
	return filepath.Join(ExpandHome(constants.DefaultConfigDir), constants.ConfigFileName)
}

// Load resolves the configuration. A missing YAML or dotenv file is not an error.
func (l Loader) Load() (Config, error) {
	cfg := Defaults()

	path := l.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := readFile(ExpandHome(path), &cfg); err != nil {
		return Config{}, err
	}

	environment, err := l.environment()
	if err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg, env.Options{Prefix: constants.EnvPrefix, Environment: environment}); err != nil {
		return Config{}, apperrors.Invalid("environment", "invalid environment configuration: %v", err)
	}

	cfg.Store = ExpandHome(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load resolves the configuration from the given YAML file and the process environment
func Load(path string) (Config, error) {
	return Loader{Path: path}.Load()
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.Invalid("config", "invalid config file %s: %v", path, err)
	}
	return nil
}

// environment merges the dotenv file under the real environment, so exported
// variables win over .env entries
func (l Loader) environment() (map[string]string, error) {
	merged := map[string]string{}

	envFile := l.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			merged[k] = v
		}
	}
	return merged, nil
}

// Validate checks the resolved values
func (c Config) Validate() error {
	if c.Store == "" {
		return apperrors.Invalid("store", "store location cannot be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return apperrors.Invalid("timezone", "invalid timezone %q", c.Timezone)
	}
	switch c.DeletePolicy {
	case constants.DeletePolicyCascade, constants.DeletePolicyOrphan:
	default:
		return apperrors.Invalid("delete_policy", "invalid delete policy %q (expected cascade or orphan)", c.DeletePolicy)
	}
	return nil
}

// Save writes the configuration as YAML, creating the directory if needed
func (c Config) Save(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
