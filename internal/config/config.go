// Package config loads saved connection profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/willibrandon/sqlcreds/internal/credentials"
)

// ErrProfileNotFound is returned when a named profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Config represents the root configuration structure
type Config struct {
	DefaultProfile   string                    `mapstructure:"default_profile"`
	PasswordRequired bool                      `mapstructure:"password_required"`
	LogLevel         string                    `mapstructure:"log_level"`
	LogFile          string                    `mapstructure:"log_file"`
	Profiles         []credentials.Credentials `mapstructure:"profiles"`

	// path of the file the config was read from, empty when defaults only
	path string
}

// Path returns the config file in use, or "" when none was found.
func (c *Config) Path() string {
	return c.path
}

// Load loads configuration from the default locations.
func Load() (*Config, error) {
	return LoadFromPath("")
}

// LoadFromPath loads configuration from a specific path.
// If configPath is empty, it searches default locations. A .env file next to
// the config file, or in the working directory, is loaded into the
// environment first without overriding variables already set.
func LoadFromPath(configPath string) (*Config, error) {
	envDir := "."
	if configPath != "" {
		envDir = filepath.Dir(configPath)
	}
	if err := loadDotEnv(filepath.Join(envDir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("SQLCREDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "sqlcreds"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sqlcreds"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()

	for i := range cfg.Profiles {
		cfg.Profiles[i].PasswordCommand = expandPath(cfg.Profiles[i].PasswordCommand)
	}
	cfg.LogFile = expandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("default_profile", "")
	v.SetDefault("password_required", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// Validate checks profile names, ports and authentication types.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if credentials.IsEmpty(p.ProfileName) {
			return fmt.Errorf("profiles[%d].name cannot be empty", i)
		}
		if seen[p.ProfileName] {
			return fmt.Errorf("duplicate profile name %q", p.ProfileName)
		}
		seen[p.ProfileName] = true

		if p.Port < 0 || p.Port > 65535 {
			return fmt.Errorf("profile %q: port must be between 0 and 65535, got %d", p.ProfileName, p.Port)
		}

		switch p.AuthenticationType {
		case "", credentials.AuthTypeToString(credentials.AuthSQLLogin), credentials.AuthTypeToString(credentials.AuthIntegrated):
		default:
			return fmt.Errorf("profile %q: unknown authentication_type %q", p.ProfileName, p.AuthenticationType)
		}
	}

	if c.DefaultProfile != "" && !seen[c.DefaultProfile] {
		return fmt.Errorf("default_profile %q: %w", c.DefaultProfile, ErrProfileNotFound)
	}

	return nil
}

// Profile returns a copy of the named profile. An empty name selects the
// default profile, or a blank credential when no default is configured.
func (c *Config) Profile(name string) (*credentials.Credentials, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return &credentials.Credentials{}, nil
	}

	for i := range c.Profiles {
		if c.Profiles[i].ProfileName == name {
			return c.Profiles[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrProfileNotFound)
}

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
