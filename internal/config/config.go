// Package config loads server settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/pkg/logging"
)

// DefaultPath is read when no path is given and the file exists.
const DefaultPath = "config.yaml"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// UserEntry is one row of the credential table.
type UserEntry struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"passwordHash"`
	Role         string `yaml:"role"`
}

// Config holds server settings.
type Config struct {
	Port         int           `yaml:"port"`
	LogLevel     string        `yaml:"logLevel"`
	DBDriver     string        `yaml:"dbDriver"`
	DBPath       string        `yaml:"dbPath"`
	DatabaseURL  string        `yaml:"databaseURL"`
	JWTSecret    string        `yaml:"jwtSecret"`
	SessionTTL   time.Duration `yaml:"sessionTTL"`
	StoreTimeout time.Duration `yaml:"storeTimeout"`
	Users        []UserEntry   `yaml:"users"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Port:         8080,
		LogLevel:     "info",
		DBDriver:     DriverSQLite,
		DBPath:       "./data/peopleevents.db",
		StoreTimeout: 10 * time.Second,
	}
}

// Load reads path (DefaultPath when empty), applies env overrides and validates.
// A missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PE_PORT"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PE_PORT: %w", err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("PE_DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.TrimSpace(v)
	}
	if v := os.Getenv("PE_DB_PATH"); v != "" {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v := os.Getenv("PE_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("PE_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("PE_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PE_SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("PE_STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PE_STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = d
	}
	return nil
}

// Validate checks settings that would otherwise fail at first use.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwtSecret (PE_JWT_SECRET) is required")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("dbPath is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("databaseURL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown dbDriver %q", c.DBDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Credentials returns the configured credential table, or the built-in
// admin/member entries when none are configured.
func (c Config) Credentials() ([]auth.Credential, error) {
	if len(c.Users) == 0 {
		return auth.DefaultCredentials()
	}
	creds := make([]auth.Credential, 0, len(c.Users))
	for _, u := range c.Users {
		role, err := models.ParseRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		creds = append(creds, auth.Credential{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         role,
		})
	}
	return creds, nil
}
