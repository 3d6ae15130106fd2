// Package config loads process settings from .env, an optional YAML file and
// the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port   string `yaml:"PORT"`
	AppEnv string `yaml:"APP_ENV"`

	DBDriver      string `yaml:"DB_DRIVER"`
	DBHost        string `yaml:"DB_HOST"`
	DBPort        string `yaml:"DB_PORT"`
	DBUser        string `yaml:"DB_USER"`
	DBPassword    string `yaml:"DB_PASSWORD"`
	DBName        string `yaml:"DB_NAME"`
	DBSSLMode     string `yaml:"DB_SSLMODE"`
	DBPath        string `yaml:"DB_PATH"`
	DBMaxRetries  int    `yaml:"DB_MAX_RETRIES"`
	DBAutoMigrate bool   `yaml:"DB_AUTO_MIGRATE"`

	RedisAddr string `yaml:"REDIS_ADDR"`

	DatabaseURL    string `yaml:"DATABASE_URL"`
	MigrationsPath string `yaml:"MIGRATIONS_PATH"`
}

func defaults() Config {
	return Config{
		Port:         "3000",
		AppEnv:       "development",
		DBDriver:     DriverPostgres,
		DBHost:       "localhost",
		DBPort:       "5432",
		DBSSLMode:    "disable",
		DBPath:       "payslips.db",
		DBMaxRetries: 5,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSLMODE")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.MigrationsPath, "MIGRATIONS_PATH")

	if v := os.Getenv("DB_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_MAX_RETRIES: %w", err)
		}
		c.DBMaxRetries = n
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
		}
		c.DBAutoMigrate = b
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBName == "" && c.DatabaseURL == "" {
			return fmt.Errorf("DB_NAME or DATABASE_URL is required for driver %q", c.DBDriver)
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBMaxRetries < 1 {
		c.DBMaxRetries = 1
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN builds the key/value DSN used by gorm's postgres driver.
// DATABASE_URL wins when set.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// MigrationURL is the URL form golang-migrate expects. DATABASE_URL wins when set.
func (c *Config) MigrationURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
