// Package config loads typed configuration for both binaries from an
// optional YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full configuration tree. The main service and the stats
// service read the same file; each binary uses its own server section.
type Config struct {
	Env     string            `yaml:"env" env:"APP_ENV" env-default:"local"`
	AppName string            `yaml:"appName" env:"APP_NAME" env-default:"ewm-main-service"`
	Server  HTTPServerConfig  `yaml:"server"`
	Stats   StatsServerConfig `yaml:"stats"`
	DB      DBConfig          `yaml:"db"`
	StatsDB DBConfig          `yaml:"statsDb"`
	Client  StatsClientConfig `yaml:"statsClient"`
}

// HTTPServerConfig holds listen and timeout settings for the main service.
type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env-default:"10s"`
}

// StatsServerConfig holds listen settings for the stats service.
type StatsServerConfig struct {
	Port            string        `yaml:"port" env:"STATS_PORT" env-default:"9090"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env-default:"10s"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"ewm"`
	SSLMode  string `yaml:"sslMode" env:"DB_SSLMODE" env-default:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// StatsClientConfig points the main service at the stats service.
// The timeout bounds every stats call so a slow collaborator cannot
// stall the event listing path.
type StatsClientConfig struct {
	URL     string        `yaml:"url" env:"STATS_URL" env-default:"http://localhost:9090"`
	Timeout time.Duration `yaml:"timeout" env:"STATS_TIMEOUT" env-default:"5s"`
}

// MustLoad reads the config file named by CONFIG_PATH (when set), applies
// environment overrides, and panics on failure. Missing file with no
// CONFIG_PATH falls back to env and defaults only.
func MustLoad() *Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			panic(fmt.Sprintf("config: read %s: %v", path, err))
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic(fmt.Sprintf("config: read environment: %v", err))
	}
	return &cfg
}
