package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser     string
	DBPass     string
	DBHost     string
	DBPort     string
	DBName     string
	SSLMode    string
	RedisHost  string
	RedisPort  string
	NatsHost   string
	NatsPort   string
	ApiPort    string
	ApiEnabled string
	ModuleID   string
}

// New loads and validates configuration from environment variables.
// Postgres, Redis and NATS are required: the repositories need the
// first two and both patron notices and registry registration need the
// broker. The HTTP API is optional; if FEEFINES_API_ENABLED != "true",
// ApiAddr() returns an error and the HTTP server simply won't start.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:     os.Getenv("FEEFINES_POSTGRES_USER"),
		DBPass:     os.Getenv("FEEFINES_POSTGRES_PASSWORD"),
		DBHost:     os.Getenv("FEEFINES_POSTGRES_HOST"),
		DBPort:     os.Getenv("FEEFINES_POSTGRES_PORT"),
		DBName:     os.Getenv("FEEFINES_POSTGRES_DB"),
		SSLMode:    os.Getenv("FEEFINES_POSTGRES_SSLMODE"),
		RedisHost:  os.Getenv("FEEFINES_REDIS_HOST"),
		RedisPort:  os.Getenv("FEEFINES_REDIS_PORT"),
		NatsHost:   os.Getenv("FEEFINES_NATS_HOST"),
		NatsPort:   os.Getenv("FEEFINES_NATS_PORT"),
		ApiPort:    os.Getenv("FEEFINES_API_PORT"),
		ApiEnabled: os.Getenv("FEEFINES_API_ENABLED"),
		ModuleID:   os.Getenv("FEEFINES_MODULE_ID"),
	}

	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" || cfg.SSLMode == "" {
		return nil, fmt.Errorf("missing required env for database: FEEFINES_POSTGRES_USER/HOST/DB/SSLMODE")
	}
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		return nil, fmt.Errorf("missing required env for redis: FEEFINES_REDIS_HOST/PORT")
	}
	if cfg.NatsHost == "" || cfg.NatsPort == "" {
		return nil, fmt.Errorf("missing required env for nats: FEEFINES_NATS_HOST/PORT")
	}

	if cfg.ModuleID == "" {
		cfg.ModuleID = "feefines"
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

// ApiAddr returns the HTTP listen address if the API is enabled.
// Returns an error if FEEFINES_API_ENABLED != "true" — callers should
// skip starting the HTTP server.
func (c *Config) ApiAddr() (string, error) {
	if c.ApiEnabled == "true" {
		if c.ApiPort == "" {
			return "", fmt.Errorf("FEEFINES_API_PORT is required when FEEFINES_API_ENABLED=true")
		}
		return ":" + c.ApiPort, nil
	}
	return "", fmt.Errorf("HTTP API is disabled (FEEFINES_API_ENABLED != true)")
}
