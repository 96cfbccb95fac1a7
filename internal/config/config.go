package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs, sourced from the
// environment (optionally via a .env file).
type Config struct {
	// DB
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	// CORS
	BaseURL1 string
	BaseURL2 string

	// Tokens
	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	// Authorization
	SuperuserEmail string

	// HTTP
	ListenHost string
	ListenPort string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:       os.Getenv("DB_USER_NAME"),
		DBPass:       os.Getenv("DB_USER_PASS"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBName:       os.Getenv("DB_NAME"),
		BaseURL1:     os.Getenv("BASE_URL_1"),
		BaseURL2:     os.Getenv("BASE_URL_2"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: getenv("JWT_ALGORITHM", "HS256"),
		ListenHost:   getenv("LISTEN_HOST", "0.0.0.0"),
		ListenPort:   getenv("LISTEN_PORT", "8080"),
	}

	for k, v := range map[string]string{
		"DB_USER_NAME": cfg.DBUser,
		"DB_USER_PASS": cfg.DBPass,
		"DB_NAME":      cfg.DBName,
		"BASE_URL_1":   cfg.BaseURL1,
		"BASE_URL_2":   cfg.BaseURL2,
		"JWT_SECRET":   cfg.JWTSecret,
	} {
		if v == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", k)
		}
	}

	cfg.SuperuserEmail = os.Getenv("SU")
	if cfg.SuperuserEmail == "" {
		return nil, fmt.Errorf("required environment variable SU is not set")
	}

	minutes := getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	d, err := time.ParseDuration(minutes + "m")
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q: %w", minutes, err)
	}
	cfg.AccessTokenTTL = d

	return cfg, nil
}

// DSN builds the postgres connection string for pgx and goose.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBHost, c.DBPort, c.DBName)
}

// Addr is the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.ListenPort
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
