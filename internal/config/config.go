// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database struct {
		URL        string `json:"url"`
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	JWT struct {
		Secret       string        `json:"secret"`
		Algorithm    string        `json:"algorithm"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	}
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	MailFromName string `json:"mail_from_name"`
	BaseURL      string `json:"base_url"`
}

// Load reads configuration from the environment. The token signing
// secret is mandatory; there is no insecure fallback.
func Load() (*Config, error) {
	cfg := &Config{}

	// Database configuration. DATABASE_URL wins when set; the discrete
	// variables exist for container setups that compose the DSN.
	cfg.Database.URL = getEnv("DATABASE_URL", "")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "orgportal")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// JWT configuration
	cfg.JWT.Secret = getEnv("SECRET_KEY", "")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}
	cfg.JWT.Algorithm = getEnv("ALGORITHM", "HS256")
	if cfg.JWT.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.JWT.Algorithm)
	}
	expiryMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("parsing ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
	}
	cfg.JWT.ExpiryPeriod = time.Duration(expiryMinutes) * time.Minute

	// Mail configuration
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", getEnv("MAIL_FROM", ""))
	cfg.SMTP.Host = getEnv("MAIL_SERVER", "")
	mailPort, err := strconv.Atoi(getEnv("MAIL_PORT", "2525"))
	if err != nil {
		return nil, fmt.Errorf("parsing MAIL_PORT: %w", err)
	}
	cfg.SMTP.Port = mailPort
	cfg.SMTP.Username = getEnv("MAIL_USERNAME", "")
	cfg.SMTP.Password = getEnv("MAIL_PASSWORD", "")
	cfg.SMTP.From = getEnv("MAIL_FROM", "")
	cfg.MailFromName = getEnv("MAIL_FROM_NAME", "Relivo Org")

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:8000")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
