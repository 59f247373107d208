package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Recurrence window policy for month totals and calendars
	RecurrenceWindow recurrence.Window

	// Group join attempts per user
	JoinRateLimit int // per minute
	JoinBurst     int

	// S3 statement exports; disabled when Bucket is empty
	S3 S3Config
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
	URLExpiry       time.Duration
}

// Enabled reports whether statement uploads are configured
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	window, err := recurrenceWindow()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		Auth0Domain:      getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:    getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID:    getEnv("AUTH0_CLIENT_ID", ""),
		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:              getEnv("ENV", "development"),
		RecurrenceWindow: window,
		JoinRateLimit:    getEnvInt("JOIN_RATE_LIMIT", 5),
		JoinBurst:        getEnvInt("JOIN_BURST", 3),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
			URLExpiry:       getEnvDuration("S3_URL_EXPIRY", 15*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabaseURL reads only what the CLI needs to reach the database
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()
	url := getEnv("DATABASE_URL", "")
	if url == "" {
		return "", fmt.Errorf("DATABASE_URL is required")
	}
	return url, nil
}

// LoadRecurrenceWindow reads RECURRENCE_WINDOW the same way Load does, .env included
func LoadRecurrenceWindow() (recurrence.Window, error) {
	_ = godotenv.Load()
	return recurrenceWindow()
}

func recurrenceWindow() (recurrence.Window, error) {
	window, err := recurrence.ParseWindow(getEnv("RECURRENCE_WINDOW", "legacy"))
	if err != nil {
		return recurrence.LegacyWindow, fmt.Errorf("RECURRENCE_WINDOW: %w", err)
	}
	return window, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.JoinRateLimit <= 0 || c.JoinBurst <= 0 {
		return fmt.Errorf("JOIN_RATE_LIMIT and JOIN_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
