package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret signs API tokens when JWT_SECRET is unset. It is public,
// so production refuses it.
const DefaultJWTSecret = "change-me-in-production"

// ErrInsecureJWTSecret is returned when production runs without its own JWT_SECRET.
var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a private value in production")

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	Version   string

	// HTTP
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Database. An empty DatabaseURL selects local SQLite mode.
	DatabaseURL      string
	DatabaseDriver   string
	SQLitePath       string
	DatabaseMaxConns int

	// Sessions. An empty RedisURL keeps sessions in memory.
	RedisURL   string
	SessionTTL time.Duration

	// Events. An empty RabbitMQURL disables publishing.
	RabbitMQURL string

	// Auth
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	// MCP
	MCPAddr      string
	MCPAuthToken string
	MCPUsername  string

	// CLI principal
	CLIUsername string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Version:   getEnv("TODOLIST_VERSION", "dev"),

		HTTPAddr:        getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", ""),
		SQLitePath:       getEnv("SQLITE_PATH", defaultSQLitePath()),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 10),

		RedisURL:   getEnv("REDIS_URL", ""),
		SessionTTL: getDurationEnv("SESSION_TTL", 12*time.Hour),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		JWTSecret:  getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:     getDurationEnv("JWT_TTL", time.Hour),
		BcryptCost: getIntEnv("BCRYPT_COST", 12),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
		MCPUsername:  getEnv("MCP_USERNAME", ""),

		CLIUsername: getEnv("TODOLIST_USER", currentOSUser()),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that are unsafe for the environment.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsLocalMode reports whether the application runs against a local SQLite file.
func (c *Config) IsLocalMode() bool {
	return c.DatabaseURL == "" || c.DatabaseDriver == "sqlite"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".todolist", "data.db")
}

func currentOSUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
