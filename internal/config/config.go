package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	App       AppConfig
	Auth      AuthConfig
	Email     EmailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the storage driver and holds its settings
type DatabaseConfig struct {
	Driver string

	MongoURI      string
	MongoDatabase string

	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MaxLifetime    time.Duration
	SimpleProtocol bool

	ConnTimeout  time.Duration
	QueryTimeout time.Duration

	// UseTransactions wraps the intake pair in a storage transaction. When
	// false the two inserts run sequentially without atomicity.
	UseTransactions bool
}

// AppConfig holds application-level settings
type AppConfig struct {
	Environment string
	ClientURL   string
}

// AuthConfig configures the admin stub. Empty values disable the check.
type AuthConfig struct {
	APIKey     string
	APIKeyHash string
	JWTSecret  string
	JWTIssuer  string
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	SendTimeout  time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// RateLimitConfig configures the fixed-window limiter on /api
type RateLimitConfig struct {
	Enabled     bool
	Window      time.Duration
	MaxRequests int
	RedisURL    string
	// TrustProxy keys clients by X-Forwarded-For; enable only behind a proxy
	// that overwrites the header.
	TrustProxy bool
}

// LogConfig configures the zerolog logger
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load(".env")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", getEnv("SERVER_PORT", "5000")),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
			MongoURI:        getEnv("MONGODB_URI", ""),
			MongoDatabase:   getEnv("MONGODB_DATABASE", "enw"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "enw"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConns:        getInt32Env("DB_MAX_CONNS", 5),
			MinConns:        getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:     getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			SimpleProtocol:  getBoolEnv("DB_SIMPLE_PROTOCOL", false),
			ConnTimeout:     getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			QueryTimeout:    getDurationEnv("DB_QUERY_TIMEOUT", 30*time.Second),
			UseTransactions: getBoolEnv("DB_USE_TRANSACTIONS", true),
		},
		App: AppConfig{
			Environment: strings.ToLower(getEnv("NODE_ENV", getEnv("APP_ENV", EnvDevelopment))),
			ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			APIKey:     getEnv("API_KEY", ""),
			APIKeyHash: getEnv("ADMIN_API_KEY_HASH", ""),
			JWTSecret:  getEnv("JWT_SECRET", ""),
			JWTIssuer:  getEnv("JWT_ISSUER", "enw-backend"),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("EMAIL_FROM", ""),
			FromName:     getEnv("EMAIL_FROM_NAME", "ENW Team"),
			SendTimeout:  getDurationEnv("SMTP_SEND_TIMEOUT", 15*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", nil),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-API-Key"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("RATE_LIMIT_ENABLED", true),
			Window:      getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxRequests: getIntEnv("RATE_LIMIT_MAX", 100),
			RedisURL:    getEnv("REDIS_URL", ""),
			TrustProxy:  getBoolEnv("RATE_LIMIT_TRUST_PROXY", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getBoolEnv("LOG_PRETTY", false),
		},
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{config.App.ClientURL}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate rejects impossible combinations
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required when DB_DRIVER=%s", DriverMongo)
		}
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want %s, %s or %s)", c.Database.Driver, DriverMongo, DriverPostgres, DriverMemory)
	}

	switch c.App.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("unknown environment %q", c.App.Environment)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Window <= 0 || c.RateLimit.MaxRequests <= 0) {
		return fmt.Errorf("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX must be positive")
	}

	if c.Auth.APIKey != "" && c.Auth.APIKeyHash != "" {
		return fmt.Errorf("set either API_KEY or ADMIN_API_KEY_HASH, not both")
	}
	return nil
}

// IsProduction reports whether error details must be hidden
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsEmailConfigured checks if email service is properly configured
func (c *Config) IsEmailConfigured() bool {
	return c.Email.SMTPUsername != "" && c.Email.SMTPPassword != ""
}

// IsAuthConfigured reports whether any admin credential is set
func (c *Config) IsAuthConfigured() bool {
	return c.Auth.APIKey != "" || c.Auth.APIKeyHash != "" || c.Auth.JWTSecret != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
