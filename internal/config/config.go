package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI provider identifiers accepted in AI_PROVIDER.
const (
	AIProviderNone   = "none"
	AIProviderOpenAI = "openai"
	AIProviderVertex = "vertex"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Quota     QuotaConfig
	AI        AIConfig
	Cache     CacheConfig
	Reference ReferenceConfig
	S3        S3Config
	RateLimit RateLimitConfig
	Payment   PaymentConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	RunMigrations   bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// QuotaConfig holds the free-tier allowance and premium period.
type QuotaConfig struct {
	FreeDailyScans    int
	PremiumPeriodDays int
}

// AIConfig selects and configures the AI analyzer.
type AIConfig struct {
	Provider string
	Model    string
	Timeout  time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string

	VertexProjectID       string
	VertexLocation        string
	VertexCredentialsFile string
}

// CacheConfig holds Redis configuration for caching AI analyses.
type CacheConfig struct {
	Enabled   bool
	RedisAddr string
	Password  string
	DB        int
	TTL       time.Duration
}

// ReferenceConfig points at an optional ingredient reference table document.
// An empty path selects the built-in table.
type ReferenceConfig struct {
	Path string
}

// S3Config holds AWS S3 configuration for reference table documents.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "reference/")
}

// RateLimitConfig holds per-client request rate limits.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// PaymentConfig holds the client-side payment provider settings.
type PaymentConfig struct {
	PayPalClientID string
	Currency       string
}

// Load loads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDatabase loads and validates only the database and logger sections, for
// tools that do not serve the API.
func LoadDatabase() (DatabaseConfig, LoggerConfig, error) {
	cfg, err := fromEnv()
	if err != nil {
		return DatabaseConfig{}, LoggerConfig{}, err
	}

	if err := cfg.Database.validate(); err != nil {
		return DatabaseConfig{}, LoggerConfig{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg.Database, cfg.Logger, nil
}

func fromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "grocery_detective"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			RunMigrations:   getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Quota: QuotaConfig{
			FreeDailyScans:    getEnvAsInt("FREE_DAILY_SCANS", 5),
			PremiumPeriodDays: getEnvAsInt("PREMIUM_PERIOD_DAYS", 30),
		},
		AI: AIConfig{
			Provider:              strings.ToLower(getEnv("AI_PROVIDER", AIProviderNone)),
			Model:                 getEnv("AI_MODEL", "gpt-4o"),
			Timeout:               getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
			OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			VertexProjectID:       getEnv("VERTEX_PROJECT_ID", ""),
			VertexLocation:        getEnv("VERTEX_LOCATION", "us-central1"),
			VertexCredentialsFile: getEnv("VERTEX_CREDENTIALS_FILE", ""),
		},
		Cache: CacheConfig{
			Enabled:   getEnvAsBool("CACHE_ENABLED", false),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			TTL:       getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
		Reference: ReferenceConfig{
			Path: getEnv("REFERENCE_TABLE_PATH", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "reference/"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Payment: PaymentConfig{
			PayPalClientID: getEnv("PAYPAL_CLIENT_ID", ""),
			Currency:       getEnv("PAYMENT_CURRENCY", "USD"),
		},
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := c.Database.validate(); err != nil {
		return err
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Quota.FreeDailyScans < 1 {
		return fmt.Errorf("free daily scans must be at least 1")
	}

	if c.Quota.PremiumPeriodDays < 1 {
		return fmt.Errorf("premium period must be at least 1 day")
	}

	if err := c.AI.validate(); err != nil {
		return err
	}

	if c.Cache.Enabled {
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address is required when cache is enabled")
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive")
		}
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
		if c.Reference.Path == "" {
			return fmt.Errorf("reference table path is required when S3 is enabled")
		}
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

func (c *AIConfig) validate() error {
	switch c.Provider {
	case AIProviderNone:
		return nil
	case AIProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OpenAI API key is required when AI provider is openai")
		}
	case AIProviderVertex:
		if c.VertexProjectID == "" {
			return fmt.Errorf("Vertex project ID is required when AI provider is vertex")
		}
		if c.VertexLocation == "" {
			return fmt.Errorf("Vertex location is required when AI provider is vertex")
		}
	default:
		return fmt.Errorf("invalid AI provider: %s (must be none, openai, or vertex)", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("AI model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}
	return nil
}

// Enabled reports whether an AI provider is configured.
func (c *AIConfig) Enabled() bool {
	return c.Provider != AIProviderNone
}

// PremiumPeriod returns the duration of a purchased subscription.
func (c *QuotaConfig) PremiumPeriod() time.Duration {
	return time.Duration(c.PremiumPeriodDays) * 24 * time.Hour
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("30s", "24h").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
