// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Gemini    AIProviderConfig
	OpenAI    AIProviderConfig
	AITimeout time.Duration
	Redis     RedisConfig
	Worker    WorkerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings.
// An empty Host disables background lesson generation.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// WorkerConfig holds background lesson generation settings
type WorkerConfig struct {
	Concurrency       int
	BackfillSchedule  string
	BackfillBatchSize int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port               int
	WriteTimeout       time.Duration
	RateLimitPerMinute int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// AIProviderConfig holds settings of a hosted text generation API
type AIProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

const (
	defaultServerPort    = "5000"
	defaultGeminiModel   = "gemini-2.0-flash-lite"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultBackfillCron  = "*/15 * * * *"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration, PORT wins over SERVER_PORT
	serverPortStr := os.Getenv("PORT")
	if serverPortStr == "" {
		serverPortStr = os.Getenv("SERVER_PORT")
	}
	if serverPortStr == "" {
		serverPortStr = defaultServerPort
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	cfg.Server.WriteTimeout, err = durationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}

	rateLimitStr := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if rateLimitStr == "" {
		rateLimitStr = "100"
	}
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", rateLimitStr)
	}
	cfg.Server.RateLimitPerMinute = rateLimit

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// AI providers. Keys are optional: without them every generation call
	// returns fallback content.
	cfg.Gemini = AIProviderConfig{
		APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:   envOrDefault("GEMINI_MODEL", defaultGeminiModel),
		BaseURL: strings.TrimRight(envOrDefault("GEMINI_BASE_URL", defaultGeminiBaseURL), "/"),
	}
	cfg.OpenAI = AIProviderConfig{
		APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Model:   envOrDefault("OPENAI_MODEL", defaultOpenAIModel),
		BaseURL: strings.TrimRight(envOrDefault("OPENAI_BASE_URL", defaultOpenAIBaseURL), "/"),
	}

	cfg.AITimeout, err = durationEnv("AI_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	// Redis configuration (optional, for background lesson generation)
	cfg.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Worker configuration
	if cfg.Worker.Concurrency, err = intEnv("WORKER_CONCURRENCY", 2); err != nil {
		return nil, err
	}
	if cfg.Worker.Concurrency <= 0 {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %d", cfg.Worker.Concurrency)
	}
	cfg.Worker.BackfillSchedule = envOrDefault("BACKFILL_SCHEDULE", defaultBackfillCron)
	if cfg.Worker.BackfillBatchSize, err = intEnv("BACKFILL_BATCH_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.Worker.BackfillBatchSize <= 0 {
		return nil, fmt.Errorf("invalid BACKFILL_BATCH_SIZE: %d", cfg.Worker.BackfillBatchSize)
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// DSN returns the database connection string
//
// clientFoundRows makes UPDATE report matched rows, so an update that
// changes nothing is not mistaken for a missing record.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// parseOrigins parses a comma-separated origins list, defaulting to all origins
func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

func envOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func intEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
