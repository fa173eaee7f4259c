package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "dino")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dinolearn")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError bool
		errorContains string
		check         func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5000, cfg.Server.Port)
				assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 100, cfg.Server.RateLimitPerMinute)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, defaultGeminiModel, cfg.Gemini.Model)
				assert.Equal(t, defaultGeminiBaseURL, cfg.Gemini.BaseURL)
				assert.Equal(t, defaultOpenAIModel, cfg.OpenAI.Model)
				assert.Equal(t, 60*time.Second, cfg.AITimeout)
				assert.Empty(t, cfg.Gemini.APIKey)
				assert.False(t, cfg.RedisEnabled())
				assert.Equal(t, 6379, cfg.Redis.Port)
				assert.Equal(t, 2, cfg.Worker.Concurrency)
				assert.Equal(t, defaultBackfillCron, cfg.Worker.BackfillSchedule)
				assert.Equal(t, 50, cfg.Worker.BackfillBatchSize)
			},
		},
		{
			name: "port wins over server port",
			env:  map[string]string{"PORT": "9000", "SERVER_PORT": "8080"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
			},
		},
		{
			name: "server port used when port empty",
			env:  map[string]string{"SERVER_PORT": "8080"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
			},
		},
		{
			name: "providers and origins",
			env: map[string]string{
				"GEMINI_API_KEY":       " gem-key ",
				"OPENAI_API_KEY":       "oa-key",
				"OPENAI_BASE_URL":      "http://localhost:9999/",
				"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
				"AI_TIMEOUT":           "5s",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "gem-key", cfg.Gemini.APIKey)
				assert.Equal(t, "oa-key", cfg.OpenAI.APIKey)
				assert.Equal(t, "http://localhost:9999", cfg.OpenAI.BaseURL)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, 5*time.Second, cfg.AITimeout)
			},
		},
		{
			name: "redis and worker",
			env: map[string]string{
				"REDIS_HOST":          "cache",
				"REDIS_PORT":          "6380",
				"REDIS_DB":            "2",
				"WORKER_CONCURRENCY":  "4",
				"BACKFILL_SCHEDULE":   "@hourly",
				"BACKFILL_BATCH_SIZE": "10",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.RedisEnabled())
				assert.Equal(t, "cache:6380", cfg.RedisAddr())
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, 4, cfg.Worker.Concurrency)
				assert.Equal(t, "@hourly", cfg.Worker.BackfillSchedule)
				assert.Equal(t, 10, cfg.Worker.BackfillBatchSize)
			},
		},
		{
			name:          "invalid redis port",
			env:           map[string]string{"REDIS_PORT": "six"},
			expectedError: true,
			errorContains: "invalid REDIS_PORT",
		},
		{
			name:          "invalid worker concurrency",
			env:           map[string]string{"WORKER_CONCURRENCY": "0"},
			expectedError: true,
			errorContains: "invalid WORKER_CONCURRENCY",
		},
		{
			name:          "invalid port",
			env:           map[string]string{"PORT": "abc"},
			expectedError: true,
			errorContains: "invalid PORT",
		},
		{
			name:          "invalid ai timeout",
			env:           map[string]string{"AI_TIMEOUT": "soon"},
			expectedError: true,
			errorContains: "invalid AI_TIMEOUT",
		},
		{
			name:          "invalid rate limit",
			env:           map[string]string{"RATE_LIMIT_PER_MINUTE": "0"},
			expectedError: true,
			errorContains: "invalid RATE_LIMIT_PER_MINUTE",
		},
		{
			name:          "missing db host",
			env:           map[string]string{"DB_HOST": ""},
			expectedError: true,
			errorContains: "DB_HOST is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDatabaseEnv(t)
			for _, name := range []string{"PORT", "SERVER_PORT", "SERVER_WRITE_TIMEOUT", "RATE_LIMIT_PER_MINUTE", "LOG_LEVEL",
				"CORS_ALLOWED_ORIGINS", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "OPENAI_API_KEY",
				"OPENAI_MODEL", "OPENAI_BASE_URL", "AI_TIMEOUT", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
				"WORKER_CONCURRENCY", "BACKFILL_SCHEDULE", "BACKFILL_BATCH_SIZE"} {
				t.Setenv(name, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     3306,
		User:     "dino",
		Password: "secret",
		DBName:   "dinolearn",
	}}

	assert.Equal(t, "dino:secret@tcp(db:3306)/dinolearn?parseTime=true&charset=utf8mb4&clientFoundRows=true", cfg.DSN())
}

func TestConfig_IsDatabaseConfigured(t *testing.T) {
	assert.False(t, (&Config{}).IsDatabaseConfigured())
	assert.True(t, (&Config{Database: DatabaseConfig{Host: "h", Port: 1, User: "u", DBName: "d"}}).IsDatabaseConfigured())
}
