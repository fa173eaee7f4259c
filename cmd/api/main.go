package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/dinolearn/backend/docs"
	"github.com/dinolearn/backend/internal/config"
	"github.com/dinolearn/backend/internal/generator"
	"github.com/dinolearn/backend/internal/handlers"
	"github.com/dinolearn/backend/internal/logger"
	"github.com/dinolearn/backend/internal/middleware"
	"github.com/dinolearn/backend/internal/repositories"
	"github.com/dinolearn/backend/internal/services"
	"github.com/dinolearn/backend/internal/tasks"
)

// @title DinoLearn API
// @version 1.0
// @description API for AI generated 14-day learning roadmaps and lessons

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting DinoLearn backend")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize content generator
	prompts, err := generator.DefaultPromptCatalog()
	if err != nil {
		logger.Logger.Fatal("Failed to load prompt catalog", zap.Error(err))
	}
	gen := generator.NewGenerator(
		generator.NewGeminiClient(cfg.Gemini, cfg.AITimeout),
		generator.NewOpenAIClient(cfg.OpenAI, cfg.AITimeout),
		prompts,
		logger.Logger,
	)
	logProviderStatus(cfg)

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db, logger.Logger)
	roadmapRepo := repositories.NewRoadmapRepository(db, logger.Logger)

	// Initialize services
	roadmapService := services.NewRoadmapService(roadmapRepo, lessonRepo, gen, logger.Logger)
	if cfg.RedisEnabled() {
		// Lessons of new roadmaps are generated in the background by the worker
		asynqClient := asynq.NewClient(redisClientOpt(cfg))
		defer asynqClient.Close()
		inspector := asynq.NewInspector(redisClientOpt(cfg))
		defer inspector.Close()
		roadmapService.WithLessonQueue(tasks.NewLessonQueue(asynqClient, inspector, logger.Logger))
		logger.Logger.Info("Background lesson generation enabled", zap.String("redis", cfg.RedisAddr()))
	}
	lessonService := services.NewLessonService(lessonRepo, roadmapRepo, gen, logger.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Register routes
	healthHandler.RegisterRoutes(r)
	roadmapHandler.RegisterRoutes(r)
	lessonHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "dinolearn_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try the repository root if running from cmd/api
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// logProviderStatus warns about AI providers that will only serve fallback content
func logProviderStatus(cfg *config.Config) {
	if !generator.HasUsableKey(cfg.Gemini.APIKey) {
		logger.Logger.Warn("GEMINI_API_KEY is not set, roadmaps use fallback titles")
	}
	if !generator.HasUsableKey(cfg.OpenAI.APIKey) {
		logger.Logger.Warn("OPENAI_API_KEY is not set, lessons use fallback content")
	}
}

// redisClientOpt returns the asynq connection options for the configured Redis server
func redisClientOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}
