package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/config"
	"github.com/dinolearn/backend/internal/generator"
	"github.com/dinolearn/backend/internal/logger"
	"github.com/dinolearn/backend/internal/repositories"
	"github.com/dinolearn/backend/internal/services"
	"github.com/dinolearn/backend/internal/tasks"
)

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

	if !cfg.RedisEnabled() {
		logger.Logger.Fatal("REDIS_HOST is required for the lesson worker")
	}

	logger.Logger.Info("Starting DinoLearn lesson worker")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
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

	// Initialize repositories and services
	lessonRepo := repositories.NewLessonRepository(db, logger.Logger)
	roadmapRepo := repositories.NewRoadmapRepository(db, logger.Logger)
	lessonService := services.NewLessonService(lessonRepo, roadmapRepo, gen, logger.Logger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Backfill enqueues lessons that were never generated, e.g. created while the worker was down
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	backfill, err := tasks.NewBackfill(
		lessonRepo,
		tasks.NewLessonQueue(asynqClient, inspector, logger.Logger),
		rdb,
		cfg.Worker.BackfillSchedule,
		cfg.Worker.BackfillBatchSize,
		logger.Logger,
	)
	if err != nil {
		logger.Logger.Fatal("Failed to create backfill scheduler", zap.Error(err))
	}

	// Create Asynq server
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues: map[string]int{
			tasks.QueueLessons: 1,
		},
		Logger: logger.Logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	tasks.NewLessonWorker(lessonService, logger.Logger).Register(mux)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()
	backfill.Start()

	logger.Logger.Info("Worker started", zap.Int("concurrency", cfg.Worker.Concurrency))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	backfill.Stop()
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
