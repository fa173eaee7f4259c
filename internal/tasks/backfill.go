package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	backfillLockKey = "dinolearn:backfill:lock"
	backfillLockTTL = 5 * time.Minute
)

// PendingLessonLister is the interface that wraps the lookup of lessons without content
type PendingLessonLister interface {
	// Method GetPendingIDs retrieve up to "limit" IDs of lessons whose content has not been generated.
	//
	// Returns the IDs oldest first and an error if any.
	GetPendingIDs(ctx context.Context, limit int) ([]int, error)
}

// LessonScheduler is the interface that wraps lesson generation scheduling
type LessonScheduler interface {
	// Method EnqueueLessons schedules generation for the lessons "ids".
	//
	// Returns the number of lessons scheduled.
	EnqueueLessons(ctx context.Context, ids []int) int
}

// Locker is the subset of the Redis client used for the backfill lock
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Backfill periodically enqueues generation for lessons left without content.
// Only the instance holding the Redis lock runs a pass.
type Backfill struct {
	lessons   PendingLessonLister
	queue     LessonScheduler
	locker    Locker
	batchSize int
	owner     string
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewBackfill creates a backfill job running on the cron "schedule"
func NewBackfill(lessons PendingLessonLister, queue LessonScheduler, locker Locker, schedule string, batchSize int, logger *zap.Logger) (*Backfill, error) {
	b := &Backfill{
		lessons:   lessons,
		queue:     queue,
		locker:    locker,
		batchSize: batchSize,
		owner:     uuid.NewString(),
		cron:      cron.New(),
		logger:    logger,
	}
	if _, err := b.cron.AddFunc(schedule, b.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid backfill schedule %q: %w", schedule, err)
	}
	return b, nil
}

// Start starts the cron scheduler
func (b *Backfill) Start() {
	b.cron.Start()
	b.logger.Info("Backfill scheduler started")
}

// Stop stops the cron scheduler and waits for a running pass to finish
func (b *Backfill) Stop() {
	<-b.cron.Stop().Done()
	b.logger.Info("Backfill scheduler stopped")
}

// Run performs one backfill pass.
//
// Returns the number of lessons enqueued and an error if any. A pass skipped because
// another instance holds the lock enqueues nothing and is not an error.
func (b *Backfill) Run(ctx context.Context) (int, error) {
	acquired, err := b.locker.SetNX(ctx, backfillLockKey, b.owner, backfillLockTTL).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to acquire backfill lock: %w", err)
	}
	if !acquired {
		b.logger.Debug("Backfill lock held by another instance")
		return 0, nil
	}
	defer func() {
		if err := b.locker.Del(ctx, backfillLockKey).Err(); err != nil {
			b.logger.Warn("Failed to release backfill lock", zap.Error(err))
		}
	}()

	ids, err := b.lessons.GetPendingIDs(ctx, b.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending lessons: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return b.queue.EnqueueLessons(ctx, ids), nil
}

func (b *Backfill) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	enqueued, err := b.Run(ctx)
	if err != nil {
		b.logger.Error("Backfill pass failed", zap.Error(err))
		return
	}
	if enqueued > 0 {
		b.logger.Info("Backfill enqueued pending lessons", zap.Int("count", enqueued))
	}
}
