package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	lessonTaskRetries = 3
	lessonTaskTimeout = 3 * time.Minute
)

// TaskEnqueuer is the interface that wraps the asynq client enqueue method
type TaskEnqueuer interface {
	// Method EnqueueContext puts "task" on a queue.
	//
	// Returns the info of the enqueued task and an error if any.
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is the interface that wraps the asynq inspector methods used to recycle archived tasks
type TaskInspector interface {
	// Method GetTaskInfo retrieves the task "id" of "queue".
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
	// Method DeleteTask deletes the task "id" of "queue".
	DeleteTask(queue, id string) error
}

// LessonQueue enqueues lesson generation tasks
type LessonQueue struct {
	client    TaskEnqueuer
	inspector TaskInspector
	logger    *zap.Logger
}

// NewLessonQueue creates a new lesson queue.
// A nil inspector leaves archived tasks in place, so their lessons are not enqueued again.
func NewLessonQueue(client TaskEnqueuer, inspector TaskInspector, logger *zap.Logger) *LessonQueue {
	return &LessonQueue{
		client:    client,
		inspector: inspector,
		logger:    logger,
	}
}

// EnqueueLessons enqueues one generation task per lesson.
//
// A lesson whose task is still waiting or running is skipped. A lesson whose task was
// archived after exhausting its retries gets a fresh task. Enqueue failures are logged.
// Returns the number of tasks enqueued.
func (q *LessonQueue) EnqueueLessons(ctx context.Context, ids []int) int {
	enqueued := 0
	for _, id := range ids {
		err := q.enqueue(ctx, id)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			err = q.replaceArchived(ctx, id)
		}
		switch {
		case errors.Is(err, asynq.ErrTaskIDConflict):
			q.logger.Debug("Lesson generation already queued", zap.Int("lesson_id", id))
		case err != nil:
			q.logger.Warn("Failed to enqueue lesson generation", zap.Int("lesson_id", id), zap.Error(err))
		default:
			enqueued++
		}
	}
	return enqueued
}

func (q *LessonQueue) enqueue(ctx context.Context, id int) error {
	_, err := q.client.EnqueueContext(ctx, NewLessonGenerateTask(id),
		asynq.Queue(QueueLessons),
		asynq.TaskID(lessonTaskID(id)),
		asynq.MaxRetry(lessonTaskRetries),
		asynq.Timeout(lessonTaskTimeout),
	)
	return err
}

// replaceArchived deletes the archived task of a lesson and enqueues a new one.
// Returns asynq.ErrTaskIDConflict when the existing task is not archived.
func (q *LessonQueue) replaceArchived(ctx context.Context, id int) error {
	if q.inspector == nil {
		return asynq.ErrTaskIDConflict
	}

	info, err := q.inspector.GetTaskInfo(QueueLessons, lessonTaskID(id))
	if err != nil {
		return err
	}
	if info.State != asynq.TaskStateArchived {
		return asynq.ErrTaskIDConflict
	}

	if err := q.inspector.DeleteTask(QueueLessons, lessonTaskID(id)); err != nil {
		return err
	}
	q.logger.Info("Archived lesson generation task replaced", zap.Int("lesson_id", id))
	return q.enqueue(ctx, id)
}
