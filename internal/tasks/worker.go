package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/models"
)

// LessonGenerator is the interface that wraps the lesson content generation used by the worker
type LessonGenerator interface {
	// Method GenerateByID fills in the content of the stored lesson "id".
	//
	// A lesson that already has content is returned unchanged.
	// Returns the lesson and an error if any.
	GenerateByID(ctx context.Context, id int) (*models.Lesson, error)
}

// LessonWorker handles lesson generation tasks
type LessonWorker struct {
	lessons LessonGenerator
	logger  *zap.Logger
}

// NewLessonWorker creates a new lesson worker
func NewLessonWorker(lessons LessonGenerator, logger *zap.Logger) *LessonWorker {
	return &LessonWorker{
		lessons: lessons,
		logger:  logger,
	}
}

// Register registers the worker task handlers on mux
func (w *LessonWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeLessonGenerate, w.HandleLessonGenerate)
}

// HandleLessonGenerate generates the content of the lesson carried by t
func (w *LessonWorker) HandleLessonGenerate(ctx context.Context, t *asynq.Task) error {
	id, err := ParseLessonID(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	lesson, err := w.lessons.GenerateByID(ctx, id)
	if err != nil {
		// Lesson was deleted before processing
		if apperr.IsNotFound(err) {
			w.logger.Info("Lesson no longer exists, task skipped", zap.Int("lesson_id", id))
			return nil
		}
		return err
	}

	w.logger.Info("Lesson generation task completed", zap.Int("lesson_id", lesson.ID), zap.Int("sections", len(lesson.Sections)))
	return nil
}
