// Package tasks schedules and runs background lesson content generation
package tasks

import (
	"fmt"
	"strconv"

	"github.com/hibiken/asynq"
)

const (
	// TypeLessonGenerate is the task type that generates the content of one stored lesson
	TypeLessonGenerate = "lesson:generate"
	// QueueLessons is the queue lesson generation tasks are enqueued to
	QueueLessons = "lessons"
)

// NewLessonGenerateTask creates a task that generates the content of the lesson "lessonID"
func NewLessonGenerateTask(lessonID int) *asynq.Task {
	return asynq.NewTask(TypeLessonGenerate, []byte(strconv.Itoa(lessonID)))
}

// ParseLessonID returns the lesson ID carried by a lesson generation task
func ParseLessonID(t *asynq.Task) (int, error) {
	id, err := strconv.Atoi(string(t.Payload()))
	if err != nil {
		return 0, fmt.Errorf("failed to parse lesson ID: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid lesson ID %d", id)
	}
	return id, nil
}

func lessonTaskID(lessonID int) string {
	return "lesson-" + strconv.Itoa(lessonID)
}
