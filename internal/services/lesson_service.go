package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/models"
)

// LessonRepository is the interface that wraps methods for lessons table data access
type LessonRepository interface {
	// Method Create inserts a new lesson.
	//
	// "lesson" ID field is ignored; the generated ID is returned.
	// Returns the ID of the created lesson and an error if any.
	Create(ctx context.Context, lesson *models.Lesson) (int, error)
	// Method GetByID retrieve a lesson by its ID.
	//
	// Returns a not found error if the lesson does not exist.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// Method GetByIDs retrieve lessons by their IDs.
	//
	// IDs without a stored lesson are silently absent from the result.
	GetByIDs(ctx context.Context, ids []int) ([]models.Lesson, error)
	// Method GetByDayAndTitle retrieve the oldest lesson with the given day and title.
	//
	// Returns a not found error if no lesson matches.
	GetByDayAndTitle(ctx context.Context, day int, title string) (*models.Lesson, error)
	// Method GetAll retrieve all lessons ordered by ID.
	GetAll(ctx context.Context) ([]models.Lesson, error)
	// Method FillContent store the summary, sections and quiz of a lesson that has no sections yet.
	//
	// Returns false and no error when nothing was written, either because the lesson
	// already has sections or because it does not exist.
	FillContent(ctx context.Context, id int, content models.LessonContent) (bool, error)
	// Method UpdateQuiz replace the quiz of a lesson.
	//
	// Returns a not found error if the lesson does not exist.
	UpdateQuiz(ctx context.Context, id int, quiz []models.QuizQuestion) error
	// Method MarkCompleted set the completed flag of a lesson.
	//
	// Completing an already completed lesson is not an error.
	// Returns a not found error if the lesson does not exist.
	MarkCompleted(ctx context.Context, id int) error
}

// ContentGenerator is the interface that wraps methods for AI content generation.
//
// Implementations never fail: when a provider cannot be used they return deterministic fallback content.
type ContentGenerator interface {
	// Method RoadmapSkeleton returns 14 day titles for "topic", ordered by day.
	RoadmapSkeleton(ctx context.Context, topic string) models.Skeleton
	// Method LessonDetail returns the summary, sections and quiz of the lesson "title" taught on "day" of a "topic" course.
	LessonDetail(ctx context.Context, day int, title, topic string) models.LessonContent
	// Method Quiz returns multiple choice questions about the lesson "title" of a "topic" course.
	Quiz(ctx context.Context, title, topic string) []models.QuizQuestion
	// Method PreQuiz returns open questions asked before a "topic" course starts.
	PreQuiz(ctx context.Context, topic string) []string
}

// RoadmapLookup is the interface that wraps the roadmap lookup used to recover a lesson's topic
type RoadmapLookup interface {
	// Method FindTitleByLessonID returns the title of a roadmap referencing the lesson.
	//
	// Returns a not found error for standalone lessons.
	FindTitleByLessonID(ctx context.Context, lessonID int) (string, error)
}

type lessonService struct {
	lessons   LessonRepository
	roadmaps  RoadmapLookup
	generator ContentGenerator
	logger    *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(lessons LessonRepository, roadmaps RoadmapLookup, generator ContentGenerator, logger *zap.Logger) *lessonService {
	return &lessonService{
		lessons:   lessons,
		roadmaps:  roadmaps,
		generator: generator,
		logger:    logger,
	}
}

// GenerateByID fills in the content of a stored lesson.
//
// A lesson that already has sections is returned unchanged without calling the generator.
func (s *lessonService) GenerateByID(ctx context.Context, id int) (*models.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson.IsGenerated() {
		return lesson, nil
	}

	return s.fillContent(ctx, lesson, s.resolveTopic(ctx, lesson))
}

// GenerateByDayTitle returns the lesson with the given day and title, generating its content when needed.
//
// An existing generated lesson is returned unchanged, an existing empty lesson is filled in
// and a missing one is created as a standalone lesson.
func (s *lessonService) GenerateByDayTitle(ctx context.Context, req models.GenerateLessonRequest) (*models.Lesson, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Invalid("title is required")
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return nil, apperr.Invalid(fmt.Sprintf("title must be at most %d characters", models.MaxTitleLength))
	}
	if req.Day < 1 || req.Day > models.RoadmapDays {
		return nil, apperr.Invalid(fmt.Sprintf("day must be between 1 and %d", models.RoadmapDays))
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = topicFromLessonTitle(title)
	}

	existing, err := s.lessons.GetByDayAndTitle(ctx, req.Day, title)
	switch {
	case err == nil && existing.IsGenerated():
		return existing, nil
	case err == nil:
		return s.fillContent(ctx, existing, topic)
	case !apperr.IsNotFound(err):
		return nil, err
	}

	content := s.generator.LessonDetail(ctx, req.Day, title, topic)
	lesson := &models.Lesson{Day: req.Day, Title: title}
	applyContent(lesson, content)

	id, err := s.lessons.Create(ctx, lesson)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	lesson.ID = id

	s.logger.Info("Standalone lesson created", zap.Int("lesson_id", id), zap.Int("day", req.Day))
	return lesson, nil
}

// fillContent generates and stores the content of an empty lesson.
// When another caller stored content first, the stored lesson is returned and the
// generated content is discarded.
func (s *lessonService) fillContent(ctx context.Context, lesson *models.Lesson, topic string) (*models.Lesson, error) {
	content := s.generator.LessonDetail(ctx, lesson.Day, lesson.Title, topic)
	filled, err := s.lessons.FillContent(ctx, lesson.ID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save lesson content: %w", err)
	}
	if !filled {
		s.logger.Info("Lesson content stored concurrently, keeping stored content", zap.Int("lesson_id", lesson.ID))
		return s.lessons.GetByID(ctx, lesson.ID)
	}

	applyContent(lesson, content)
	s.logger.Info("Lesson generated", zap.Int("lesson_id", lesson.ID), zap.Int("day", lesson.Day))
	return lesson, nil
}

// GenerateQuiz fills in the quiz of a stored lesson. A lesson that already has a quiz is returned unchanged.
func (s *lessonService) GenerateQuiz(ctx context.Context, id int) (*models.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(lesson.Quiz) > 0 {
		return lesson, nil
	}

	quiz := s.generator.Quiz(ctx, lesson.Title, s.resolveTopic(ctx, lesson))
	if err := s.lessons.UpdateQuiz(ctx, lesson.ID, quiz); err != nil {
		return nil, fmt.Errorf("failed to save lesson quiz: %w", err)
	}

	lesson.Quiz = quiz
	return lesson, nil
}

// GetLesson retrieves a lesson by its ID
func (s *lessonService) GetLesson(ctx context.Context, id int) (*models.Lesson, error) {
	return s.lessons.GetByID(ctx, id)
}

// ListLessons retrieves all lessons
func (s *lessonService) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	return s.lessons.GetAll(ctx)
}

// MarkCompleted marks a lesson as completed
func (s *lessonService) MarkCompleted(ctx context.Context, id int) (*models.CompleteLessonResponse, error) {
	if err := s.lessons.MarkCompleted(ctx, id); err != nil {
		return nil, err
	}
	return &models.CompleteLessonResponse{
		Message:   "Lesson marked as completed",
		ID:        id,
		Completed: true,
	}, nil
}

// resolveTopic returns the topic of the roadmap referencing the lesson,
// or the part of the lesson title before ':' for standalone lessons
func (s *lessonService) resolveTopic(ctx context.Context, lesson *models.Lesson) string {
	title, err := s.roadmaps.FindTitleByLessonID(ctx, lesson.ID)
	if err == nil {
		return models.TopicFromRoadmapTitle(title)
	}
	if !apperr.IsNotFound(err) {
		s.logger.Warn("Failed to look up lesson roadmap", zap.Int("lesson_id", lesson.ID), zap.Error(err))
	}
	return topicFromLessonTitle(lesson.Title)
}

func topicFromLessonTitle(title string) string {
	before, _, _ := strings.Cut(title, ":")
	if topic := strings.TrimSpace(before); topic != "" {
		return topic
	}
	return title
}

func applyContent(lesson *models.Lesson, content models.LessonContent) {
	lesson.Summary = content.Summary
	lesson.Sections = content.Sections
	lesson.Quiz = content.Quiz
}
