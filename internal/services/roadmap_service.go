package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/models"
)

// RoadmapRepository is the interface that wraps methods for roadmaps table data access
type RoadmapRepository interface {
	// Method Create inserts a roadmap referencing "lessonIDs" in day order.
	//
	// The roadmap and its references are written atomically; the lessons themselves are not touched.
	// Returns the ID of the created roadmap and an error if any.
	Create(ctx context.Context, title string, lessonIDs []int) (int, error)
	// Method GetAll retrieve roadmaps ordered by title.
	//
	// A non-empty "titleFilter" keeps roadmaps whose title contains it, ignoring case.
	GetAll(ctx context.Context, titleFilter string) ([]models.Roadmap, error)
	// Method GetByID retrieve a roadmap by its ID.
	//
	// Returns a not found error if the roadmap does not exist.
	GetByID(ctx context.Context, id int) (*models.Roadmap, error)
}

// LessonQueue is the interface that wraps background lesson generation scheduling
type LessonQueue interface {
	// Method EnqueueLessons schedules background content generation for the lessons "ids".
	//
	// Failures are logged by the queue and never reach the caller.
	// Returns the number of lessons scheduled.
	EnqueueLessons(ctx context.Context, ids []int) int
}

type roadmapService struct {
	roadmaps  RoadmapRepository
	lessons   LessonRepository
	generator ContentGenerator
	queue     LessonQueue
	logger    *zap.Logger
}

// NewRoadmapService creates a new roadmap service
func NewRoadmapService(roadmaps RoadmapRepository, lessons LessonRepository, generator ContentGenerator, logger *zap.Logger) *roadmapService {
	return &roadmapService{
		roadmaps:  roadmaps,
		lessons:   lessons,
		generator: generator,
		logger:    logger,
	}
}

// WithLessonQueue makes CreateRoadmap schedule background generation of the new lessons
func (s *roadmapService) WithLessonQueue(queue LessonQueue) *roadmapService {
	s.queue = queue
	return s
}

// CreateRoadmap generates a 14-day plan for topic and stores one empty lesson per day plus the roadmap.
//
// Lessons are created before the roadmap and are not removed if a later step fails.
func (s *roadmapService) CreateRoadmap(ctx context.Context, topic string) (*models.RoadmapDetailResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apperr.Invalid("topic is required")
	}
	if utf8.RuneCountInString(topic) > models.MaxTopicLength {
		return nil, apperr.Invalid(fmt.Sprintf("topic must be at most %d characters", models.MaxTopicLength))
	}

	skeleton := s.generator.RoadmapSkeleton(ctx, topic)

	lessons := make([]models.Lesson, 0, len(skeleton.Days))
	ids := make([]int, 0, len(skeleton.Days))
	for _, day := range skeleton.Days {
		lesson := models.Lesson{
			Day:      day.Day,
			Title:    day.Title,
			Summary:  fmt.Sprintf("Day %d: %s", day.Day, day.Title),
			Sections: []models.Section{},
		}
		id, err := s.lessons.Create(ctx, &lesson)
		if err != nil {
			return nil, fmt.Errorf("failed to create lesson for day %d: %w", day.Day, err)
		}
		lesson.ID = id
		lessons = append(lessons, lesson)
		ids = append(ids, id)
	}

	title := models.RoadmapTitle(skeleton.Topic)
	id, err := s.roadmaps.Create(ctx, title, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	s.logger.Info("Roadmap created", zap.Int("roadmap_id", id), zap.String("topic", skeleton.Topic))

	if s.queue != nil {
		scheduled := s.queue.EnqueueLessons(ctx, ids)
		s.logger.Debug("Lesson generation scheduled", zap.Int("roadmap_id", id), zap.Int("lessons", scheduled))
	}

	return &models.RoadmapDetailResponse{
		ID:          id,
		Title:       title,
		RoadmapData: models.RoadmapData{Topic: skeleton.Topic, Roadmap: dayItems(lessons)},
		Lessons:     lessons,
	}, nil
}

// ListRoadmaps retrieves roadmaps with their reconciled day plans.
//
// A roadmap none of whose lessons can be found is shown with a freshly generated
// skeleton that is not stored.
func (s *roadmapService) ListRoadmaps(ctx context.Context, titleFilter string) ([]models.RoadmapListItem, error) {
	roadmaps, err := s.roadmaps.GetAll(ctx, strings.TrimSpace(titleFilter))
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, r := range roadmaps {
		ids = append(ids, r.LessonIDs...)
	}
	byID, err := s.lessonsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.RoadmapListItem, 0, len(roadmaps))
	for i := range roadmaps {
		lessons := reconcile(roadmaps[i].LessonIDs, byID)
		items = append(items, models.RoadmapListItem{
			ID:          roadmaps[i].ID,
			Title:       roadmaps[i].Title,
			RoadmapData: s.roadmapData(ctx, &roadmaps[i], lessons),
		})
	}
	return items, nil
}

// GetRoadmap retrieves a roadmap with its reconciled day plan and lessons
func (s *roadmapService) GetRoadmap(ctx context.Context, id int) (*models.RoadmapDetailResponse, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	byID, err := s.lessonsByID(ctx, roadmap.LessonIDs)
	if err != nil {
		return nil, err
	}
	lessons := reconcile(roadmap.LessonIDs, byID)

	return &models.RoadmapDetailResponse{
		ID:          roadmap.ID,
		Title:       roadmap.Title,
		RoadmapData: s.roadmapData(ctx, roadmap, lessons),
		Lessons:     lessons,
	}, nil
}

// PreQuiz returns diagnostic questions for topic
func (s *roadmapService) PreQuiz(ctx context.Context, topic string) (*models.PreQuizResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apperr.Invalid("topic is required")
	}
	return &models.PreQuizResponse{
		Topic:     topic,
		Questions: s.generator.PreQuiz(ctx, topic),
	}, nil
}

func (s *roadmapService) lessonsByID(ctx context.Context, ids []int) (map[int]models.Lesson, error) {
	lessons, err := s.lessons.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roadmap lessons: %w", err)
	}
	byID := make(map[int]models.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}
	return byID, nil
}

func (s *roadmapService) roadmapData(ctx context.Context, roadmap *models.Roadmap, lessons []models.Lesson) models.RoadmapData {
	topic := roadmap.Topic()
	if len(lessons) > 0 {
		return models.RoadmapData{Topic: topic, Roadmap: dayItems(lessons)}
	}

	s.logger.Warn("Roadmap has no resolvable lessons, showing a generated plan",
		zap.Int("roadmap_id", roadmap.ID), zap.Int("references", len(roadmap.LessonIDs)))

	skeleton := s.generator.RoadmapSkeleton(ctx, topic)
	items := make([]models.RoadmapDayItem, 0, len(skeleton.Days))
	for _, d := range skeleton.Days {
		items = append(items, models.RoadmapDayItem{Day: d.Day, Title: d.Title})
	}
	return models.RoadmapData{Topic: topic, Roadmap: items}
}

// reconcile resolves lesson references, dropping dangling ones, ordered by day then ID
func reconcile(ids []int, byID map[int]models.Lesson) []models.Lesson {
	lessons := make([]models.Lesson, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			lessons = append(lessons, l)
		}
	}
	slices.SortStableFunc(lessons, func(a, b models.Lesson) int {
		return cmp.Or(cmp.Compare(a.Day, b.Day), cmp.Compare(a.ID, b.ID))
	})
	return lessons
}

func dayItems(lessons []models.Lesson) []models.RoadmapDayItem {
	items := make([]models.RoadmapDayItem, 0, len(lessons))
	for _, l := range lessons {
		items = append(items, models.RoadmapDayItem{
			Day:      l.Day,
			Title:    l.Title,
			Summary:  l.Summary,
			LessonID: l.ID,
		})
	}
	return items
}
