package services

import (
	"context"
	"slices"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/generator"
	"github.com/dinolearn/backend/internal/models"
)

// mockLessonRepository is an in-memory implementation of LessonRepository
type mockLessonRepository struct {
	lessons   map[int]*models.Lesson
	nextID    int
	err       error
	createErr error
	updateErr error
	created   int
	updated   int
}

func newMockLessonRepository(lessons ...models.Lesson) *mockLessonRepository {
	m := &mockLessonRepository{lessons: map[int]*models.Lesson{}, nextID: 100}
	for i := range lessons {
		l := lessons[i]
		m.lessons[l.ID] = &l
	}
	return m
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.created++
	stored := *lesson
	stored.ID = m.nextID
	m.lessons[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	l, ok := m.lessons[id]
	if !ok {
		return nil, apperr.NotFound("lesson not found")
	}
	copied := *l
	return &copied, nil
}

func (m *mockLessonRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []models.Lesson{}
	for id, l := range m.lessons {
		if slices.Contains(ids, id) {
			result = append(result, *l)
		}
	}
	slices.SortFunc(result, func(a, b models.Lesson) int { return a.ID - b.ID })
	return result, nil
}

func (m *mockLessonRepository) GetByDayAndTitle(ctx context.Context, day int, title string) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, l := range m.lessons {
		if l.Day == day && l.Title == title {
			copied := *l
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("lesson not found")
}

func (m *mockLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	ids := make([]int, 0, len(m.lessons))
	for id := range m.lessons {
		ids = append(ids, id)
	}
	return m.GetByIDs(ctx, ids)
}

func (m *mockLessonRepository) FillContent(ctx context.Context, id int, content models.LessonContent) (bool, error) {
	if m.updateErr != nil {
		return false, m.updateErr
	}
	l, ok := m.lessons[id]
	if !ok || l.IsGenerated() {
		return false, nil
	}
	m.updated++
	l.Summary, l.Sections, l.Quiz = content.Summary, content.Sections, content.Quiz
	return true, nil
}

func (m *mockLessonRepository) UpdateQuiz(ctx context.Context, id int, quiz []models.QuizQuestion) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	l, ok := m.lessons[id]
	if !ok {
		return apperr.NotFound("lesson not found")
	}
	m.updated++
	l.Quiz = quiz
	return nil
}

func (m *mockLessonRepository) MarkCompleted(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	l, ok := m.lessons[id]
	if !ok {
		return apperr.NotFound("lesson not found")
	}
	l.Completed = true
	return nil
}

// mockRoadmapRepository is an in-memory implementation of RoadmapRepository and RoadmapLookup
type mockRoadmapRepository struct {
	roadmaps  []models.Roadmap
	err       error
	createErr error
	lookupErr error
}

func (m *mockRoadmapRepository) Create(ctx context.Context, title string, lessonIDs []int) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := len(m.roadmaps) + 1
	m.roadmaps = append(m.roadmaps, models.Roadmap{ID: id, Title: title, LessonIDs: slices.Clone(lessonIDs)})
	return id, nil
}

func (m *mockRoadmapRepository) GetAll(ctx context.Context, titleFilter string) ([]models.Roadmap, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roadmaps, nil
}

func (m *mockRoadmapRepository) GetByID(ctx context.Context, id int) (*models.Roadmap, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.roadmaps {
		if m.roadmaps[i].ID == id {
			r := m.roadmaps[i]
			return &r, nil
		}
	}
	return nil, apperr.NotFound("roadmap not found")
}

func (m *mockRoadmapRepository) FindTitleByLessonID(ctx context.Context, lessonID int) (string, error) {
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	for _, r := range m.roadmaps {
		if slices.Contains(r.LessonIDs, lessonID) {
			return r.Title, nil
		}
	}
	return "", apperr.NotFound("roadmap not found")
}

// mockGenerator is a mock implementation of ContentGenerator returning fallback content
type mockGenerator struct {
	skeletonCalls int
	detailCalls   int
	quizCalls     int
	topics        []string
	// summaries overrides the summary of the n-th LessonDetail call
	summaries []string
	// onDetail runs once while a LessonDetail call is in progress
	onDetail func()
}

func (m *mockGenerator) RoadmapSkeleton(ctx context.Context, topic string) models.Skeleton {
	m.skeletonCalls++
	m.topics = append(m.topics, topic)
	return generator.FallbackSkeleton(topic)
}

func (m *mockGenerator) LessonDetail(ctx context.Context, day int, title, topic string) models.LessonContent {
	m.detailCalls++
	call := m.detailCalls
	m.topics = append(m.topics, topic)
	if hook := m.onDetail; hook != nil {
		m.onDetail = nil
		hook()
	}
	content := generator.FallbackLesson(day, title)
	if call <= len(m.summaries) {
		content.Summary = m.summaries[call-1]
	}
	return content
}

func (m *mockGenerator) Quiz(ctx context.Context, title, topic string) []models.QuizQuestion {
	m.quizCalls++
	m.topics = append(m.topics, topic)
	return generator.FallbackQuiz(title)
}

func (m *mockGenerator) PreQuiz(ctx context.Context, topic string) []string {
	m.topics = append(m.topics, topic)
	return generator.FallbackPreQuiz(topic)
}

// mockLessonQueue records lessons scheduled for background generation
type mockLessonQueue struct {
	ids []int
}

func (m *mockLessonQueue) EnqueueLessons(ctx context.Context, ids []int) int {
	m.ids = append(m.ids, ids...)
	return len(ids)
}
