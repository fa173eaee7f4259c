package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/generator"
	"github.com/dinolearn/backend/internal/models"
)

func TestNewLessonService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	lessons := newMockLessonRepository()
	roadmaps := &mockRoadmapRepository{}
	gen := &mockGenerator{}

	svc := NewLessonService(lessons, roadmaps, gen, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, lessons, svc.lessons)
	assert.Equal(t, roadmaps, svc.roadmaps)
	assert.Equal(t, gen, svc.generator)
	assert.Equal(t, logger, svc.logger)
}

func TestLessonService_GenerateByID(t *testing.T) {
	generated := models.Lesson{ID: 1, Day: 1, Title: "Magma", Summary: "done", Sections: []models.Section{{Heading: "Intro", Body: "Hot"}}}
	empty := models.Lesson{ID: 2, Day: 2, Title: "Lava Flows", Summary: "Day 2: Lava Flows", Sections: []models.Section{}}
	standalone := models.Lesson{ID: 3, Day: 5, Title: "Geology: Plates", Sections: []models.Section{}}

	tests := []struct {
		name            string
		id              int
		roadmaps        *mockRoadmapRepository
		expectedKind    apperr.Kind
		expectedError   bool
		expectedCalls   int
		expectedTopic   string
		expectedSummary string
	}{
		{
			name:            "already generated is unchanged",
			id:              1,
			roadmaps:        &mockRoadmapRepository{},
			expectedCalls:   0,
			expectedSummary: "done",
		},
		{
			name:            "topic from roadmap",
			id:              2,
			roadmaps:        &mockRoadmapRepository{roadmaps: []models.Roadmap{{ID: 1, Title: "Volcanoes Roadmap", LessonIDs: []int{2}}}},
			expectedCalls:   1,
			expectedTopic:   "Volcanoes",
			expectedSummary: "This lesson introduces key concepts about Lava Flows.",
		},
		{
			name:            "topic from lesson title",
			id:              3,
			roadmaps:        &mockRoadmapRepository{},
			expectedCalls:   1,
			expectedTopic:   "Geology",
			expectedSummary: "This lesson introduces key concepts about Geology: Plates.",
		},
		{
			name:            "lookup failure falls back to lesson title",
			id:              2,
			roadmaps:        &mockRoadmapRepository{lookupErr: errors.New("database error")},
			expectedCalls:   1,
			expectedTopic:   "Lava Flows",
			expectedSummary: "This lesson introduces key concepts about Lava Flows.",
		},
		{
			name:          "not found",
			id:            42,
			roadmaps:      &mockRoadmapRepository{},
			expectedError: true,
			expectedKind:  apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons := newMockLessonRepository(generated, empty, standalone)
			gen := &mockGenerator{}
			svc := NewLessonService(lessons, tt.roadmaps, gen, zap.NewNop())

			lesson, err := svc.GenerateByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Nil(t, lesson)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCalls, gen.detailCalls)
			assert.Equal(t, tt.expectedSummary, lesson.Summary)
			assert.True(t, lesson.IsGenerated())
			if tt.expectedCalls > 0 {
				assert.Equal(t, []string{tt.expectedTopic}, gen.topics)
				assert.Len(t, lesson.Sections, 5)
				assert.Equal(t, lesson.Sections, lessons.lessons[tt.id].Sections)
			}
		})
	}
}

func TestLessonService_GenerateByID_Idempotent(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 2, Day: 2, Title: "Lava", Sections: []models.Section{}})
	gen := &mockGenerator{}
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, gen, zap.NewNop())

	first, err := svc.GenerateByID(context.Background(), 2)
	require.NoError(t, err)
	second, err := svc.GenerateByID(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.detailCalls)
	assert.Equal(t, 1, lessons.updated)
	assert.Equal(t, first.Sections, second.Sections)
}

func TestLessonService_GenerateByID_ConcurrentGeneration(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 2, Day: 2, Title: "Lava", Sections: []models.Section{}})
	gen := &mockGenerator{summaries: []string{"first request", "second request"}}
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, gen, zap.NewNop())

	// A second generation of the same lesson finishes while the first waits on the generator
	var inner *models.Lesson
	gen.onDetail = func() {
		var err error
		inner, err = svc.GenerateByID(context.Background(), 2)
		require.NoError(t, err)
	}

	outer, err := svc.GenerateByID(context.Background(), 2)

	require.NoError(t, err)
	require.NotNil(t, inner)
	assert.Equal(t, 2, gen.detailCalls)
	assert.Equal(t, 1, lessons.updated)
	assert.Equal(t, "second request", inner.Summary)
	assert.Equal(t, "second request", outer.Summary)
	assert.Equal(t, "second request", lessons.lessons[2].Summary)
	assert.Equal(t, inner.Sections, outer.Sections)
}

func TestLessonService_GenerateByDayTitle_ConcurrentGeneration(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 4, Day: 1, Title: "Magma", Sections: []models.Section{}})
	gen := &mockGenerator{summaries: []string{"by title", "by id"}}
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, gen, zap.NewNop())

	gen.onDetail = func() {
		_, err := svc.GenerateByID(context.Background(), 4)
		require.NoError(t, err)
	}

	lesson, err := svc.GenerateByDayTitle(context.Background(), models.GenerateLessonRequest{Day: 1, Title: "Magma", Topic: "Volcanoes"})

	require.NoError(t, err)
	assert.Equal(t, 4, lesson.ID)
	assert.Equal(t, "by id", lesson.Summary)
	assert.Equal(t, 1, lessons.updated)
	assert.Zero(t, lessons.created)
}

func TestLessonService_GenerateByID_DeletedDuringGeneration(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 2, Day: 2, Title: "Lava", Sections: []models.Section{}})
	gen := &mockGenerator{}
	gen.onDetail = func() { delete(lessons.lessons, 2) }
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, gen, zap.NewNop())

	lesson, err := svc.GenerateByID(context.Background(), 2)

	assert.Nil(t, lesson)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestLessonService_GenerateByID_UpdateError(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 2, Day: 2, Title: "Lava"})
	lessons.updateErr = errors.New("database error")
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, &mockGenerator{}, zap.NewNop())

	lesson, err := svc.GenerateByID(context.Background(), 2)

	assert.Nil(t, lesson)
	assert.ErrorContains(t, err, "failed to save lesson content")
}

func TestLessonService_GenerateByDayTitle(t *testing.T) {
	tests := []struct {
		name          string
		existing      []models.Lesson
		req           models.GenerateLessonRequest
		expectedKind  apperr.Kind
		expectedError bool
		expectedCalls int
		expectedNew   int
		expectedTopic string
	}{
		{
			name:          "missing title",
			req:           models.GenerateLessonRequest{Day: 1, Title: " "},
			expectedError: true,
			expectedKind:  apperr.KindInvalid,
		},
		{
			name:          "title too long",
			req:           models.GenerateLessonRequest{Day: 1, Title: strings.Repeat("a", models.MaxTitleLength+1)},
			expectedError: true,
			expectedKind:  apperr.KindInvalid,
		},
		{
			name:          "day out of range",
			req:           models.GenerateLessonRequest{Day: 15, Title: "Magma"},
			expectedError: true,
			expectedKind:  apperr.KindInvalid,
		},
		{
			name:          "existing generated lesson",
			existing:      []models.Lesson{{ID: 1, Day: 1, Title: "Magma", Sections: []models.Section{{Heading: "a", Body: "b"}}}},
			req:           models.GenerateLessonRequest{Day: 1, Title: "Magma", Topic: "Volcanoes"},
			expectedCalls: 0,
		},
		{
			name:          "existing empty lesson",
			existing:      []models.Lesson{{ID: 1, Day: 1, Title: "Magma", Sections: []models.Section{}}},
			req:           models.GenerateLessonRequest{Day: 1, Title: "Magma", Topic: "Volcanoes"},
			expectedCalls: 1,
			expectedTopic: "Volcanoes",
		},
		{
			name:          "standalone lesson created",
			req:           models.GenerateLessonRequest{Day: 3, Title: "Volcanoes: Lava"},
			expectedCalls: 1,
			expectedNew:   1,
			expectedTopic: "Volcanoes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons := newMockLessonRepository(tt.existing...)
			gen := &mockGenerator{}
			svc := NewLessonService(lessons, &mockRoadmapRepository{}, gen, zap.NewNop())

			lesson, err := svc.GenerateByDayTitle(context.Background(), tt.req)

			if tt.expectedError {
				assert.Nil(t, lesson)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Zero(t, gen.detailCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCalls, gen.detailCalls)
			assert.Equal(t, tt.expectedNew, lessons.created)
			assert.Equal(t, tt.req.Day, lesson.Day)
			assert.NotZero(t, lesson.ID)
			assert.True(t, lesson.IsGenerated())
			if tt.expectedCalls > 0 {
				assert.Equal(t, []string{tt.expectedTopic}, gen.topics)
				assert.Equal(t, generator.FallbackQuiz(lesson.Title), lesson.Quiz)
			}
		})
	}
}

func TestLessonService_GenerateQuiz(t *testing.T) {
	quiz := []models.QuizQuestion{{Question: "Q", Options: []string{"a", "b", "c", "d"}, Answer: "a"}}
	lessons := newMockLessonRepository(
		models.Lesson{ID: 1, Day: 1, Title: "Magma", Quiz: quiz},
		models.Lesson{ID: 2, Day: 2, Title: "Lava"},
	)
	gen := &mockGenerator{}
	roadmaps := &mockRoadmapRepository{roadmaps: []models.Roadmap{{ID: 1, Title: "Volcanoes Roadmap", LessonIDs: []int{1, 2}}}}
	svc := NewLessonService(lessons, roadmaps, gen, zap.NewNop())

	lesson, err := svc.GenerateQuiz(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, quiz, lesson.Quiz)
	assert.Zero(t, gen.quizCalls)

	lesson, err = svc.GenerateQuiz(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, generator.FallbackQuiz("Lava"), lesson.Quiz)
	assert.Equal(t, lesson.Quiz, lessons.lessons[2].Quiz)
	assert.Equal(t, []string{"Volcanoes"}, gen.topics)

	lesson, err = svc.GenerateQuiz(context.Background(), 3)
	assert.Nil(t, lesson)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLessonService_MarkCompleted(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 7, Day: 1, Title: "Magma"})
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, &mockGenerator{}, zap.NewNop())

	resp, err := svc.MarkCompleted(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &models.CompleteLessonResponse{Message: "Lesson marked as completed", ID: 7, Completed: true}, resp)

	resp, err = svc.MarkCompleted(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, resp.Completed)

	lesson, err := svc.GetLesson(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, lesson.Completed)

	resp, err = svc.MarkCompleted(context.Background(), 8)
	assert.Nil(t, resp)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLessonService_ListLessons(t *testing.T) {
	lessons := newMockLessonRepository(models.Lesson{ID: 2, Title: "B"}, models.Lesson{ID: 1, Title: "A"})
	svc := NewLessonService(lessons, &mockRoadmapRepository{}, &mockGenerator{}, zap.NewNop())

	all, err := svc.ListLessons(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)
}

func TestTopicFromLessonTitle(t *testing.T) {
	assert.Equal(t, "Volcanoes", topicFromLessonTitle("Volcanoes: Lava"))
	assert.Equal(t, "Lava", topicFromLessonTitle("Lava"))
	assert.Equal(t, ": odd", topicFromLessonTitle(": odd"))
}
