// Package generator turns topics and lesson titles into roadmap content using hosted
// text generation APIs. Every operation degrades to deterministic fallback content,
// so callers never see a generation error.
package generator

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/models"
)

// Failure categories reported in logs when fallback content is used
const (
	categoryConfiguration = "configuration"
	categoryUpstream      = "upstream"
	categoryParse         = "parse"
)

// Generator produces roadmap skeletons, lesson content and quizzes
type Generator struct {
	roadmapClient TextClient
	lessonClient  TextClient
	prompts       *PromptCatalog
	logger        *zap.Logger
}

// NewGenerator creates a generator. roadmapClient serves roadmap skeletons and
// pre-quizzes, lessonClient serves lesson content and quizzes.
func NewGenerator(roadmapClient, lessonClient TextClient, prompts *PromptCatalog, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		roadmapClient: roadmapClient,
		lessonClient:  lessonClient,
		prompts:       prompts,
		logger:        logger,
	}
}

// RoadmapSkeleton returns a 14-day title plan for topic
func (g *Generator) RoadmapSkeleton(ctx context.Context, topic string) models.Skeleton {
	text, err := g.ask(ctx, g.roadmapClient, PromptRoadmapSkeleton, map[string]string{"topic": topic})
	if err != nil {
		g.warnFallback(PromptRoadmapSkeleton, g.roadmapClient, err, zap.String("topic", topic))
		return FallbackSkeleton(topic)
	}

	skeleton, err := parseSkeleton(text, topic)
	if err != nil {
		g.warnFallback(PromptRoadmapSkeleton, g.roadmapClient, parseError{err}, zap.String("topic", topic))
		return FallbackSkeleton(topic)
	}
	return skeleton
}

// LessonDetail returns the content of the lesson for day and title within topic
func (g *Generator) LessonDetail(ctx context.Context, day int, title, topic string) models.LessonContent {
	fields := []zap.Field{zap.Int("day", day), zap.String("title", title)}

	text, err := g.ask(ctx, g.lessonClient, PromptLessonDetail, map[string]string{
		"day":   strconv.Itoa(day),
		"title": title,
		"topic": topic,
	})
	if err != nil {
		g.warnFallback(PromptLessonDetail, g.lessonClient, err, fields...)
		return FallbackLesson(day, title)
	}

	content, err := parseLesson(text, day, title)
	switch {
	case errors.Is(err, errInvalidQuiz):
		g.warnFallback(PromptQuiz, g.lessonClient, parseError{err}, fields...)
		content.Quiz = FallbackQuiz(title)
	case err != nil:
		g.warnFallback(PromptLessonDetail, g.lessonClient, parseError{err}, fields...)
		return FallbackLesson(day, title)
	}
	return content
}

// Quiz returns multiple choice questions about the lesson title within topic
func (g *Generator) Quiz(ctx context.Context, title, topic string) []models.QuizQuestion {
	text, err := g.ask(ctx, g.lessonClient, PromptQuiz, map[string]string{"title": title, "topic": topic})
	if err != nil {
		g.warnFallback(PromptQuiz, g.lessonClient, err, zap.String("title", title))
		return FallbackQuiz(title)
	}

	quiz, err := parseQuiz(text)
	if err != nil {
		g.warnFallback(PromptQuiz, g.lessonClient, parseError{err}, zap.String("title", title))
		return FallbackQuiz(title)
	}
	return quiz
}

// PreQuiz returns open diagnostic questions asked before a roadmap on topic starts
func (g *Generator) PreQuiz(ctx context.Context, topic string) []string {
	text, err := g.ask(ctx, g.roadmapClient, PromptPreQuiz, map[string]string{"topic": topic})
	if err != nil {
		g.warnFallback(PromptPreQuiz, g.roadmapClient, err, zap.String("topic", topic))
		return FallbackPreQuiz(topic)
	}

	questions, err := parsePreQuiz(text)
	if err != nil {
		g.warnFallback(PromptPreQuiz, g.roadmapClient, parseError{err}, zap.String("topic", topic))
		return FallbackPreQuiz(topic)
	}
	return questions
}

func (g *Generator) ask(ctx context.Context, client TextClient, prompt string, vars map[string]string) (string, error) {
	if client == nil {
		return "", ErrMissingAPIKey
	}
	text, err := g.prompts.Render(prompt, vars)
	if err != nil {
		return "", configError{err}
	}
	return client.GenerateText(ctx, text)
}

type parseError struct{ err error }

func (e parseError) Error() string { return e.err.Error() }
func (e parseError) Unwrap() error { return e.err }

type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// failureCategory classifies why fallback content was used
func failureCategory(err error) string {
	var pe parseError
	var ce configError
	switch {
	case errors.Is(err, ErrMissingAPIKey), errors.As(err, &ce):
		return categoryConfiguration
	case errors.As(err, &pe):
		return categoryParse
	default:
		return categoryUpstream
	}
}

func (g *Generator) warnFallback(prompt string, client TextClient, err error, fields ...zap.Field) {
	provider := "none"
	if client != nil {
		provider = client.Name()
	}
	fields = append(fields,
		zap.String("prompt", prompt),
		zap.String("provider", provider),
		zap.String("category", failureCategory(err)),
		zap.Error(err),
	)
	g.logger.Warn("Using fallback content", fields...)
}
