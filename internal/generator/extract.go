package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dinolearn/backend/internal/models"
)

var errNoJSONObject = errors.New("no JSON object found in response")

// extractJSONObject returns the JSON object carried by a free-text model answer.
// The whole answer (without markdown code fences) is tried first; otherwise the
// text between the first '{' and the last '}' is used.
func extractJSONObject(text string) (string, error) {
	s := stripCodeFence(strings.TrimSpace(text))
	if strings.HasPrefix(s, "{") && json.Valid([]byte(s)) {
		return s, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return s[start : end+1], nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// decodeAnswer extracts the JSON object from text and decodes it into out
func decodeAnswer(text string, out any) error {
	raw, err := extractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode JSON object: %w", err)
	}
	return nil
}

type skeletonAnswer struct {
	Topic   string               `json:"topic"`
	Roadmap []models.SkeletonDay `json:"roadmap"`
	Days    []models.SkeletonDay `json:"days"`
}

// parseSkeleton validates a skeleton answer. The result always has exactly
// RoadmapDays entries ordered by day, and carries the requested topic.
func parseSkeleton(text, topic string) (models.Skeleton, error) {
	var answer skeletonAnswer
	if err := decodeAnswer(text, &answer); err != nil {
		return models.Skeleton{}, err
	}
	if strings.TrimSpace(answer.Topic) == "" {
		return models.Skeleton{}, errors.New("roadmap answer has no topic")
	}

	days := answer.Roadmap
	if len(days) == 0 {
		days = answer.Days
	}
	if len(days) == 0 {
		return models.Skeleton{}, errors.New("roadmap answer has no days")
	}

	titles := make(map[int]string, models.RoadmapDays)
	for _, d := range days {
		title := strings.TrimSpace(d.Title)
		if d.Day < 1 || d.Day > models.RoadmapDays || title == "" {
			continue
		}
		if _, seen := titles[d.Day]; !seen {
			titles[d.Day] = models.TruncateTitle(title)
		}
	}

	skeleton := models.Skeleton{Topic: topic, Days: make([]models.SkeletonDay, 0, models.RoadmapDays)}
	for day := 1; day <= models.RoadmapDays; day++ {
		title, ok := titles[day]
		if !ok {
			return models.Skeleton{}, fmt.Errorf("roadmap answer is missing day %d", day)
		}
		skeleton.Days = append(skeleton.Days, models.SkeletonDay{Day: day, Title: title})
	}
	return skeleton, nil
}

type lessonAnswer struct {
	Day      int                   `json:"day"`
	Title    string                `json:"title"`
	Summary  string                `json:"summary"`
	Lesson   []models.Section      `json:"lesson"`
	Sections []models.Section      `json:"sections"`
	Quiz     []models.QuizQuestion `json:"quiz"`
}

// errInvalidQuiz marks a lesson answer whose sections are usable but whose quiz is not
var errInvalidQuiz = errors.New("invalid quiz")

// parseLesson validates a lesson detail answer. Day and title are taken from the
// request so the stored lesson keeps its identity. When only the quiz is unusable
// the content is returned together with an error wrapping errInvalidQuiz.
func parseLesson(text string, day int, title string) (models.LessonContent, error) {
	var answer lessonAnswer
	if err := decodeAnswer(text, &answer); err != nil {
		return models.LessonContent{}, err
	}
	if answer.Day == 0 || strings.TrimSpace(answer.Title) == "" {
		return models.LessonContent{}, errors.New("lesson answer has no day or title")
	}
	summary := strings.TrimSpace(answer.Summary)
	if summary == "" {
		return models.LessonContent{}, errors.New("lesson answer has no summary")
	}

	sections := answer.Lesson
	if len(sections) == 0 {
		sections = answer.Sections
	}
	if len(sections) == 0 {
		return models.LessonContent{}, errors.New("lesson answer has no sections")
	}
	for i := range sections {
		sections[i].Heading = strings.TrimSpace(sections[i].Heading)
		sections[i].Body = strings.TrimSpace(sections[i].Body)
		if sections[i].Heading == "" || sections[i].Body == "" {
			return models.LessonContent{}, fmt.Errorf("lesson section %d is empty", i+1)
		}
	}

	content := models.LessonContent{
		Day:      day,
		Title:    title,
		Summary:  summary,
		Sections: sections,
	}
	if err := validateQuiz(answer.Quiz); err != nil {
		return content, fmt.Errorf("%w: %v", errInvalidQuiz, err)
	}
	content.Quiz = answer.Quiz
	return content, nil
}

type quizAnswer struct {
	Quiz []models.QuizQuestion `json:"quiz"`
}

func parseQuiz(text string) ([]models.QuizQuestion, error) {
	var answer quizAnswer
	if err := decodeAnswer(text, &answer); err != nil {
		return nil, err
	}
	if err := validateQuiz(answer.Quiz); err != nil {
		return nil, err
	}
	return answer.Quiz, nil
}

// validateQuiz requires at least one question, each with a question text,
// exactly four non-empty options and an answer that is one of them
func validateQuiz(quiz []models.QuizQuestion) error {
	if len(quiz) == 0 {
		return errors.New("quiz is empty")
	}
	for i, q := range quiz {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("quiz question %d has no text", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("quiz question %d has %d options, want 4", i+1, len(q.Options))
		}
		if slices.ContainsFunc(q.Options, func(o string) bool { return strings.TrimSpace(o) == "" }) {
			return fmt.Errorf("quiz question %d has an empty option", i+1)
		}
		if !slices.Contains(q.Options, q.Answer) {
			return fmt.Errorf("quiz question %d answer is not one of its options", i+1)
		}
	}
	return nil
}

type preQuizAnswer struct {
	Questions []string `json:"questions"`
}

func parsePreQuiz(text string) ([]string, error) {
	var answer preQuizAnswer
	if err := decodeAnswer(text, &answer); err != nil {
		return nil, err
	}
	questions := make([]string, 0, len(answer.Questions))
	for _, q := range answer.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, errors.New("pre-quiz answer has no questions")
	}
	return questions, nil
}
