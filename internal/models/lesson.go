package models

import "time"

// Section represents one content section of a lesson
type Section struct {
	Heading string `json:"section"`
	Body    string `json:"content"`
}

// QuizQuestion represents a multiple choice question with four options
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Lesson represents one day of a roadmap
type Lesson struct {
	ID        int            `json:"id"`
	Day       int            `json:"day"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Sections  []Section      `json:"lesson"`
	Quiz      []QuizQuestion `json:"quiz,omitempty"`
	Completed bool           `json:"completed"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
	UpdatedAt time.Time      `json:"updatedAt,omitzero"`
}

// IsGenerated reports whether the lesson content has already been generated.
// Generated lessons are never regenerated.
func (l *Lesson) IsGenerated() bool {
	return len(l.Sections) > 0
}

// LessonContent represents generated lesson content
type LessonContent struct {
	Day      int            `json:"day"`
	Title    string         `json:"title"`
	Summary  string         `json:"summary"`
	Sections []Section      `json:"lesson"`
	Quiz     []QuizQuestion `json:"quiz"`
}

// GenerateLessonRequest represents a request to generate a lesson by day and title
type GenerateLessonRequest struct {
	Day   int    `json:"day" example:"1"`
	Title string `json:"title" example:"Introduction to Volcanoes"`
	Topic string `json:"topic" example:"Volcanoes"`
}

// CompleteLessonResponse represents a response to a lesson completion request
type CompleteLessonResponse struct {
	Message   string `json:"message"`
	ID        int    `json:"id"`
	Completed bool   `json:"completed"`
}
