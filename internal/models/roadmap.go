package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// RoadmapDays is the number of days in every roadmap
const RoadmapDays = 14

const (
	// MaxTitleLength is the longest lesson or roadmap title that can be stored, in characters
	MaxTitleLength = 255
	// MaxTopicLength is the longest accepted topic, in characters.
	// Every generated day title for such a topic still fits MaxTitleLength.
	MaxTopicLength = 200
)

const roadmapTitleSuffix = " Roadmap"

// Roadmap represents a stored roadmap with its ordered lesson references
type Roadmap struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	LessonIDs []int     `json:"lessonIds"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Topic returns the topic the roadmap was created for
func (r *Roadmap) Topic() string {
	return TopicFromRoadmapTitle(r.Title)
}

// RoadmapTitle builds a roadmap title for a topic
func RoadmapTitle(topic string) string {
	return topic + roadmapTitleSuffix
}

// TruncateTitle shortens title to at most MaxTitleLength characters
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= MaxTitleLength {
		return title
	}
	return strings.TrimSpace(string([]rune(title)[:MaxTitleLength]))
}

// TopicFromRoadmapTitle strips the roadmap suffix from a title
func TopicFromRoadmapTitle(title string) string {
	return strings.TrimSuffix(title, roadmapTitleSuffix)
}

// SkeletonDay represents a single day title of a roadmap skeleton
type SkeletonDay struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
}

// Skeleton represents the day to title plan of a topic before lesson content is generated
type Skeleton struct {
	Topic string        `json:"topic"`
	Days  []SkeletonDay `json:"roadmap"`
}

// RoadmapDayItem represents a day in a roadmap view
type RoadmapDayItem struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	LessonID int    `json:"lessonId,omitempty"`
}

// RoadmapData represents the derived day plan of a roadmap
type RoadmapData struct {
	Topic   string           `json:"topic"`
	Roadmap []RoadmapDayItem `json:"roadmap"`
}

// RoadmapListItem represents a roadmap in list responses
type RoadmapListItem struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	RoadmapData RoadmapData `json:"roadmap_data"`
}

// RoadmapDetailResponse represents a roadmap with its resolved lessons
type RoadmapDetailResponse struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	RoadmapData RoadmapData `json:"roadmap_data"`
	Lessons     []Lesson    `json:"lessons"`
}

// CreateRoadmapRequest represents a request to create a roadmap
type CreateRoadmapRequest struct {
	Topic string `json:"topic" example:"Volcanoes"`
}

// PreQuizRequest represents a request for a diagnostic quiz on a topic
type PreQuizRequest struct {
	Topic string `json:"topic" example:"Volcanoes"`
}

// PreQuizResponse represents diagnostic questions asked before a roadmap starts
type PreQuizResponse struct {
	Topic     string   `json:"topic"`
	Questions []string `json:"questions"`
}
