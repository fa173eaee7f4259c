package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/models"
)

const lessonColumns = "id, day, title, summary, sections, quiz, completed, created_at, updated_at"

// lessonIDBatchSize bounds the placeholders of one IN query, MySQL allows 65535 per statement
const lessonIDBatchSize = 1000

type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new instance of the LessonRepository interface
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a lesson and returns its ID
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int, error) {
	sections, quiz, err := encodeLessonContent(lesson.Sections, lesson.Quiz)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO lessons (day, title, summary, sections, quiz, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, lesson.Day, lesson.Title, lesson.Summary, sections, quiz, lesson.Completed)
	if err != nil {
		r.logger.Error("failed to insert lesson", zap.Error(err), zap.Int("day", lesson.Day))
		return 0, fmt.Errorf("failed to insert lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get lesson id: %w", err)
	}
	return int(id), nil
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := "SELECT " + lessonColumns + " FROM lessons WHERE id = ?"

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("lesson not found")
		}
		r.logger.Error("failed to query lesson by id", zap.Error(err), zap.Int("lesson_id", id))
		return nil, fmt.Errorf("failed to query lesson: %w", err)
	}
	return lesson, nil
}

// GetByIDs retrieves the lessons with the given IDs ordered by ID.
// IDs with no matching lesson are silently absent from the result.
// Large ID sets are queried in batches of lessonIDBatchSize.
func (r *lessonRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Lesson, error) {
	if len(ids) == 0 {
		return []models.Lesson{}, nil
	}

	// Sorted batches keep the combined result ordered by ID
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))

	lessons := make([]models.Lesson, 0, len(ids))
	for batch := range slices.Chunk(ids, lessonIDBatchSize) {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(batch)), ", ")
		query := fmt.Sprintf("SELECT %s FROM lessons WHERE id IN (%s) ORDER BY id", lessonColumns, placeholders)

		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}

		found, err := r.queryLessons(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, found...)
	}
	return lessons, nil
}

// GetByDayAndTitle retrieves the oldest lesson with the given day and title
func (r *lessonRepository) GetByDayAndTitle(ctx context.Context, day int, title string) (*models.Lesson, error) {
	query := "SELECT " + lessonColumns + " FROM lessons WHERE day = ? AND title = ? ORDER BY id LIMIT 1"

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, day, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("lesson not found")
		}
		r.logger.Error("failed to query lesson by day and title", zap.Error(err), zap.Int("day", day))
		return nil, fmt.Errorf("failed to query lesson: %w", err)
	}
	return lesson, nil
}

// GetAll retrieves all lessons ordered by ID
func (r *lessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	return r.queryLessons(ctx, "SELECT "+lessonColumns+" FROM lessons ORDER BY id")
}

// GetPendingIDs retrieves up to limit IDs of lessons whose content has not been generated, oldest first
func (r *lessonRepository) GetPendingIDs(ctx context.Context, limit int) ([]int, error) {
	query := "SELECT id FROM lessons WHERE JSON_LENGTH(sections) = 0 ORDER BY id LIMIT ?"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query pending lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to query pending lessons: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ids, nil
}

// FillContent stores the summary, sections and quiz of a lesson that has no content yet.
// The write is skipped when the lesson already has sections, so content returned to
// one caller is never replaced by a concurrent generation.
// Returns false when nothing was written because the lesson has content or does not exist.
func (r *lessonRepository) FillContent(ctx context.Context, id int, content models.LessonContent) (bool, error) {
	sections, quiz, err := encodeLessonContent(content.Sections, content.Quiz)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE lessons
		SET summary = ?, sections = ?, quiz = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND JSON_LENGTH(sections) = 0
	`
	result, err := r.db.ExecContext(ctx, query, content.Summary, sections, quiz, id)
	if err != nil {
		r.logger.Error("failed to update lesson content", zap.Error(err), zap.Int("lesson_id", id))
		return false, fmt.Errorf("failed to update lesson content: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateQuiz replaces the quiz of a lesson
func (r *lessonRepository) UpdateQuiz(ctx context.Context, id int, quiz []models.QuizQuestion) error {
	_, encoded, err := encodeLessonContent(nil, quiz)
	if err != nil {
		return err
	}

	query := "UPDATE lessons SET quiz = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	return r.execUpdate(ctx, "quiz", id, query, encoded, id)
}

// MarkCompleted sets the completed flag of a lesson. Completing a completed lesson succeeds.
func (r *lessonRepository) MarkCompleted(ctx context.Context, id int) error {
	query := "UPDATE lessons SET completed = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	return r.execUpdate(ctx, "completion", id, query, id)
}

func (r *lessonRepository) execUpdate(ctx context.Context, what string, id int, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update lesson "+what, zap.Error(err), zap.Int("lesson_id", id))
		return fmt.Errorf("failed to update lesson %s: %w", what, err)
	}

	// The DSN sets clientFoundRows, so this counts matched rows
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("lesson not found")
	}
	return nil
}

func (r *lessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]models.Lesson, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			r.logger.Error("failed to scan lesson", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (*models.Lesson, error) {
	var lesson models.Lesson
	var sections, quiz []byte
	if err := row.Scan(
		&lesson.ID,
		&lesson.Day,
		&lesson.Title,
		&lesson.Summary,
		&sections,
		&quiz,
		&lesson.Completed,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &lesson.Sections); err != nil {
			return nil, fmt.Errorf("failed to decode lesson sections: %w", err)
		}
	}
	if len(quiz) > 0 {
		if err := json.Unmarshal(quiz, &lesson.Quiz); err != nil {
			return nil, fmt.Errorf("failed to decode lesson quiz: %w", err)
		}
	}
	if lesson.Sections == nil {
		lesson.Sections = []models.Section{}
	}
	return &lesson, nil
}

// encodeLessonContent returns the JSON column values for sections and quiz.
// Sections are never NULL; an empty quiz is stored as NULL.
func encodeLessonContent(sections []models.Section, quiz []models.QuizQuestion) (string, any, error) {
	if sections == nil {
		sections = []models.Section{}
	}
	encodedSections, err := json.Marshal(sections)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode lesson sections: %w", err)
	}

	if len(quiz) == 0 {
		return string(encodedSections), nil, nil
	}
	encodedQuiz, err := json.Marshal(quiz)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode lesson quiz: %w", err)
	}
	return string(encodedSections), string(encodedQuiz), nil
}
