package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/models"
)

type roadmapRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoadmapRepository creates a new instance of the RoadmapRepository interface
func NewRoadmapRepository(db *sql.DB, logger *zap.Logger) *roadmapRepository {
	return &roadmapRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a roadmap and its ordered lesson references in one transaction
func (r *roadmapRepository) Create(ctx context.Context, title string, lessonIDs []int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "INSERT INTO roadmaps (title) VALUES (?)", title)
	if err != nil {
		r.logger.Error("failed to insert roadmap", zap.Error(err), zap.String("title", title))
		return 0, fmt.Errorf("failed to insert roadmap: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get roadmap id: %w", err)
	}

	if len(lessonIDs) > 0 {
		values := make([]string, 0, len(lessonIDs))
		args := make([]any, 0, len(lessonIDs)*3)
		for position, lessonID := range lessonIDs {
			values = append(values, "(?, ?, ?)")
			args = append(args, id, position, lessonID)
		}
		query := "INSERT INTO roadmap_lessons (roadmap_id, position, lesson_id) VALUES " + strings.Join(values, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to insert roadmap lessons", zap.Error(err), zap.Int64("roadmap_id", id))
			return 0, fmt.Errorf("failed to insert roadmap lessons: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit roadmap", zap.Error(err))
		return 0, fmt.Errorf("failed to commit roadmap: %w", err)
	}

	return int(id), nil
}

// GetAll retrieves roadmaps ordered by title together with their lesson references.
// A non-empty titleFilter keeps roadmaps whose title contains it, ignoring case.
func (r *roadmapRepository) GetAll(ctx context.Context, titleFilter string) ([]models.Roadmap, error) {
	query := `
		SELECT r.id, r.title, r.created_at, rl.lesson_id
		FROM roadmaps r
		LEFT JOIN roadmap_lessons rl ON rl.roadmap_id = r.id
	`
	var args []any
	if titleFilter != "" {
		query += " WHERE LOWER(r.title) LIKE ?"
		args = append(args, "%"+escapeLike(strings.ToLower(titleFilter))+"%")
	}
	query += " ORDER BY r.title, r.id, rl.position"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query roadmaps", zap.Error(err))
		return nil, fmt.Errorf("failed to query roadmaps: %w", err)
	}
	defer rows.Close()

	roadmaps := []models.Roadmap{}
	for rows.Next() {
		var roadmap models.Roadmap
		var lessonID sql.NullInt64
		if err := rows.Scan(&roadmap.ID, &roadmap.Title, &roadmap.CreatedAt, &lessonID); err != nil {
			r.logger.Error("failed to scan roadmap", zap.Error(err))
			return nil, fmt.Errorf("failed to scan roadmap: %w", err)
		}

		// Rows of one roadmap are adjacent because of the ordering
		if n := len(roadmaps); n == 0 || roadmaps[n-1].ID != roadmap.ID {
			roadmap.LessonIDs = []int{}
			roadmaps = append(roadmaps, roadmap)
		}
		if lessonID.Valid {
			last := &roadmaps[len(roadmaps)-1]
			last.LessonIDs = append(last.LessonIDs, int(lessonID.Int64))
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return roadmaps, nil
}

// GetByID retrieves a roadmap and its ordered lesson references
func (r *roadmapRepository) GetByID(ctx context.Context, id int) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := r.db.QueryRowContext(ctx, "SELECT id, title, created_at FROM roadmaps WHERE id = ?", id).
		Scan(&roadmap.ID, &roadmap.Title, &roadmap.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("roadmap not found")
		}
		r.logger.Error("failed to query roadmap by id", zap.Error(err), zap.Int("roadmap_id", id))
		return nil, fmt.Errorf("failed to query roadmap: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT lesson_id FROM roadmap_lessons WHERE roadmap_id = ? ORDER BY position", id)
	if err != nil {
		r.logger.Error("failed to query roadmap lessons", zap.Error(err), zap.Int("roadmap_id", id))
		return nil, fmt.Errorf("failed to query roadmap lessons: %w", err)
	}
	defer rows.Close()

	roadmap.LessonIDs = []int{}
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap lesson: %w", err)
		}
		roadmap.LessonIDs = append(roadmap.LessonIDs, lessonID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &roadmap, nil
}

// FindTitleByLessonID returns the title of the oldest roadmap referencing the lesson
func (r *roadmapRepository) FindTitleByLessonID(ctx context.Context, lessonID int) (string, error) {
	query := `
		SELECT r.title
		FROM roadmaps r
		JOIN roadmap_lessons rl ON rl.roadmap_id = r.id
		WHERE rl.lesson_id = ?
		ORDER BY r.id
		LIMIT 1
	`
	var title string
	if err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("roadmap not found")
		}
		r.logger.Error("failed to query roadmap by lesson", zap.Error(err), zap.Int("lesson_id", lessonID))
		return "", fmt.Errorf("failed to query roadmap by lesson: %w", err)
	}
	return title, nil
}

// escapeLike escapes the LIKE wildcards of s using the default backslash escape
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
