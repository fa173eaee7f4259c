package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/models"
)

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// GenerateByID fills in the content of a stored lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson. A lesson that already has content is returned unchanged.
	//
	// Returns the lesson and an error if any.
	GenerateByID(ctx context.Context, id int) (*models.Lesson, error)
	// GenerateByDayTitle returns the lesson with the given day and title, generating it when needed
	//
	// "ctx" is the context for the request.
	// "req" carries the day, the title and an optional topic.
	//
	// Returns the lesson and an error if any.
	GenerateByDayTitle(ctx context.Context, req models.GenerateLessonRequest) (*models.Lesson, error)
	// GenerateQuiz fills in the quiz of a stored lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson. A lesson that already has a quiz is returned unchanged.
	//
	// Returns the lesson and an error if any.
	GenerateQuiz(ctx context.Context, id int) (*models.Lesson, error)
	// GetLesson retrieves a lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetLesson(ctx context.Context, id int) (*models.Lesson, error)
	// ListLessons retrieves all lessons
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of lessons and an error if any.
	ListLessons(ctx context.Context) ([]models.Lesson, error)
	// MarkCompleted marks a lesson as completed
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the completion result and an error if any.
	MarkCompleted(ctx context.Context, id int) (*models.CompleteLessonResponse, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/lessons", func(r chi.Router) {
		r.Get("/", h.ListLessons)
		r.Post("/generate", h.GenerateByDayTitle)
		r.Post("/generate/{id}", h.GenerateByID)
		r.Post("/quiz/{id}", h.GenerateQuiz)
		r.Post("/complete/{id}", h.MarkCompleted)
		r.Get("/{id}", h.GetLesson)
	})
}

// ListLessons handles GET /api/lessons/
// @Summary List lessons
// @Description Get all lessons ordered by ID
// @Tags lessons
// @Accept json
// @Produce json
// @Success 200 {array} models.Lesson
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/ [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		h.RespondServiceError(w, "list lessons", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GenerateByDayTitle handles POST /api/lessons/generate
// @Summary Generate a lesson by day and title
// @Description Return the lesson with the given day and title, generating its content or creating it when needed
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.GenerateLessonRequest true "Lesson day, title and topic"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/generate [post]
func (h *LessonHandler) GenerateByDayTitle(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, "decode lesson request", err)
		return
	}

	lesson, err := h.service.GenerateByDayTitle(r.Context(), req)
	if err != nil {
		h.RespondServiceError(w, "generate lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// GenerateByID handles POST /api/lessons/generate/{id}
// @Summary Generate a stored lesson
// @Description Fill in the content of a lesson created with its roadmap. Generated lessons are returned unchanged
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/generate/{id} [post]
func (h *LessonHandler) GenerateByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.RespondServiceError(w, "parse lesson id", err)
		return
	}

	lesson, err := h.service.GenerateByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, "generate lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// GenerateQuiz handles POST /api/lessons/quiz/{id}
// @Summary Generate a lesson quiz
// @Description Fill in the quiz of a lesson. Lessons that already have a quiz are returned unchanged
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/quiz/{id} [post]
func (h *LessonHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.RespondServiceError(w, "parse lesson id", err)
		return
	}

	lesson, err := h.service.GenerateQuiz(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, "generate quiz", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// MarkCompleted handles POST /api/lessons/complete/{id}
// @Summary Complete a lesson
// @Description Mark a lesson as completed. Completing a completed lesson succeeds
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.CompleteLessonResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/complete/{id} [post]
func (h *LessonHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.RespondServiceError(w, "parse lesson id", err)
		return
	}

	resp, err := h.service.MarkCompleted(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, "complete lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetLesson handles GET /api/lessons/{id}
// @Summary Get lesson by ID
// @Description Get a lesson with its sections, quiz and completion flag
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.RespondServiceError(w, "parse lesson id", err)
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, "get lesson", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}
