package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dinolearn/backend/internal/models"
)

// RoadmapService is the interface that wraps methods for roadmap operations
type RoadmapService interface {
	// CreateRoadmap generates and stores a 14-day roadmap
	//
	// "ctx" is the context for the request.
	// "topic" is the subject of the roadmap. A blank topic is rejected as invalid input.
	//
	// Returns the created roadmap with its lessons and an error if any.
	CreateRoadmap(ctx context.Context, topic string) (*models.RoadmapDetailResponse, error)
	// ListRoadmaps retrieves roadmaps ordered by title
	//
	// "ctx" is the context for the request.
	// "titleFilter" keeps roadmaps whose title contains it, ignoring case. Empty means no filter.
	//
	// Returns a list of roadmaps and an error if any.
	ListRoadmaps(ctx context.Context, titleFilter string) ([]models.RoadmapListItem, error)
	// GetRoadmap retrieves a roadmap with its lessons
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the roadmap.
	//
	// Returns the roadmap and an error if any.
	GetRoadmap(ctx context.Context, id int) (*models.RoadmapDetailResponse, error)
	// PreQuiz generates diagnostic questions for a topic
	//
	// "ctx" is the context for the request.
	// "topic" is the subject of the upcoming roadmap.
	//
	// Returns the questions and an error if any.
	PreQuiz(ctx context.Context, topic string) (*models.PreQuizResponse, error)
}

// RoadmapHandler handles HTTP requests for roadmaps
type RoadmapHandler struct {
	BaseHandler
	service RoadmapService
}

// NewRoadmapHandler creates a new roadmap handler
func NewRoadmapHandler(svc RoadmapService, logger *zap.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all roadmap handler routes
func (h *RoadmapHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/roadmaps", func(r chi.Router) {
		r.Post("/", h.CreateRoadmap)
		r.Get("/", h.ListRoadmaps)
		r.Post("/prequiz", h.PreQuiz)
		r.Get("/{id}", h.GetRoadmap)
	})
}

// CreateRoadmap handles POST /api/roadmaps/
// @Summary Create a roadmap
// @Description Generate a 14-day roadmap for a topic and store an empty lesson for every day
// @Tags roadmaps
// @Accept json
// @Produce json
// @Param request body models.CreateRoadmapRequest true "Roadmap topic"
// @Success 200 {object} models.RoadmapDetailResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/roadmaps/ [post]
func (h *RoadmapHandler) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoadmapRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, "decode roadmap request", err)
		return
	}

	roadmap, err := h.service.CreateRoadmap(r.Context(), req.Topic)
	if err != nil {
		h.RespondServiceError(w, "create roadmap", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roadmap)
}

// ListRoadmaps handles GET /api/roadmaps/
// @Summary List roadmaps
// @Description Get all roadmaps ordered by title, optionally filtered by a case-insensitive title substring
// @Tags roadmaps
// @Accept json
// @Produce json
// @Param title query string false "Title substring"
// @Success 200 {array} models.RoadmapListItem
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/roadmaps/ [get]
func (h *RoadmapHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	roadmaps, err := h.service.ListRoadmaps(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		h.RespondServiceError(w, "list roadmaps", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roadmaps)
}

// GetRoadmap handles GET /api/roadmaps/{id}
// @Summary Get roadmap by ID
// @Description Get a roadmap with its day plan and lessons
// @Tags roadmaps
// @Accept json
// @Produce json
// @Param id path int true "Roadmap ID"
// @Success 200 {object} models.RoadmapDetailResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Roadmap not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/roadmaps/{id} [get]
func (h *RoadmapHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.RespondServiceError(w, "parse roadmap id", err)
		return
	}

	roadmap, err := h.service.GetRoadmap(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, "get roadmap", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roadmap)
}

// PreQuiz handles POST /api/roadmaps/prequiz
// @Summary Get a pre-quiz
// @Description Get open questions that show how much a learner already knows about a topic
// @Tags roadmaps
// @Accept json
// @Produce json
// @Param request body models.PreQuizRequest true "Roadmap topic"
// @Success 200 {object} models.PreQuizResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/roadmaps/prequiz [post]
func (h *RoadmapHandler) PreQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.PreQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, "decode pre-quiz request", err)
		return
	}

	resp, err := h.service.PreQuiz(r.Context(), req.Topic)
	if err != nil {
		h.RespondServiceError(w, "get pre-quiz", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
