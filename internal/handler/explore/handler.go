package explore

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/model/user"
	"github.com/afrowave/api/internal/repository"
	"github.com/afrowave/api/pkg/utils"
)

// Handler serves the creator directory surface.
type Handler struct {
	users repository.Users
}

// New creates the explore handler.
func New(users repository.Users) *Handler {
	return &Handler{users: users}
}

// RegisterRoutes registers the explore routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/creators", h.handleListCreators)
	r.Get("/creator-stats", h.handleCreatorStats)
}

type creatorsResponse struct {
	Creators []user.Profile `json:"creators"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
}

func (h *Handler) handleListCreators(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := parsePositiveInt(query.Get("page"), 1)
	limit := parsePositiveInt(query.Get("limit"), 20)
	name := query.Get("name")

	var creatorType user.CreatorType
	if raw := query.Get("creatorType"); raw != "" {
		parsed, err := user.ParseCreatorType(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid creatorType")
			return
		}
		creatorType = parsed
	}

	users, total, err := h.users.SearchByName(r.Context(), name, creatorType, page, limit)
	if err != nil {
		log.Printf("[explore] creator search failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "failed to search creators", err.Error())
		return
	}

	profiles := make([]user.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}

	utils.RespondJSON(w, http.StatusOK, creatorsResponse{
		Creators: profiles,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

type creatorStatsResponse struct {
	Counts map[user.CreatorType]int64 `json:"counts"`
	Total  int64                      `json:"total"`
}

func (h *Handler) handleCreatorStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.users.CreatorTypeCounts(r.Context())
	if err != nil {
		log.Printf("[explore] creator stats failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "failed to load creator stats", err.Error())
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	utils.RespondJSON(w, http.StatusOK, creatorStatsResponse{Counts: counts, Total: total})
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return fallback
	}
	return val
}
