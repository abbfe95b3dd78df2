package data

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	datasetModel "github.com/afrowave/api/internal/model/dataset"
	"github.com/afrowave/api/internal/service/dataset"
	"github.com/afrowave/api/pkg/utils"
)

const defaultTopN = 10

// Handler serves the raw dataset views.
type Handler struct {
	data *dataset.Provider
}

// New creates the data handler.
func New(data *dataset.Provider) *Handler {
	return &Handler{data: data}
}

// RegisterRoutes registers the dataset routes. The limit segment is
// optional on the top-N endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/data/stats", h.handleStats)
	r.Get("/data/top-afro", h.handleTopAfro)
	r.Get("/data/top-afro/{limit}", h.handleTopAfro)
	r.Get("/data/top-youtube", h.handleTopYouTube)
	r.Get("/data/top-youtube/{limit}", h.handleTopYouTube)
	r.Get("/search/afro/{artist}", h.handleSearchAfro)
	r.Get("/search/youtube/{artist}", h.handleSearchYouTube)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.data.Stats())
}

type afroTracksResponse struct {
	Count  int                      `json:"count"`
	Tracks []datasetModel.AfroTrack `json:"tracks"`
}

type youtubeTracksResponse struct {
	Count  int                         `json:"count"`
	Tracks []datasetModel.YouTubeTrack `json:"tracks"`
}

func (h *Handler) handleTopAfro(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	tracks := h.data.TopAfro(limit)
	utils.RespondJSON(w, http.StatusOK, afroTracksResponse{Count: len(tracks), Tracks: tracks})
}

func (h *Handler) handleTopYouTube(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	tracks := h.data.TopYouTube(limit)
	utils.RespondJSON(w, http.StatusOK, youtubeTracksResponse{Count: len(tracks), Tracks: tracks})
}

func (h *Handler) handleSearchAfro(w http.ResponseWriter, r *http.Request) {
	artist := chi.URLParam(r, "artist")
	tracks := h.data.SearchAfro(artist)
	if len(tracks) == 0 {
		utils.RespondError(w, http.StatusNotFound, "no tracks found for artist")
		return
	}
	utils.RespondJSON(w, http.StatusOK, afroTracksResponse{Count: len(tracks), Tracks: tracks})
}

func (h *Handler) handleSearchYouTube(w http.ResponseWriter, r *http.Request) {
	artist := chi.URLParam(r, "artist")
	tracks := h.data.SearchYouTube(artist)
	if len(tracks) == 0 {
		utils.RespondError(w, http.StatusNotFound, "no tracks found for artist")
		return
	}
	utils.RespondJSON(w, http.StatusOK, youtubeTracksResponse{Count: len(tracks), Tracks: tracks})
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "limit")
	if raw == "" {
		return defaultTopN, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		utils.RespondError(w, http.StatusBadRequest, "invalid limit")
		return 0, false
	}
	return limit, true
}
