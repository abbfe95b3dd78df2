package predict

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/middleware"
	chatModel "github.com/afrowave/api/internal/model/chat"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
	"github.com/afrowave/api/internal/service/insight"
	"github.com/afrowave/api/pkg/utils"
)

const defaultHistoryLimit = 20

// Handler serves the AI prediction and chat surface.
type Handler struct {
	insights *insight.Service
	sessions *chatService.Service
}

// New creates the predict handler.
func New(insights *insight.Service, sessions *chatService.Service) *Handler {
	return &Handler{insights: insights, sessions: sessions}
}

// RegisterRoutes registers the predict routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quick-stats", h.handleQuickStats)
	r.Get("/trends", h.handleTrends)
	r.Get("/artist", h.handleArtist)
	r.Get("/genre-trends", h.handleGenreTrends)
	r.Post("/chat", h.handleChat)
	r.Get("/chat/history", h.handleChatHistory)
	r.Delete("/chat/session", h.handleDeleteSession)
}

func (h *Handler) handleQuickStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.insights.QuickStats())
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	includeRaw := query.Get("includeRawResponse") == "true"

	trends, err := h.insights.Trends(r.Context(), limit, includeRaw)
	if err != nil {
		log.Printf("[predict] trends failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "trend analysis failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, trends)
}

func (h *Handler) handleArtist(w http.ResponseWriter, r *http.Request) {
	artist := r.URL.Query().Get("artist")
	if artist == "" {
		utils.RespondError(w, http.StatusBadRequest, "artist query parameter is required")
		return
	}

	result, err := h.insights.Artist(r.Context(), artist)
	if err != nil {
		if errors.Is(err, insight.ErrArtistNotFound) {
			utils.RespondError(w, http.StatusNotFound, "artist not found in dataset")
			return
		}
		log.Printf("[predict] artist analysis failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "artist analysis failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGenreTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := dataset.TrackFilter{}
	var parseErr error
	filter.MinEnergy, parseErr = parseOptionalFloat(query.Get("minEnergy"), parseErr)
	filter.MaxEnergy, parseErr = parseOptionalFloat(query.Get("maxEnergy"), parseErr)
	filter.MinDanceability, parseErr = parseOptionalFloat(query.Get("minDanceability"), parseErr)
	filter.MaxDanceability, parseErr = parseOptionalFloat(query.Get("maxDanceability"), parseErr)
	filter.MinTempo, parseErr = parseOptionalFloat(query.Get("minTempo"), parseErr)
	filter.MaxTempo, parseErr = parseOptionalFloat(query.Get("maxTempo"), parseErr)
	if parseErr != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid filter value")
		return
	}

	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	result, err := h.insights.GenreTrends(r.Context(), filter, limit)
	if err != nil {
		if errors.Is(err, insight.ErrNoMatches) {
			utils.RespondError(w, http.StatusNotFound, "no tracks match the filter")
			return
		}
		log.Printf("[predict] genre trends failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "genre trend analysis failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

type chatRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.insights.Chat(r.Context(), identity.UserID, payload.Prompt, payload.SessionID)
	if err != nil {
		if errors.Is(err, insight.ErrPromptRequired) {
			utils.RespondError(w, http.StatusBadRequest, "prompt is required")
			return
		}
		log.Printf("[predict] chat turn failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "chat failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

type transcriptResponse struct {
	SessionID string              `json:"sessionId"`
	Messages  []chatModel.Message `json:"messages"`
}

type sessionListResponse struct {
	Sessions []chatModel.Summary `json:"sessions"`
}

// handleChatHistory returns one owned transcript when sessionId is given,
// otherwise the caller's session summaries.
func (h *Handler) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	query := r.URL.Query()
	sessionID := query.Get("sessionId")

	if sessionID != "" {
		messages, err := h.sessions.Transcript(r.Context(), sessionID, identity.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondJSON(w, http.StatusOK, transcriptResponse{SessionID: sessionID, Messages: messages})
		return
	}

	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	summaries, err := h.sessions.List(r.Context(), identity.UserID, limit)
	if err != nil {
		log.Printf("[predict] session list failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "failed to list sessions", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionListResponse{Sessions: summaries})
}

type deleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type deleteSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var payload deleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if err := h.sessions.Delete(r.Context(), payload.SessionID, identity.UserID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, deleteSessionResponse{Success: true, SessionID: payload.SessionID})
}

func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func parseOptionalFloat(raw string, prior error) (*float64, error) {
	if prior != nil {
		return nil, prior
	}
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &val, nil
}
