package prompt

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/service/ai"
	"github.com/afrowave/api/pkg/utils"
)

// Handler forwards raw prompts to the generative gateway.
type Handler struct {
	gen ai.Generator
}

// New creates the prompt handler.
func New(gen ai.Generator) *Handler {
	return &Handler{gen: gen}
}

// RegisterRoutes registers the raw prompt route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/prompt", h.handlePrompt)
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type promptResponse struct {
	Response string `json:"response"`
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var payload promptRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Prompt) == "" {
		utils.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	response, err := h.gen.Complete(r.Context(), payload.Prompt)
	if err != nil {
		log.Printf("[ai] prompt completion failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "completion failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, promptResponse{Response: response})
}
