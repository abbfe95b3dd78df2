package stream

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/afrowave/api/internal/middleware"
	chatModel "github.com/afrowave/api/internal/model/chat"
	aiService "github.com/afrowave/api/internal/service/ai"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
	"github.com/afrowave/api/pkg/utils"
)

// Handler relays generative chat responses over Server-Sent Events.
type Handler struct {
	aiSvc    *aiService.Service
	sessions *chatService.Service
	data     *dataset.Provider
}

// New creates the stream handler.
func New(aiSvc *aiService.Service, sessions *chatService.Service, data *dataset.Provider) *Handler {
	return &Handler{aiSvc: aiSvc, sessions: sessions, data: data}
}

// StreamEvent is one SSE frame of a streamed chat turn.
type StreamEvent struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ServeHTTP streams one chat turn: chunks as they arrive, then an end frame.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}
	sessionID := r.URL.Query().Get("sessionId")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()

	session, err := h.sessions.GetOrCreate(ctx, sessionID, identity.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	history := aiService.Window(session.Messages, aiService.HistoryWindow)

	if _, err := h.sessions.Append(ctx, session.ID, chatModel.Message{
		Role:    chatModel.RoleUser,
		Content: message,
	}); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	system := aiService.ChatSystemPrompt(h.data.Stats(), h.data.TopAfro(5))

	stream, err := h.aiSvc.Stream(ctx, system, history, message)
	if err != nil {
		log.Printf("[stream] failed to open AI stream: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "streaming failed", err.Error())
		return
	}
	defer stream.Close()

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, StreamEvent{Event: "start", SessionID: session.ID})

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("[stream] recv failed for session=%s: %v", session.ID, err)
			utils.SendSSEChunk(w, flusher, StreamEvent{Event: "error", SessionID: session.ID, Error: "generation failed"})
			return
		}

		if chunk.Content == "" {
			continue
		}
		full.WriteString(chunk.Content)
		utils.SendSSEChunk(w, flusher, StreamEvent{Event: "chunk", SessionID: session.ID, Content: chunk.Content})
	}

	if _, err := h.sessions.Append(ctx, session.ID, chatModel.Message{
		Role:    chatModel.RoleAssistant,
		Content: full.String(),
	}); err != nil {
		log.Printf("[stream] failed to save assistant message: %v", err)
	}

	utils.SendSSEChunk(w, flusher, StreamEvent{Event: "end", SessionID: session.ID, Finished: true})
}
