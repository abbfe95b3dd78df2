package chatws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/afrowave/api/internal/middleware"
	"github.com/afrowave/api/internal/service/insight"
	"github.com/afrowave/api/pkg/utils"
)

// Handler runs chat turns over a duplex websocket. Each inbound frame is
// one prompt; each outbound frame carries the full turn result, with the
// same session semantics as the REST chat endpoint.
type Handler struct {
	insights *insight.Service
	upgrader websocket.Upgrader
}

// New creates the websocket chat handler.
func New(insights *insight.Service) *Handler {
	return &Handler{
		insights: insights,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundFrame struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
}

type outboundFrame struct {
	Type      string              `json:"type"`
	Reply     *insight.ChatResult `json:"reply,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

// ServeHTTP upgrades the connection and relays turns until the client
// disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[chatws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[chatws] connection opened for user=%s", identity.UserID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[chatws] read failed: %v", err)
			}
			return
		}

		result, err := h.insights.Chat(r.Context(), identity.UserID, frame.Prompt, frame.SessionID)
		if err != nil {
			h.write(conn, outboundFrame{Type: "error", Error: err.Error()})
			continue
		}

		h.write(conn, outboundFrame{Type: "reply", Reply: &result})
	}
}

func (h *Handler) write(conn *websocket.Conn, frame outboundFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[chatws] write failed: %v", err)
	}
}
