package chat

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	convoservice "github.com/coinbuddy/backend/internal/service/convo"
)

// WebSocketHandler runs one conversation per WebSocket connection: a
// session context is created on upgrade and discarded on close.
type WebSocketHandler struct {
	engine   *convoservice.Engine
	store    convoservice.Store
	greeting string
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the WebSocket chat handler. The greeting
// is sent once right after the session is established.
func NewWebSocketHandler(engine *convoservice.Engine, store convoservice.Store, greeting string) *WebSocketHandler {
	return &WebSocketHandler{
		engine:   engine,
		store:    store,
		greeting: greeting,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Text      string `json:"text,omitempty"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := h.store.Create()
	defer h.store.Delete(session.ID)
	log.Printf("[ws] session %s connected", session.ID)

	if err := conn.WriteJSON(outgoingMessage{Type: "session", SessionID: session.ID}); err != nil {
		log.Printf("[ws] session %s: write failed: %v", session.ID, err)
		return
	}
	if h.greeting != "" {
		if err := conn.WriteJSON(outgoingMessage{Type: "bot_message", Text: h.greeting}); err != nil {
			log.Printf("[ws] session %s: write failed: %v", session.ID, err)
			return
		}
	}

	// A single read loop per connection keeps message handling strictly
	// sequential for the session.
	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] session %s: read failed: %v", session.ID, err)
			} else {
				log.Printf("[ws] session %s disconnected", session.ID)
			}
			return
		}
		if in.Type != "user_message" {
			continue
		}

		replies, err := h.engine.Handle(r.Context(), session.ID, in.Text)
		if err != nil {
			log.Printf("[ws] session %s: handle failed: %v", session.ID, err)
			continue
		}
		for _, reply := range replies {
			if err := conn.WriteJSON(outgoingMessage{Type: "bot_message", Text: reply}); err != nil {
				log.Printf("[ws] session %s: write failed: %v", session.ID, err)
				return
			}
		}
	}
}
