// Package chat exposes the conversation engine over REST and WebSocket.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	convoservice "github.com/coinbuddy/backend/internal/service/convo"
	"github.com/coinbuddy/backend/pkg/utils"
)

// Handler serves the REST chat endpoints.
type Handler struct {
	engine *convoservice.Engine
	store  convoservice.Store
}

// New creates the REST chat handler.
func New(engine *convoservice.Engine, store convoservice.Store) *Handler {
	return &Handler{engine: engine, store: store}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/messages", h.handleMessage)
}

// handleCreateSession provisions a fresh conversation context.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.store.Create()
	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleMessage runs one utterance through the engine and returns the
// bot replies synchronously.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	replies, err := h.engine.Handle(r.Context(), payload.SessionID, payload.Text)
	if err != nil {
		if errors.Is(err, convoservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if replies == nil {
		replies = []string{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"replies": replies})
}
