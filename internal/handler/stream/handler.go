// Package stream delivers bot replies over Server-Sent Events, for
// clients that cannot hold a WebSocket open.
package stream

import (
	"context"
	"fmt"
	"net/http"

	convoservice "github.com/coinbuddy/backend/internal/service/convo"
	"github.com/coinbuddy/backend/pkg/utils"
)

// Handler streams engine output for one utterance.
type Handler struct {
	engine *convoservice.Engine
}

// New creates a stream handler.
func New(engine *convoservice.Engine) *Handler {
	return &Handler{engine: engine}
}

// HandleStreamRequest runs the utterance through the engine and emits
// one SSE chunk per bot reply, then a terminal done event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	replies, err := h.engine.Handle(ctx, sessionID, userMessage)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", map[string]any{"error": err.Error()})
		return err
	}

	for _, reply := range replies {
		utils.SendSSEChunk(w, flusher, map[string]any{
			"event": "bot_message",
			"text":  reply,
		})
	}

	utils.SendSSEEvent(w, flusher, "done", map[string]any{"finished": true})
	return nil
}
