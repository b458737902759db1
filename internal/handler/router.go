package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coinbuddy/backend/internal/handler/chat"
	"github.com/coinbuddy/backend/internal/handler/stream"
	middlewarePkg "github.com/coinbuddy/backend/internal/middleware"
	"github.com/coinbuddy/backend/internal/model/intent"
	convoservice "github.com/coinbuddy/backend/internal/service/convo"
	"github.com/coinbuddy/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the conversation engine.
func NewRouter(store convoservice.Store, engine *convoservice.Engine, intents *intent.Table) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	var greeting string
	if def, ok := intents.Find("greeting"); ok {
		greeting = def.Answers[0]
	}

	chatHandler := chat.New(engine, store)
	wsHandler := chat.NewWebSocketHandler(engine, store, greeting)
	streamHandler := stream.New(engine)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
