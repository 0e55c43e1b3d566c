// Package http assembles the chi router for the API surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/handlers"
)

// NewRouter wires all HTTP and websocket endpoints.
func NewRouter(roomHandler *handlers.RoomHandler, wsHandler *handlers.WebSocketHandler, ttsHandler *handlers.TTSHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/api/v1/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1/room", func(r chi.Router) {
		r.Get("/", roomHandler.Get)
		r.Get("/ws", wsHandler.HandleWebSocket)
	})

	r.Post("/api/v1/tts", ttsHandler.Synthesize)

	return r
}
