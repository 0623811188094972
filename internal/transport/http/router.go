package http

import (
	"encoding/json"
	"net/http"

	"devops-quiz/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter wires health, topic listing and the websocket endpoint.
func NewRouter(service *app.QuizService, ws *WSHandler, log *zap.Logger, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
		r.Get("/topics", func(w http.ResponseWriter, r *http.Request) {
			topics, err := service.Topics(r.Context())
			if err != nil {
				log.Error("list topics failed", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, errorPayload{Code: errorCode(err), Message: err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
		})
	})

	r.Get("/ws", ws.ServeWS)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
