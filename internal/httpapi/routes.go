package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/logging"
	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/ws"
)

func SetupRoutes(s *session.Session, gen *options.Service, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)
		r.Get("/current-options", CurrentOptions(s))
		r.Post("/generate-options", GenerateOptions(s, gen, logger))
		r.Post("/spin", Spin(s))
		r.Get("/wheel", Wheel(s))
	})
	r.Get("/ws", ws.Handler(s, logger))
	return r
}
