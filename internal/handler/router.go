/*
Package handler provides the HTTP handlers and routing setup for the bot's
status API.

This file defines the main Router, applying necessary middleware like logging,
CORS, and IP-based rate limiting before delegating requests to the status
handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"jumpinbot/internal/pkg/limiter"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/resp"
)

const (
	SayRate  = 0.5
	SayBurst = 3
)

// Router sets up the status API routing table (chi.Router).
// It initializes the IP-based rate limiter for the say endpoint, configures
// CORS, and applies global middleware.
func Router(deps *AppDeps) http.Handler {
	sayLimiter := limiter.NewKeyedLimiter(rate.Limit(SayRate), SayBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "JumpIn Bot",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/status", HandleStatus(deps))

		api.Route("/room", func(room chi.Router) {
			room.Get("/users", HandleRoomUsers(deps))
			room.Get("/banlist", HandleRoomBanlist(deps))

			rateLimitedSayHandler := sayLimiter.Middleware(HandleSay(deps))
			room.Post("/say", http.HandlerFunc(rateLimitedSayHandler.ServeHTTP))
		})
	})

	return r
}
