/*
Package handler provides the HTTP and WebSocket surface of the Parlor server.

This file defines the main Router, applying middleware (request id, logging,
CORS, recovery, rate limiting) before delegating to the API and WebSocket
handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"parlor/internal/pkg/limiter"
	"parlor/internal/pkg/logx"
	"parlor/internal/pkg/resp"
)

const (
	// CreateRate and CreateBurst bound room creation per IP.
	CreateRate  = 0.05
	CreateBurst = 2

	// JoinRate and JoinBurst bound WebSocket connects per IP.
	JoinRate  = 0.2
	JoinBurst = 5
)

// Router builds the application's chi routing table.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "Parlor Chat Server",
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/chat/create", createLimiter.Middleware(HandleCreateRoom(deps)).ServeHTTP)
		api.Get("/rooms", HandleListRooms(deps))
		api.Get("/rooms/{code}", HandleRoomDetail(deps))
	})

	r.Get("/ws/{code}", HandleWebSocket(wsUpgrader, joinLimiter, deps))

	return r
}
