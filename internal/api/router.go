package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehub-app/gamehub/internal/api/handler"
	"github.com/gamehub-app/gamehub/internal/api/middleware"
	"github.com/gamehub-app/gamehub/internal/services/auth"
	"github.com/gamehub-app/gamehub/internal/services/game"
	"github.com/gamehub-app/gamehub/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	Sessions       *session.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions)
	gamesHandler := handler.NewGamesHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Sessions)
	requestIDMiddleware := middleware.RequestID()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(requestIDMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gamesHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", gamesHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}/join", gamesHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/members", gamesHandler.Members).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
