package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/services/game"
	"github.com/gamehub-app/gamehub/internal/web/middleware"
	"github.com/gamehub-app/gamehub/internal/web/templates"
)

// GamesHandler handles game creation and joining
type GamesHandler struct {
	games  *game.Controller
	logger *slog.Logger
}

// NewGamesHandler creates a new GamesHandler
func NewGamesHandler(games *game.Controller, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		games:  games,
		logger: logger,
	}
}

// Create handles the create-game form submission
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderDashboardError(w, r, "Invalid form data")
		return
	}
	name := r.FormValue("name")

	created, err := h.games.Create(r.Context(), identity.UserID, name)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNameRequired):
			h.renderDashboardError(w, r, "Game name is required")
		case errors.Is(err, model.ErrGameNameTaken):
			h.renderDashboardError(w, r, "A game with that name already exists")
		default:
			h.logger.Error("creating game failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	middleware.SetFlash(w, "success", "Created "+created.Name)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Join handles joining a game by id
func (h *GamesHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	_, err = h.games.Join(r.Context(), identity.UserID, model.GameID(id))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrGameNotFound):
			http.Error(w, "Game not found", http.StatusNotFound)
		case errors.Is(err, model.ErrAlreadyJoined):
			h.renderDashboardError(w, r, "You have already joined this game")
		default:
			h.logger.Error("joining game failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	middleware.SetFlash(w, "success", "Joined the game")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// renderDashboardError re-renders the dashboard with an inline error and a
// 400 status so the user keeps their context
func (h *GamesHandler) renderDashboardError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	identity := middleware.GetIdentity(r.Context())

	games, err := h.games.List(r.Context())
	if err != nil {
		h.logger.Error("listing games failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	joined, err := h.games.MemberGameIDs(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("listing memberships failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rows := make([]templates.DashboardGame, 0, len(games))
	for _, g := range games {
		rows = append(rows, templates.DashboardGame{
			ID:     g.ID,
			Name:   g.Name,
			Joined: joined[g.ID],
		})
	}

	data := templates.DashboardData{
		PageData: templates.PageData{
			Title:    "Dashboard",
			Identity: identity,
		},
		Games: rows,
		Error: errorMsg,
	}
	templates.Render(w, http.StatusBadRequest, "dashboard", data)
}
