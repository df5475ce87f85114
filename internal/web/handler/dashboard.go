package handler

import (
	"log/slog"
	"net/http"

	"github.com/gamehub-app/gamehub/internal/services/game"
	"github.com/gamehub-app/gamehub/internal/web/middleware"
	"github.com/gamehub-app/gamehub/internal/web/templates"
)

// DashboardHandler renders the authenticated dashboard
type DashboardHandler struct {
	games  *game.Controller
	logger *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(games *game.Controller, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		games:  games,
		logger: logger,
	}
}

// Dashboard lists all games. The auth middleware guarantees an identity.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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
			Flash:    middleware.GetFlash(r.Context()),
		},
		Games: rows,
	}
	templates.Render(w, http.StatusOK, "dashboard", data)
}
