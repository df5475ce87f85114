package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gamehub-app/gamehub/internal/api/apierr"
	"github.com/gamehub-app/gamehub/internal/api/middleware"
	"github.com/gamehub-app/gamehub/internal/api/request"
	"github.com/gamehub-app/gamehub/internal/api/response"
	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/services/game"
)

// GamesHandler handles game listing, creation and joining over JSON
type GamesHandler struct {
	games *game.Controller
}

// NewGamesHandler creates a new GamesHandler
func NewGamesHandler(games *game.Controller) *GamesHandler {
	return &GamesHandler{games: games}
}

// List returns all games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Create creates a game owned by the caller
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	created, err := h.games.Create(r.Context(), identity.UserID, req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// Join adds the caller to a game
func (h *GamesHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		apierr.WriteError(w, model.ErrGameNotFound)
		return
	}

	if _, err := h.games.Join(r.Context(), identity.UserID, model.GameID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Members returns the memberships of a game
func (h *GamesHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		apierr.WriteError(w, model.ErrGameNotFound)
		return
	}

	if _, err := h.games.Get(r.Context(), model.GameID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	members, err := h.games.Members(r.Context(), model.GameID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.Membership, len(members))
	for i, m := range members {
		out[i] = response.MembershipFromModel(m)
	}
	response.JSON(w, http.StatusOK, map[string][]response.Membership{"members": out})
}
