package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gamehub-app/gamehub/internal/api/apierr"
	"github.com/gamehub-app/gamehub/internal/api/request"
	"github.com/gamehub-app/gamehub/internal/api/response"
	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/services/auth"
	"github.com/gamehub-app/gamehub/internal/session"
)

// AuthHandler handles registration and login over JSON
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Register creates an account. No token is issued; clients log in afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Login verifies credentials and returns a signed session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	token, err := h.sessions.Issue(model.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		User:  response.UserFromModel(user),
		Token: token,
	})
}
