package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/services/auth"
	"github.com/gamehub-app/gamehub/internal/session"
	"github.com/gamehub-app/gamehub/internal/web/middleware"
	"github.com/gamehub-app/gamehub/internal/web/templates"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := templates.RegisterData{
		PageData: templates.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
		FieldErrors: make(map[string]string),
	}
	templates.Render(w, http.StatusOK, "register", data)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, "", "Invalid form data", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		fieldErrors := make(map[string]string)
		switch {
		case errors.Is(err, auth.ErrUsernameRequired):
			fieldErrors["username"] = "Username is required"
		case errors.Is(err, auth.ErrPasswordTooShort):
			fieldErrors["password"] = "Password must be at least 8 characters"
		case errors.Is(err, model.ErrUsernameTaken):
			fieldErrors["username"] = "Username already taken"
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.renderRegisterError(w, username, "", fieldErrors)
		return
	}

	// No auto-login: send the new user to the login page
	middleware.SetFlash(w, "success", "Account created! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := templates.LoginData{
		PageData: templates.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	templates.Render(w, http.StatusOK, "login", data)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, "", "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.renderLoginError(w, username, "Invalid username or password")
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	identity := model.Identity{UserID: user.ID, Username: user.Username}
	if err := h.sessions.Establish(w, identity); err != nil {
		h.logger.Error("establishing session failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Welcome back, "+user.Username+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session unconditionally and redirects home
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, username, errorMsg string) {
	data := templates.LoginData{
		PageData: templates.PageData{
			Title: "Login",
		},
		Username: username,
		Error:    errorMsg,
	}
	templates.Render(w, http.StatusBadRequest, "login", data)
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, username, errorMsg string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := templates.RegisterData{
		PageData: templates.PageData{
			Title: "Register",
		},
		Username:    username,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	templates.Render(w, http.StatusBadRequest, "register", data)
}
