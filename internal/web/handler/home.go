package handler

import (
	"net/http"

	"github.com/gamehub-app/gamehub/internal/web/middleware"
	"github.com/gamehub-app/gamehub/internal/web/templates"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	flash := middleware.GetFlash(r.Context())

	data := templates.HomeData{
		PageData: templates.PageData{
			Title:    "Home",
			Identity: identity,
			Flash:    flash,
		},
	}

	templates.Render(w, http.StatusOK, "home", data)
}
