package templates

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gamehub-app/gamehub/internal/model"
)

//go:embed *.tmpl
var files embed.FS

// pages maps page name to its parsed template set (layout + page)
var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "login", "register", "dashboard"} {
		pages[name] = template.Must(template.ParseFS(files, "layout.tmpl", name+".tmpl"))
	}
}

// FlashMessage is a one-shot notification shown after a redirect
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is the data common to all pages
type PageData struct {
	Title    string
	Identity *model.Identity
	Flash    *FlashMessage
}

// HomeData is the data for the home page
type HomeData struct {
	PageData
}

// LoginData is the data for the login page
type LoginData struct {
	PageData
	Username string
	Error    string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	PageData
	Username    string
	Error       string
	FieldErrors map[string]string
}

// DashboardGame is one row of the dashboard game list
type DashboardGame struct {
	ID     model.GameID
	Name   string
	Joined bool
}

// DashboardData is the data for the dashboard page
type DashboardData struct {
	PageData
	Games []DashboardGame
	Error string
}

// Render writes the named page with the given status code. The template is
// executed into a buffer first so an execution error yields a clean 500
// instead of a half-written page.
func Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := pages[name]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
