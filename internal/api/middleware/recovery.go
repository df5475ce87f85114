package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gamehub-app/gamehub/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns a JSON error body on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`))
}

// Logging creates logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// RequestID creates request-id middleware for the API
func RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID()
}
