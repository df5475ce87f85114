package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamehub-app/gamehub/internal/model"
)

// CookieName is the name of the session cookie
const CookieName = "session"

// ErrInvalidToken is returned for tokens that are malformed, expired, or
// signed with the wrong key
var ErrInvalidToken = errors.New("invalid session token")

// Manager issues and verifies signed session tokens. The token itself is the
// source of truth: there is no server-side session store. A client holding a
// valid token is Authenticated; everything else is Anonymous.
type Manager struct {
	secret   []byte
	duration time.Duration
}

// Config holds configuration for the session manager
type Config struct {
	// Secret signs session tokens. Must be provided; there is no default.
	Secret string
	// Duration is how long an issued token stays valid
	Duration time.Duration
}

// DefaultDuration is used when Config.Duration is zero
const DefaultDuration = 24 * time.Hour

// NewManager creates a session manager from config
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if cfg.Duration == 0 {
		cfg.Duration = DefaultDuration
	}
	return &Manager{
		secret:   []byte(cfg.Secret),
		duration: cfg.Duration,
	}, nil
}

// Issue signs a token carrying the given identity
func (m *Manager) Issue(identity model.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  int64(identity.UserID),
		"username": identity.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns the identity it carries.
// Returns ErrInvalidToken on any parse, signature, or expiry failure.
func (m *Manager) Verify(tokenString string) (model.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{
		UserID:   model.UserID(int64(userID)),
		Username: username,
	}, nil
}

// Establish transitions the client to Authenticated by setting the session
// cookie
func (m *Manager) Establish(w http.ResponseWriter, identity model.Identity) error {
	token, err := m.Issue(identity)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.duration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current reads the identity from the request's session cookie without
// contacting storage. A missing, tampered, or expired cookie is Anonymous.
func (m *Manager) Current(r *http.Request) (model.Identity, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return model.Identity{}, false
	}
	identity, err := m.Verify(cookie.Value)
	if err != nil {
		return model.Identity{}, false
	}
	return identity, true
}

// Clear transitions the client back to Anonymous. Idempotent.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
