package response

import (
	"github.com/gamehub-app/gamehub/internal/model"
)

// User represents a user in API responses. The password hash never leaves
// the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       int64(u.ID),
		Username: u.Username,
	}
}

// AuthResponse is the response for a successful login
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Game represents a game in API responses
type Game struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:   int64(g.ID),
		Name: g.Name,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModel converts a slice of model games
func GameListFromModel(games []*model.Game) GameList {
	out := GameList{Games: make([]Game, len(games))}
	for i, g := range games {
		out.Games[i] = GameFromModel(g)
	}
	return out
}

// Membership represents a membership in API responses
type Membership struct {
	ID     int64  `json:"id"`
	GameID int64  `json:"game_id"`
	UserID int64  `json:"user_id"`
	RoleID *int64 `json:"role_id,omitempty"`
}

// MembershipFromModel converts a model.Membership
func MembershipFromModel(m *model.Membership) Membership {
	out := Membership{
		ID:     int64(m.ID),
		GameID: int64(m.GameID),
		UserID: int64(m.UserID),
	}
	if m.RoleID != nil {
		roleID := int64(*m.RoleID)
		out.RoleID = &roleID
	}
	return out
}
