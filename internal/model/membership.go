package model

// MembershipID uniquely identifies a membership record
type MembershipID int64

// Membership links one user to one game, optionally tagged with a role.
// At most one membership exists per (user, game) pair. Memberships are owned
// by their game and are destroyed when the game is destroyed.
type Membership struct {
	ID     MembershipID `db:"id"`
	GameID GameID       `db:"game_id"`
	UserID UserID       `db:"user_id"`
	RoleID *RoleID      `db:"role_id"`
}
