package storage

import (
	"context"

	"github.com/gamehub-app/gamehub/internal/model"
)

// Storage defines the interface for data persistence.
//
// Uniqueness invariants (usernames, game names, one membership per
// (user, game) pair) are enforced by the implementation itself: callers may
// pre-check for friendlier errors, but the sentinel errors returned from the
// Create methods are the authoritative duplicate guard.
type Storage interface {
	// User operations
	// CreateUser assigns user.ID on success.
	// Returns model.ErrUsernameTaken if the username is already in use.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Game operations
	// CreateGame persists the game and a membership for the creating user as
	// a single atomic unit: either both records exist afterwards or neither.
	// Returns model.ErrGameNameTaken if the name is already in use.
	CreateGame(ctx context.Context, game *model.Game, creator model.UserID) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByName(ctx context.Context, name string) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	// DeleteGame removes the game and all memberships referencing it.
	DeleteGame(ctx context.Context, id model.GameID) error

	// Membership operations
	// CreateMembership assigns membership.ID on success.
	// Returns model.ErrAlreadyJoined if a membership already exists for the
	// (user, game) pair.
	CreateMembership(ctx context.Context, membership *model.Membership) error
	GetMembership(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Membership, error)
	ListGameMembers(ctx context.Context, gameID model.GameID) ([]*model.Membership, error)
	ListUserMemberships(ctx context.Context, userID model.UserID) ([]*model.Membership, error)

	// Role operations (reference data)
	CreateRole(ctx context.Context, role *model.Role) error
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
	ListRoles(ctx context.Context) ([]*model.Role, error)
}
