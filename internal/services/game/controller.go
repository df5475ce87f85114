package game

import (
	"context"
	"errors"
	"strings"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/storage"
)

// ErrNameRequired is returned when creating a game with an empty name
var ErrNameRequired = errors.New("game name is required")

// Controller manages games and their memberships
type Controller struct {
	storage storage.Storage
}

// NewController creates a new game controller
func NewController(storage storage.Storage) *Controller {
	return &Controller{storage: storage}
}

// List returns all games, ordered by name
func (c *Controller) List(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// Get returns a single game by id
func (c *Controller) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// Create persists a new game and a membership for its creator. Both writes
// happen atomically: a game never exists without its creator's membership.
func (c *Controller) Create(ctx context.Context, creator model.UserID, name string) (*model.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// Pre-check for a friendlier error; storage enforces the unique name.
	_, err := c.storage.GetGameByName(ctx, name)
	if err == nil {
		return nil, model.ErrGameNameTaken
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	game := &model.Game{Name: name}
	if err := c.storage.CreateGame(ctx, game, creator); err != nil {
		return nil, err
	}
	return game, nil
}

// Join adds the user to an existing game.
// Returns model.ErrGameNotFound if the game does not exist and
// model.ErrAlreadyJoined if the user is already a member.
func (c *Controller) Join(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Membership, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	_, err := c.storage.GetMembership(ctx, userID, gameID)
	if err == nil {
		return nil, model.ErrAlreadyJoined
	}
	if !errors.Is(err, model.ErrMembershipNotFound) {
		return nil, err
	}

	membership := &model.Membership{
		GameID: gameID,
		UserID: userID,
	}
	if err := c.storage.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Delete removes a game; its memberships go with it
func (c *Controller) Delete(ctx context.Context, id model.GameID) error {
	return c.storage.DeleteGame(ctx, id)
}

// Members returns the memberships of a game
func (c *Controller) Members(ctx context.Context, gameID model.GameID) ([]*model.Membership, error) {
	return c.storage.ListGameMembers(ctx, gameID)
}

// MemberGameIDs returns the set of game ids the user belongs to,
// for dashboard display
func (c *Controller) MemberGameIDs(ctx context.Context, userID model.UserID) (map[model.GameID]bool, error) {
	memberships, err := c.storage.ListUserMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[model.GameID]bool, len(memberships))
	for _, m := range memberships {
		ids[m.GameID] = true
	}
	return ids, nil
}
