package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	games         map[model.GameID]*model.Game
	gameNameIndex map[string]model.GameID
	memberships   map[model.MembershipID]*model.Membership
	memberIndex   map[memberKey]model.MembershipID
	roles         map[model.RoleID]*model.Role
	roleNameIndex map[string]model.RoleID

	nextUserID       int64
	nextGameID       int64
	nextMembershipID int64
	nextRoleID       int64
}

type memberKey struct {
	userID model.UserID
	gameID model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		games:         make(map[model.GameID]*model.Game),
		gameNameIndex: make(map[string]model.GameID),
		memberships:   make(map[model.MembershipID]*model.Membership),
		memberIndex:   make(map[memberKey]model.MembershipID),
		roles:         make(map[model.RoleID]*model.Role),
		roleNameIndex: make(map[string]model.RoleID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernameIndex[user.Username]; ok {
		return model.ErrUsernameTaken
	}
	s.nextUserID++
	user.ID = model.UserID(s.nextUserID)
	u := *user
	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game, creator model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gameNameIndex[game.Name]; ok {
		return model.ErrGameNameTaken
	}
	s.nextGameID++
	game.ID = model.GameID(s.nextGameID)
	g := *game
	s.games[g.ID] = &g
	s.gameNameIndex[g.Name] = g.ID

	// Membership for the creator; the lock makes both writes atomic.
	s.nextMembershipID++
	m := &model.Membership{
		ID:     model.MembershipID(s.nextMembershipID),
		GameID: g.ID,
		UserID: creator,
	}
	s.memberships[m.ID] = m
	s.memberIndex[memberKey{userID: creator, gameID: g.ID}] = m.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	return &g, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.gameNameIndex[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *s.games[id]
	return &g, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		g := *game
		games = append(games, &g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Name < games[j].Name
	})
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	delete(s.gameNameIndex, game.Name)
	delete(s.games, id)
	for mid, m := range s.memberships {
		if m.GameID == id {
			delete(s.memberIndex, memberKey{userID: m.UserID, gameID: id})
			delete(s.memberships, mid)
		}
	}
	return nil
}

// Membership operations

func (s *Storage) CreateMembership(ctx context.Context, membership *model.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{userID: membership.UserID, gameID: membership.GameID}
	if _, ok := s.memberIndex[key]; ok {
		return model.ErrAlreadyJoined
	}
	s.nextMembershipID++
	membership.ID = model.MembershipID(s.nextMembershipID)
	m := *membership
	s.memberships[m.ID] = &m
	s.memberIndex[key] = m.ID
	return nil
}

func (s *Storage) GetMembership(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.memberIndex[memberKey{userID: userID, gameID: gameID}]
	if !ok {
		return nil, model.ErrMembershipNotFound
	}
	m := *s.memberships[id]
	return &m, nil
}

func (s *Storage) ListGameMembers(ctx context.Context, gameID model.GameID) ([]*model.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []*model.Membership
	for _, membership := range s.memberships {
		if membership.GameID == gameID {
			m := *membership
			members = append(members, &m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].ID < members[j].ID
	})
	return members, nil
}

func (s *Storage) ListUserMemberships(ctx context.Context, userID model.UserID) ([]*model.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []*model.Membership
	for _, membership := range s.memberships {
		if membership.UserID == userID {
			m := *membership
			members = append(members, &m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].ID < members[j].ID
	})
	return members, nil
}

// Role operations

func (s *Storage) CreateRole(ctx context.Context, role *model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roleNameIndex[role.Name]; ok {
		return model.ErrRoleNameTaken
	}
	s.nextRoleID++
	role.ID = model.RoleID(s.nextRoleID)
	r := *role
	s.roles[r.ID] = &r
	s.roleNameIndex[r.Name] = r.ID
	return nil
}

func (s *Storage) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.roleNameIndex[name]
	if !ok {
		return nil, model.ErrRoleNotFound
	}
	r := *s.roles[id]
	return &r, nil
}

func (s *Storage) ListRoles(ctx context.Context) ([]*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]*model.Role, 0, len(s.roles))
	for _, role := range s.roles {
		r := *role
		roles = append(roles, &r)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles, nil
}
