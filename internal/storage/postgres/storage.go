package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/storage"
)

//go:embed schema.sql
var schema string

// Constraint names from schema.sql, used to translate unique violations
// into the matching sentinel errors.
const (
	constraintUsername   = "users_username_key"
	constraintGameName   = "games_name_key"
	constraintRoleName   = "roles_name_key"
	constraintMembership = "user_in_games_user_game_key"
)

// uniqueViolation is SQLSTATE 23505
const uniqueViolation = "23505"

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *sqlx.DB
}

// New opens a Postgres connection pool and verifies connectivity
func New(ctx context.Context, cfg Config) (*Storage, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing connection (for testing)
func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// InitSchema applies the embedded schema. Statements are idempotent.
func (s *Storage) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.GetContext(ctx, &user.ID, query, user.Username, user.PasswordHash)
	if isUniqueViolation(err, constraintUsername) {
		return model.ErrUsernameTaken
	}
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	const query = `
		SELECT id, username, password_hash
		FROM users
		WHERE id = $1
	`
	var user model.User
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1
	`
	var user model.User
	if err := s.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game, creator model.UserID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertGame = `
		INSERT INTO games (name)
		VALUES ($1)
		RETURNING id
	`
	if err := tx.GetContext(ctx, &game.ID, insertGame, game.Name); err != nil {
		if isUniqueViolation(err, constraintGameName) {
			return model.ErrGameNameTaken
		}
		return err
	}

	const insertMembership = `
		INSERT INTO user_in_games (game_id, user_id)
		VALUES ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, insertMembership, game.ID, creator); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	const query = `
		SELECT id, name
		FROM games
		WHERE id = $1
	`
	var game model.Game
	if err := s.db.GetContext(ctx, &game, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	const query = `
		SELECT id, name
		FROM games
		WHERE name = $1
	`
	var game model.Game
	if err := s.db.GetContext(ctx, &game, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	const query = `
		SELECT id, name
		FROM games
		ORDER BY name
	`
	var games []*model.Game
	if err := s.db.SelectContext(ctx, &games, query); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	// Memberships go with it via ON DELETE CASCADE
	const query = `
		DELETE FROM games
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

// Membership operations

func (s *Storage) CreateMembership(ctx context.Context, membership *model.Membership) error {
	const query = `
		INSERT INTO user_in_games (game_id, user_id, role_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := s.db.GetContext(ctx, &membership.ID, query, membership.GameID, membership.UserID, membership.RoleID)
	if isUniqueViolation(err, constraintMembership) {
		return model.ErrAlreadyJoined
	}
	return err
}

func (s *Storage) GetMembership(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.Membership, error) {
	const query = `
		SELECT id, game_id, user_id, role_id
		FROM user_in_games
		WHERE user_id = $1 AND game_id = $2
	`
	var membership model.Membership
	if err := s.db.GetContext(ctx, &membership, query, userID, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (s *Storage) ListGameMembers(ctx context.Context, gameID model.GameID) ([]*model.Membership, error) {
	const query = `
		SELECT id, game_id, user_id, role_id
		FROM user_in_games
		WHERE game_id = $1
		ORDER BY id
	`
	var members []*model.Membership
	if err := s.db.SelectContext(ctx, &members, query, gameID); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Storage) ListUserMemberships(ctx context.Context, userID model.UserID) ([]*model.Membership, error) {
	const query = `
		SELECT id, game_id, user_id, role_id
		FROM user_in_games
		WHERE user_id = $1
		ORDER BY id
	`
	var members []*model.Membership
	if err := s.db.SelectContext(ctx, &members, query, userID); err != nil {
		return nil, err
	}
	return members, nil
}

// Role operations

func (s *Storage) CreateRole(ctx context.Context, role *model.Role) error {
	const query = `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id
	`
	err := s.db.GetContext(ctx, &role.ID, query, role.Name)
	if isUniqueViolation(err, constraintRoleName) {
		return model.ErrRoleNameTaken
	}
	return err
}

func (s *Storage) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	const query = `
		SELECT id, name
		FROM roles
		WHERE name = $1
	`
	var role model.Role
	if err := s.db.GetContext(ctx, &role, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (s *Storage) ListRoles(ctx context.Context) ([]*model.Role, error) {
	const query = `
		SELECT id, name
		FROM roles
		ORDER BY name
	`
	var roles []*model.Role
	if err := s.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, err
	}
	return roles, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}
