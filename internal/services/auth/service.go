package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/storage"
)

// Errors
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so a failed login never reveals which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrUsernameRequired   = errors.New("username is required")
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// Service handles account registration and credential verification
type Service struct {
	storage storage.Storage
}

// New creates a new auth service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash. Registration does not establish a session.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Pre-check for a friendlier error; the storage constraint is the
	// authoritative guard against concurrent registrations.
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
