package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameNameTaken = errors.New("game name already exists")

	// Membership errors
	ErrAlreadyJoined      = errors.New("already joined this game")
	ErrMembershipNotFound = errors.New("membership not found")

	// Role errors
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleNameTaken = errors.New("role name already exists")
)
