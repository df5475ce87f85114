package model

// RoleID uniquely identifies a role
type RoleID int64

// Role is reference data a membership can optionally be tagged with.
// No exposed operation populates roles.
type Role struct {
	ID   RoleID `db:"id"`
	Name string `db:"name"`
}
