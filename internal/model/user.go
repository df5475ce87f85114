package model

// UserID uniquely identifies a user; assigned by storage on creation
type UserID int64

// User is a registered account
type User struct {
	ID           UserID `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

// Identity is the authenticated-identity value carried through a request's
// context after the session cookie has been verified. It is immutable and
// never re-read from storage during a request.
type Identity struct {
	UserID   UserID
	Username string
}
