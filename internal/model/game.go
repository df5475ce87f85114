package model

// GameID uniquely identifies a game; assigned by storage on creation
type GameID int64

// Game is a named session users can join. Games track membership only; they
// carry no rules or play state.
type Game struct {
	ID   GameID `db:"id"`
	Name string `db:"name"`
}
