package postgres

import "time"

// Config holds Postgres connection settings
type Config struct {
	// URL is the Postgres connection URL (e.g., postgres://localhost:5432/gamehub)
	URL string

	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible defaults for Postgres configuration
func DefaultConfig() Config {
	return Config{
		URL:             "postgres://localhost:5432/gamehub?sslmode=disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}
