package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gamehub-app/gamehub/internal/services/auth"
	"github.com/gamehub-app/gamehub/internal/services/game"
	"github.com/gamehub-app/gamehub/internal/session"
	"github.com/gamehub-app/gamehub/internal/storage"
	"github.com/gamehub-app/gamehub/internal/storage/memory"
	"github.com/gamehub-app/gamehub/internal/storage/postgres"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	AuthService    *auth.Service
	GameController *game.Controller
	Sessions       *session.Manager

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// PostgresConfig holds Postgres connection settings
	// (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// SessionConfig holds session signing settings. The secret is required:
	// it comes from deployment configuration, never from source.
	SessionConfig session.Config
}

// New creates an application with all components wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgres.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		if err := pgStore.InitSchema(ctx); err != nil {
			_ = pgStore.Close()
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	sessions, err := session.NewManager(cfg.SessionConfig)
	if err != nil {
		return nil, err
	}

	return &App{
		Storage:        store,
		AuthService:    auth.New(store),
		GameController: game.NewController(store),
		Sessions:       sessions,
		Logger:         logger,
	}, nil
}

// Close releases held resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
