package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gamehub-app/gamehub/internal/api"
	"github.com/gamehub-app/gamehub/internal/factory"
	"github.com/gamehub-app/gamehub/internal/session"
	"github.com/gamehub-app/gamehub/internal/storage/postgres"
	"github.com/gamehub-app/gamehub/internal/web"
)

type config struct {
	bind            string
	port            int
	storage         string
	databaseURL     string
	sessionSecret   string
	sessionDuration time.Duration
	logLevel        string
}

func (c *config) validate() error {
	if c.sessionSecret == "" {
		return errors.New("--session-secret is required (env: GAMEHUB_SESSION_SECRET)")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storage == factory.StorageTypePostgres && c.databaseURL == "" {
		return errors.New("--database-url is required when --storage=postgres")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GAMEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "gamehub",
		Short:         "A small multi-user web application for creating and joining games.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: GAMEHUB_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: GAMEHUB_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeMemory, "storage backend, memory or postgres (env: GAMEHUB_STORAGE)")
	fs.StringVar(&cfg.databaseURL, "database-url", "", "postgres connection URL (env: GAMEHUB_DATABASE_URL)")
	fs.StringVar(&cfg.sessionSecret, "session-secret", "", "secret for signing session cookies, required (env: GAMEHUB_SESSION_SECRET)")
	fs.DurationVar(&cfg.sessionDuration, "session-duration", session.DefaultDuration, "how long sessions stay valid (env: GAMEHUB_SESSION_DURATION)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: GAMEHUB_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func run(ctx context.Context, cfg *config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	fcfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.storage,
		SessionConfig: session.Config{
			Secret:   cfg.sessionSecret,
			Duration: cfg.sessionDuration,
		},
	}

	if cfg.storage == factory.StorageTypePostgres {
		pgCfg := postgres.DefaultConfig()
		pgCfg.URL = cfg.databaseURL
		fcfg.PostgresConfig = &pgCfg
	}

	// Create application factory
	app, err := factory.New(ctx, fcfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() { _ = app.Close() }()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Sessions:       app.Sessions,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Sessions:       app.Sessions,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	cfg := &config{}
	cmd := newCmd(cfg)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
