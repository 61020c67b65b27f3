// Command vitrine serves the property showcase, the admin pages and the
// JSON API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaralimoveis/vitrine/internal/api"
	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/config"
	"github.com/amaralimoveis/vitrine/internal/db"
	"github.com/amaralimoveis/vitrine/internal/store"
	"github.com/amaralimoveis/vitrine/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// INFO/WARN to stdout, ERROR to stderr, optionally also to a file.
	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	// Auto-init on first run.
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		database, password, err := initDatabase(cfg.DBPath, cfg.AdminUser)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		database.Close()

		printInitResult(cfg.DBPath, cfg.AdminUser, password)
		fmt.Println()
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	ctx := context.Background()

	if n, err := store.PurgeRevokedTokens(ctx, database, time.Now()); err != nil {
		slog.Warn("failed to purge revoked tokens", "error", err)
	} else if n > 0 {
		slog.Info("purged expired token revocations", "count", n)
	}

	// The signing secret is generated on first run and kept in the database.
	secret, err := store.GetOrCreateSecret(ctx, database, store.SettingJWTSecret)
	if err != nil {
		return fmt.Errorf("loading JWT secret: %w", err)
	}
	tokens := auth.NewTokens(secret, auth.TokenExpiry)

	b, err := openBackends(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer b.Close()

	svc := catalog.New(b.listings, b.lookup, catalog.WithPhotos(b.photos))

	apiRouter := api.NewRouter(database, tokens, svc, b.lookup)
	webRouter, err := web.NewRouter(database, tokens, svc, web.Contact{
		WhatsApp:  cfg.WhatsApp,
		Instagram: cfg.Instagram,
	})
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}
