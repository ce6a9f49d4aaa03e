package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Isolator/internal/auth"
	"Isolator/internal/config"
	"Isolator/internal/logger"
	"Isolator/internal/repo"
	"Isolator/internal/server"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var authSvc *auth.Service
	if cfg.AuthEnabled() {
		db, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Database unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		users := repo.NewPostgresUserDB(db)
		if err := users.Migrate(ctx); err != nil {
			slog.Error("Schema migration failed", "error", err)
			os.Exit(1)
		}
		authSvc = &auth.Service{Key: []byte(cfg.TokenKey), Repo: users, SecureCookie: cfg.TLSEnabled()}
		slog.Info("Accounts enabled")
	} else {
		slog.Warn("Accounts disabled, premium tools are open")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, authSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting server", "addr", cfg.Addr, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received, closing active connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
