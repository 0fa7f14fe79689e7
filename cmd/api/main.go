package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"notely/internal/auth"
	"notely/internal/database"
	"notely/internal/server"

	_ "github.com/joho/godotenv/autoload"
)

func gracefulShutdown(fiberServer *server.FiberServer, db database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "err", err)
	}
	if err := db.Close(); err != nil {
		slog.Error("error closing database", "err", err)
	}

	done <- true
}

func main() {
	db := database.New()
	if err := database.Migrate(db.DB()); err != nil {
		slog.Error("migration failed", "err", err)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	var verifier auth.TokenVerifier
	if projectID := os.Getenv("FIREBASE_PROJECT_ID"); projectID != "" {
		v, err := auth.NewGoogleVerifier(context.Background(), projectID)
		if err != nil {
			slog.Error("identity verifier init failed", "err", err)
			os.Exit(1)
		}
		verifier = v
	} else {
		slog.Warn("FIREBASE_PROJECT_ID not set, identity-provider login disabled")
	}

	srv := server.New(db, verifier, []byte(secret))
	srv.RegisterFiberRoutes()

	done := make(chan bool, 1)
	go func() {
		port, _ := strconv.Atoi(os.Getenv("PORT"))
		if port == 0 {
			port = 8080
		}
		if err := srv.Listen(fmt.Sprintf(":%d", port)); err != nil {
			panic(fmt.Sprintf("http server error: %s", err))
		}
	}()

	go gracefulShutdown(srv, db, done)
	<-done
	slog.Info("graceful shutdown complete")
}
