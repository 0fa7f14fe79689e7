package server

import (
	"errors"
	"log/slog"
	"os"

	"notely/internal/auth"
	"notely/internal/database"
	"notely/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
)

type FiberServer struct {
	*fiber.App

	db        database.Service
	users     repositories.UserRepository
	folders   repositories.FolderRepository
	notes     repositories.NoteRepository
	verifier  auth.TokenVerifier
	jwtSecret []byte
}

func New(db database.Service, verifier auth.TokenVerifier, jwtSecret []byte) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "notely",
			AppName:      "notely",
			ErrorHandler: errorHandler,
		}),
		db:        db,
		users:     repositories.NewUserRepository(db.DB()),
		folders:   repositories.NewFolderRepository(db.DB()),
		notes:     repositories.NewNoteRepository(db.DB()),
		verifier:  verifier,
		jwtSecret: jwtSecret,
	}
	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization,X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	server.App.Use(pprof.New(pprof.Config{
		Next: nil,
	}))
	return server
}

func corsOrigins() string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return origins
	}
	return "http://localhost:5173"
}

// errorHandler renders every error as {"error": msg}. Anything that is not
// a fiber.Error is logged and hidden behind a generic 500 body so SQL or
// verifier internals never reach the client.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	slog.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
