package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"notely/internal/auth"
	"notely/internal/database/dto"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
	"notely/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const tokenValidity = time.Hour * 72

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) register(c *fiber.Ctx) error {
	req := dto.RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Registered"})
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	req := dto.LoginRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(c.Context(), email)
	if err != nil && !isNotFound(err) {
		return err
	}
	// Unknown account and wrong password produce the same response so
	// callers cannot probe for registered emails.
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, tokenValidity)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		User:        dto.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (s *FiberServer) firebaseLogin(c *fiber.Ctx) error {
	req := dto.FirebaseLoginRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	idToken := strings.TrimSpace(req.IDToken)
	if idToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "idToken is required"})
	}
	if s.verifier == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid identity token"})
	}

	claims, err := s.verifier.Verify(c.Context(), idToken)
	if err != nil {
		// The verifier's reason stays in the log; clients get a fixed message.
		slog.Warn("identity token rejected", "err", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid identity token"})
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	user, err := s.users.GetByEmail(c.Context(), email)
	if isNotFound(err) {
		name := strings.TrimSpace(claims.Name)
		if name == "" {
			name = email
		}
		// Provider-only account: the empty hash blocks password login.
		user = &models.User{Email: email, Name: name, PasswordHash: ""}
		if err := s.users.Create(c.Context(), user); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// The provider token itself is the session credential for this path;
	// authRequired resolves it back to the account on later requests.
	return c.JSON(dto.FirebaseLoginResponse{
		Message: "Firebase authentication successful",
		Token:   idToken,
		User:    dto.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}
