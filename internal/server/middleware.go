package server

import (
	"errors"
	"strings"

	"notely/internal/auth"
	"notely/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
)

const localsUserID = "userID"

// authRequired resolves the caller's user id from the bearer token before
// any handler runs. Locally minted tokens carry the id directly; a token we
// did not mint may be an identity-provider token passed through at login, in
// which case the verified email is mapped back to an account.
func (s *FiberServer) authRequired(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid authorization header"})
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	if userID, err := auth.ParseUserID(tokenString, s.jwtSecret); err == nil {
		c.Locals(localsUserID, userID)
		return c.Next()
	}

	if s.verifier != nil {
		claims, err := s.verifier.Verify(c.Context(), tokenString)
		if err == nil {
			user, err := s.users.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(claims.Email)))
			if err == nil {
				c.Locals(localsUserID, user.ID)
				return c.Next()
			}
			if !isNotFound(err) {
				return err
			}
		}
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
}

func currentUserID(c *fiber.Ctx) int64 {
	userID, _ := c.Locals(localsUserID).(int64)
	return userID
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
