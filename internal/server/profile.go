package server

import (
	"strings"

	"notely/internal/database/dto"
	"notely/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) getProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	user, err := s.users.GetByID(c.Context(), userID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(dto.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name})
}

func (s *FiberServer) updateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	req := dto.UpdateProfileRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := s.users.GetByID(c.Context(), userID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	// A blank name keeps the current one.
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" && name != user.Name {
			if err := s.users.UpdateName(c.Context(), userID, name); err != nil {
				if isNotFound(err) {
					return notFound(c)
				}
				return err
			}
		}
	}

	return c.JSON(fiber.Map{"message": "Updated"})
}

func (s *FiberServer) changePassword(c *fiber.Ctx) error {
	userID := currentUserID(c)
	req := dto.ChangePasswordRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password required"})
	}

	user, err := s.users.GetByID(c.Context(), userID)
	if err != nil && !isNotFound(err) {
		return err
	}
	// A vanished account and a wrong current password are indistinguishable.
	if err != nil || !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(c.Context(), userID, hash); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Password changed"})
}

func (s *FiberServer) deleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.users.Delete(c.Context(), userID); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}
