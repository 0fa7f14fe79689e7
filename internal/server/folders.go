package server

import (
	"strconv"
	"strings"

	"notely/internal/database/dto"
	"notely/internal/database/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id path segment. Malformed ids get the same "Not
// found" shape as missing rows.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
}

func (s *FiberServer) listFolders(c *fiber.Ctx) error {
	userID := currentUserID(c)
	folders, err := s.folders.GetAll(c.Context(), userID)
	if err != nil {
		return err
	}
	response := make([]dto.FolderResponse, 0, len(folders))
	for _, folder := range folders {
		response = append(response, dto.FolderResponse{ID: folder.ID, Name: folder.Name, CreatedAt: folder.CreatedAt})
	}
	return c.JSON(response)
}

func (s *FiberServer) createFolder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	req := dto.FolderRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	// Owner comes from the session, never from the payload.
	folder := models.Folder{Name: name, UserID: userID}
	if err := s.folders.Create(c.Context(), &folder); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FolderResponse{ID: folder.ID, Name: folder.Name, CreatedAt: folder.CreatedAt})
}

func (s *FiberServer) renameFolder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	req := dto.FolderRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	if err := s.folders.Rename(c.Context(), id, userID, name); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Updated"})
}

func (s *FiberServer) deleteFolder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := s.folders.Delete(c.Context(), id, userID); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Deleted"})
}
