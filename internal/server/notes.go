package server

import (
	"strconv"
	"strings"

	"notely/internal/database/dto"
	"notely/internal/database/models"

	"github.com/gofiber/fiber/v2"
)

func noteResponse(note models.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		IsFavorite: note.IsFavorite,
		FolderID:   note.FolderID,
		UpdatedAt:  note.UpdatedAt,
	}
}

func (s *FiberServer) listNotes(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var folderID *int64
	if raw := c.Query("folderId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid folderId"})
		}
		folderID = &id
	}

	notes, err := s.notes.GetAll(c.Context(), userID, folderID)
	if err != nil {
		return err
	}
	response := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, noteResponse(note))
	}
	return c.JSON(response)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	userID := currentUserID(c)
	req := dto.NoteCreateRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled"
	}

	note := models.Note{Title: title, Content: req.Content, UserID: userID}
	if req.FolderID != nil {
		// A folder id that does not resolve to one of the caller's folders
		// leaves the note unfiled rather than failing the create.
		if folder, err := s.folders.FindOwned(c.Context(), *req.FolderID, userID); err == nil {
			note.FolderID = &folder.ID
		}
	}

	if err := s.notes.Create(c.Context(), &note); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(noteResponse(note))
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	req := dto.NoteUpdateRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	note, err := s.notes.FindOwned(c.Context(), id, userID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	if req.Title != nil {
		// A blank title keeps the current one; blank is a no-op, not a clear.
		if title := strings.TrimSpace(*req.Title); title != "" {
			note.Title = title
		}
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.FolderID.Present {
		if req.FolderID.Value == nil {
			note.FolderID = nil
		} else {
			note.FolderID = nil
			if folder, err := s.folders.FindOwned(c.Context(), *req.FolderID.Value, userID); err == nil {
				note.FolderID = &folder.ID
			}
		}
	}

	if err := s.notes.Update(c.Context(), note); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(noteResponse(*note))
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := s.notes.Delete(c.Context(), id, userID); err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Deleted"})
}

func (s *FiberServer) toggleFavorite(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	isFavorite, err := s.notes.ToggleFavorite(c.Context(), id, userID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(dto.FavoriteResponse{ID: id, IsFavorite: isFavorite})
}
