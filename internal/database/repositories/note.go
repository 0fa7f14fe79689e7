package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notely/internal/database/models"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindOwned(ctx context.Context, id int64, userID int64) (*models.Note, error)
	GetAll(ctx context.Context, userID int64, folderID *int64) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64, userID int64) error
	ToggleFavorite(ctx context.Context, id int64, userID int64) (bool, error)
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (title, content, is_favorite, folder_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.IsFavorite, note.FolderID, note.UserID).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating note: %v", err)
	}
	return nil
}

func (r *noteRepository) FindOwned(ctx context.Context, id int64, userID int64) (*models.Note, error) {
	note := models.Note{}
	query := `SELECT id, title, content, is_favorite, folder_id, user_id, created_at, updated_at FROM notes WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&note.ID, &note.Title, &note.Content, &note.IsFavorite, &note.FolderID, &note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %v", err)
	}
	return &note, nil
}

// GetAll lists the caller's notes, newest update first. A non-nil folderID
// narrows the listing to that folder.
func (r *noteRepository) GetAll(ctx context.Context, userID int64, folderID *int64) ([]models.Note, error) {
	query := `SELECT id, title, content, is_favorite, folder_id, user_id, created_at, updated_at FROM notes WHERE user_id = $1 ORDER BY updated_at DESC`
	args := []any{userID}
	if folderID != nil {
		query = `SELECT id, title, content, is_favorite, folder_id, user_id, created_at, updated_at FROM notes WHERE user_id = $1 AND folder_id = $2 ORDER BY updated_at DESC`
		args = append(args, *folderID)
	}
	result, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %v", err)
	}
	defer result.Close()
	var notes []models.Note
	for result.Next() {
		var note models.Note
		err := result.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.IsFavorite,
			&note.FolderID,
			&note.UserID,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %v", err)
		}
		notes = append(notes, note)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %v", err)
	}
	return notes, nil
}

// Update writes the mutable fields and refreshes updated_at, even when the
// values are unchanged.
func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, folder_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.FolderID, note.ID, note.UserID).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating note: %v", err)
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id int64, userID int64) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting note: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the flag in place and returns the new value.
func (r *noteRepository) ToggleFavorite(ctx context.Context, id int64, userID int64) (bool, error) {
	query := `
		UPDATE notes
		SET is_favorite = NOT is_favorite, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING is_favorite`
	var isFavorite bool
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&isFavorite)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("error toggling favorite: %v", err)
	}
	return isFavorite, nil
}
