package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notely/internal/database/models"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	FindOwned(ctx context.Context, id int64, userID int64) (*models.Folder, error)
	GetAll(ctx context.Context, userID int64) ([]models.Folder, error)
	Rename(ctx context.Context, id int64, userID int64, name string) error
	Delete(ctx context.Context, id int64, userID int64) error
}

type folderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, user_id, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, folder.Name, folder.UserID).Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating folder: %v", err)
	}
	return nil
}

// FindOwned resolves a folder only when it belongs to userID. A folder owned
// by someone else looks exactly like a missing one.
func (r *folderRepository) FindOwned(ctx context.Context, id int64, userID int64) (*models.Folder, error) {
	folder := models.Folder{}
	query := `SELECT id, name, user_id, created_at FROM folders WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&folder.ID, &folder.Name, &folder.UserID, &folder.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting folder: %v", err)
	}
	return &folder, nil
}

func (r *folderRepository) GetAll(ctx context.Context, userID int64) ([]models.Folder, error) {
	query := `SELECT id, name, user_id, created_at FROM folders WHERE user_id = $1 ORDER BY created_at DESC`
	result, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying folders: %v", err)
	}
	defer result.Close()
	var folders []models.Folder
	for result.Next() {
		var folder models.Folder
		err := result.Scan(
			&folder.ID,
			&folder.Name,
			&folder.UserID,
			&folder.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning folder: %v", err)
		}
		folders = append(folders, folder)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %v", err)
	}
	return folders, nil
}

func (r *folderRepository) Rename(ctx context.Context, id int64, userID int64, name string) error {
	query := `UPDATE folders SET name = $1 WHERE id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, name, id, userID)
	if err != nil {
		return fmt.Errorf("error renaming folder: %v", err)
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

// Delete removes the folder and every note inside it in one transaction.
// A folder's notes have no independent existence once the folder is gone.
func (r *folderRepository) Delete(ctx context.Context, id int64, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE folder_id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("error deleting folder notes: %v", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting folder: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
