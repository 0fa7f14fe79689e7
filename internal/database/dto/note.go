package dto

import (
	"encoding/json"
	"time"
)

// OptionalInt64 distinguishes the three states a patch field can be in:
// key omitted (Present false), key present with null (Present true, Value
// nil), key present with a number (Present true, Value set). UnmarshalJSON
// only runs when the key appears in the payload, which is what flips
// Present.
type OptionalInt64 struct {
	Present bool
	Value   *int64
}

func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type NoteCreateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID *int64 `json:"folderId"`
}

type NoteUpdateRequest struct {
	Title    *string       `json:"title"`
	Content  *string       `json:"content"`
	FolderID OptionalInt64 `json:"folderId"`
}

type NoteResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsFavorite bool      `json:"isFavorite"`
	FolderID   *int64    `json:"folderId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type FavoriteResponse struct {
	ID         int64 `json:"id"`
	IsFavorite bool  `json:"is_favorite"`
}
