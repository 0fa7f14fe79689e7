package dto

import "time"

type FolderRequest struct {
	Name string `json:"name"`
}

type FolderResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
