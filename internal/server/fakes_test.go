package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

// memStore backs the fake repositories with one shared map set so cascades
// behave like the real schema.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	clock   time.Time
	users   map[int64]models.User
	folders map[int64]models.Folder
	notes   map[int64]models.Note
}

func newMemStore() *memStore {
	return &memStore{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:   make(map[int64]models.User),
		folders: make(map[int64]models.Folder),
		notes:   make(map[int64]models.Note),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// now is strictly monotonic so ordering and refresh assertions are stable.
func (m *memStore) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUsers) UpdateName(_ context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Name = name
	user.UpdatedAt = r.s.now()
	r.s.users[id] = user
	return nil
}

func (r *memUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = r.s.now()
	r.s.users[id] = user
	return nil
}

func (r *memUsers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	for noteID, note := range r.s.notes {
		if note.UserID == id {
			delete(r.s.notes, noteID)
		}
	}
	for folderID, folder := range r.s.folders {
		if folder.UserID == id {
			delete(r.s.folders, folderID)
		}
	}
	delete(r.s.users, id)
	return nil
}

type memFolders struct{ s *memStore }

func (r *memFolders) Create(_ context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder.ID = r.s.id()
	folder.CreatedAt = r.s.now()
	r.s.folders[folder.ID] = *folder
	return nil
}

func (r *memFolders) FindOwned(_ context.Context, id int64, userID int64) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, ok := r.s.folders[id]
	if !ok || folder.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &folder, nil
}

func (r *memFolders) GetAll(_ context.Context, userID int64) ([]models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var folders []models.Folder
	for _, folder := range r.s.folders {
		if folder.UserID == userID {
			folders = append(folders, folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].CreatedAt.After(folders[j].CreatedAt) })
	return folders, nil
}

func (r *memFolders) Rename(_ context.Context, id int64, userID int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, ok := r.s.folders[id]
	if !ok || folder.UserID != userID {
		return repositories.ErrNotFound
	}
	folder.Name = name
	r.s.folders[id] = folder
	return nil
}

func (r *memFolders) Delete(_ context.Context, id int64, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	folder, ok := r.s.folders[id]
	if !ok || folder.UserID != userID {
		return repositories.ErrNotFound
	}
	for noteID, note := range r.s.notes {
		if note.FolderID != nil && *note.FolderID == id && note.UserID == userID {
			delete(r.s.notes, noteID)
		}
	}
	delete(r.s.folders, id)
	return nil
}

type memNotes struct{ s *memStore }

func (r *memNotes) Create(_ context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note.ID = r.s.id()
	note.CreatedAt = r.s.now()
	note.UpdatedAt = note.CreatedAt
	r.s.notes[note.ID] = *note
	return nil
}

func (r *memNotes) FindOwned(_ context.Context, id int64, userID int64) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note, ok := r.s.notes[id]
	if !ok || note.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &note, nil
}

func (r *memNotes) GetAll(_ context.Context, userID int64, folderID *int64) ([]models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var notes []models.Note
	for _, note := range r.s.notes {
		if note.UserID != userID {
			continue
		}
		if folderID != nil && (note.FolderID == nil || *note.FolderID != *folderID) {
			continue
		}
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes, nil
}

func (r *memNotes) Update(_ context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.notes[note.ID]
	if !ok || stored.UserID != note.UserID {
		return repositories.ErrNotFound
	}
	stored.Title = note.Title
	stored.Content = note.Content
	stored.FolderID = note.FolderID
	stored.UpdatedAt = r.s.now()
	r.s.notes[note.ID] = stored
	note.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memNotes) Delete(_ context.Context, id int64, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note, ok := r.s.notes[id]
	if !ok || note.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r *memNotes) ToggleFavorite(_ context.Context, id int64, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note, ok := r.s.notes[id]
	if !ok || note.UserID != userID {
		return false, repositories.ErrNotFound
	}
	note.IsFavorite = !note.IsFavorite
	note.UpdatedAt = r.s.now()
	r.s.notes[id] = note
	return note.IsFavorite, nil
}
