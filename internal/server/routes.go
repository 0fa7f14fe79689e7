package server

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Post("/api/auth/register", s.register)
	s.App.Post("/api/auth/login", s.login)
	s.App.Post("/api/auth/firebase-login", s.firebaseLogin)
	s.App.Get("/health", s.healthHandler)

	// Everything below requires a resolved user id.
	s.App.Use("/api", s.authRequired)

	s.App.Get("/api/folders", s.listFolders)
	s.App.Post("/api/folders", s.createFolder)
	s.App.Put("/api/folders/:id", s.renameFolder)
	s.App.Delete("/api/folders/:id", s.deleteFolder)

	s.App.Get("/api/notes", s.listNotes)
	s.App.Post("/api/notes", s.createNote)
	s.App.Put("/api/notes/:id", s.updateNote)
	s.App.Delete("/api/notes/:id", s.deleteNote)
	s.App.Post("/api/notes/:id/favorite", s.toggleFavorite)

	s.App.Get("/api/profile", s.getProfile)
	s.App.Put("/api/profile", s.updateProfile)
	s.App.Post("/api/profile/change-password", s.changePassword)
	s.App.Delete("/api/profile", s.deleteAccount)
}
