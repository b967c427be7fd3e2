package api

import "net/http"

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	// Health
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Schema administration (opt-in, unauthenticated)
	if s.adminEndpoints {
		s.mux.HandleFunc("POST /api/init-db", s.handleInitDB)
		s.mux.HandleFunc("POST /api/reset-db", s.handleResetDB)
	}

	// Auth
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.authed(s.handleLogout))
	s.mux.HandleFunc("GET /api/auth/verify", s.authed(s.handleVerify))
	s.mux.HandleFunc("GET /api/auth/me", s.authed(s.handleMe))

	// Projects
	s.mux.HandleFunc("GET /api/projects", s.authed(s.handleListProjects))
	s.mux.HandleFunc("POST /api/projects", s.authed(s.handleCreateProject))
	s.mux.HandleFunc("GET /api/projects/{id}", s.authed(s.handleGetProject))
	s.mux.HandleFunc("PUT /api/projects/{id}", s.authed(s.handleUpdateProject))
	s.mux.HandleFunc("DELETE /api/projects/{id}", s.authed(s.handleDeleteProject))

	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.authed(s.handleListTasks))
	s.mux.HandleFunc("POST /api/tasks", s.authed(s.handleCreateTask))
	s.mux.HandleFunc("GET /api/tasks/{id}", s.authed(s.handleGetTask))
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.authed(s.handleUpdateTask))
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.authed(s.handleDeleteTask))
	s.mux.HandleFunc("POST /api/tasks/{id}/sprint", s.authed(s.handleAddTaskToSprint))
	s.mux.HandleFunc("DELETE /api/tasks/{id}/sprint/{sprintId}", s.authed(s.handleRemoveTaskFromSprint))

	// Sprints
	s.mux.HandleFunc("GET /api/sprints", s.authed(s.handleListSprints))
	s.mux.HandleFunc("POST /api/sprints", s.authed(s.handleCreateSprint))
	s.mux.HandleFunc("GET /api/sprints/{id}", s.authed(s.handleGetSprint))
	s.mux.HandleFunc("PUT /api/sprints/{id}", s.authed(s.handleUpdateSprint))
	s.mux.HandleFunc("DELETE /api/sprints/{id}", s.authed(s.handleDeleteSprint))
	s.mux.HandleFunc("GET /api/sprints/{id}/tasks", s.authed(s.handleListSprintTasks))

	// Risks
	s.mux.HandleFunc("GET /api/risks", s.authed(s.handleListRisks))
	s.mux.HandleFunc("POST /api/risks", s.authed(s.handleCreateRisk))
	s.mux.HandleFunc("GET /api/risks/{id}", s.authed(s.handleGetRisk))
	s.mux.HandleFunc("PUT /api/risks/{id}", s.authed(s.handleUpdateRisk))
	s.mux.HandleFunc("DELETE /api/risks/{id}", s.authed(s.handleDeleteRisk))

	// Minutes
	s.mux.HandleFunc("GET /api/minutes", s.authed(s.handleListMinutes))
	s.mux.HandleFunc("POST /api/minutes", s.authed(s.handleCreateMinutes))
	s.mux.HandleFunc("GET /api/minutes/{id}", s.authed(s.handleGetMinutes))
	s.mux.HandleFunc("PUT /api/minutes/{id}", s.authed(s.handleUpdateMinutes))
	s.mux.HandleFunc("DELETE /api/minutes/{id}", s.authed(s.handleDeleteMinutes))

	// Kanban columns
	s.mux.HandleFunc("GET /api/columns", s.authed(s.handleListColumns))
	s.mux.HandleFunc("POST /api/columns", s.authed(s.handleCreateColumn))
	s.mux.HandleFunc("GET /api/columns/{id}", s.authed(s.handleGetColumn))
	s.mux.HandleFunc("PUT /api/columns/{id}", s.authed(s.handleUpdateColumn))
	s.mux.HandleFunc("DELETE /api/columns/{id}", s.authed(s.handleDeleteColumn))

	// Identifiers
	s.mux.HandleFunc("GET /api/generate-id/{prefix}", s.authed(s.handleGenerateID))

	// Everything else
	s.mux.HandleFunc("/", s.handleNotFound)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Route not found", http.StatusNotFound)
}
