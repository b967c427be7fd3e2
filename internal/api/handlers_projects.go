package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// projectRequest is the body of project create and update.
type projectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (req projectRequest) project(id string) *db.Project {
	return &db.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Status:      orDefault(req.Status, "active"),
	}
}

// handleListProjects returns all projects with their sprint, task and risk counts.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.storeError(w, r, "Project", "fetch projects", err)
		return
	}
	JSONResponse(w, projects)
}

// handleGetProject returns a single project.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Project", "fetch project", err)
		return
	}
	JSONResponse(w, p)
}

// handleCreateProject creates a project together with its default kanban columns.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ID, req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Project", "ID", "name"))
		return
	}

	if err := s.store.CreateProject(r.Context(), req.project(req.ID)); err != nil {
		s.storeError(w, r, "Project", "create project", err)
		return
	}
	created(w, "Project", req.ID)
}

// handleUpdateProject overwrites a project's name, description and status.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Project", "name"))
		return
	}

	if err := s.store.UpdateProject(r.Context(), req.project(r.PathValue("id"))); err != nil {
		s.storeError(w, r, "Project", "update project", err)
		return
	}
	updated(w, "Project")
}

// handleDeleteProject removes a project and everything it owns.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Project", "delete project", err)
		return
	}
	deleted(w, "Project")
}
