package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type sprintRequest struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func (req sprintRequest) sprint(id string) *db.Sprint {
	return &db.Sprint{
		ID:        id,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    orDefault(req.Status, "planning"),
	}
}

func (s *Server) handleListSprints(w http.ResponseWriter, r *http.Request) {
	sprints, err := s.store.ListSprints(r.Context(), projectFilter(r))
	if err != nil {
		s.storeError(w, r, "Sprint", "fetch sprints", err)
		return
	}
	JSONResponse(w, sprints)
}

func (s *Server) handleGetSprint(w http.ResponseWriter, r *http.Request) {
	sp, err := s.store.GetSprint(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Sprint", "fetch sprint", err)
		return
	}
	JSONResponse(w, sp)
}

func (s *Server) handleCreateSprint(w http.ResponseWriter, r *http.Request) {
	var req sprintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ID, req.ProjectID, req.Name, req.StartDate, req.EndDate) {
		HandleError(w, scopeerrors.ErrMissingFields("Sprint", "ID", "project ID", "name", "start date", "end date"))
		return
	}

	if err := s.store.CreateSprint(r.Context(), req.sprint(req.ID)); err != nil {
		s.storeError(w, r, "Sprint", "create sprint", err)
		return
	}
	created(w, "Sprint", req.ID)
}

func (s *Server) handleUpdateSprint(w http.ResponseWriter, r *http.Request) {
	var req sprintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Name, req.StartDate, req.EndDate) {
		HandleError(w, scopeerrors.ErrMissingFields("Sprint", "name", "start date", "end date"))
		return
	}

	if err := s.store.UpdateSprint(r.Context(), req.sprint(r.PathValue("id"))); err != nil {
		s.storeError(w, r, "Sprint", "update sprint", err)
		return
	}
	updated(w, "Sprint")
}

func (s *Server) handleDeleteSprint(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSprint(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Sprint", "delete sprint", err)
		return
	}
	deleted(w, "Sprint")
}

// handleListSprintTasks returns the tasks planned into a sprint.
func (s *Server) handleListSprintTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := s.store.GetSprint(ctx, id); err != nil {
		s.storeError(w, r, "Sprint", "fetch sprint tasks", err)
		return
	}

	tasks, err := s.store.ListSprintTasks(ctx, id)
	if err != nil {
		s.storeError(w, r, "Sprint", "fetch sprint tasks", err)
		return
	}
	JSONResponse(w, tasks)
}
