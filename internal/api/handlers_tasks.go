package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type taskRequest struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Responsible string  `json:"responsible"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Comments    string  `json:"comments"`
}

func (req taskRequest) task(id string) *db.Task {
	return &db.Task{
		ID:          id,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      orDefault(req.Status, "todo"),
		Priority:    orDefault(req.Priority, "medium"),
		Responsible: req.Responsible,
		StartDate:   emptyToNil(req.StartDate),
		EndDate:     emptyToNil(req.EndDate),
		Comments:    req.Comments,
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context(), projectFilter(r))
	if err != nil {
		s.storeError(w, r, "Task", "fetch tasks", err)
		return
	}
	JSONResponse(w, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Task", "fetch task", err)
		return
	}
	JSONResponse(w, t)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ID, req.ProjectID, req.Title) {
		HandleError(w, scopeerrors.ErrMissingFields("Task", "ID", "project ID", "title"))
		return
	}

	if err := s.store.CreateTask(r.Context(), req.task(req.ID)); err != nil {
		s.storeError(w, r, "Task", "create task", err)
		return
	}
	created(w, "Task", req.ID)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Title) {
		HandleError(w, scopeerrors.ErrMissingFields("Task", "title"))
		return
	}

	if err := s.store.UpdateTask(r.Context(), req.task(r.PathValue("id"))); err != nil {
		s.storeError(w, r, "Task", "update task", err)
		return
	}
	updated(w, "Task")
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Task", "delete task", err)
		return
	}
	deleted(w, "Task")
}

// handleAddTaskToSprint plans a task into a sprint. Both must exist;
// repeating the call is a no-op.
func (s *Server) handleAddTaskToSprint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SprintID string `json:"sprint_id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.SprintID) {
		HandleError(w, scopeerrors.ErrMissingFields("Sprint", "ID"))
		return
	}

	ctx := r.Context()
	taskID := r.PathValue("id")
	if _, err := s.store.GetTask(ctx, taskID); err != nil {
		s.storeError(w, r, "Task", "add task to sprint", err)
		return
	}
	if _, err := s.store.GetSprint(ctx, req.SprintID); err != nil {
		s.storeError(w, r, "Sprint", "add task to sprint", err)
		return
	}

	if err := s.store.AddTaskToSprint(ctx, req.SprintID, taskID); err != nil {
		s.storeError(w, r, "Sprint", "add task to sprint", err)
		return
	}
	JSONResponse(w, MessageResponse{Message: "Task added to sprint successfully"})
}

// handleRemoveTaskFromSprint takes a task out of a sprint.
func (s *Server) handleRemoveTaskFromSprint(w http.ResponseWriter, r *http.Request) {
	err := s.store.RemoveTaskFromSprint(r.Context(), r.PathValue("sprintId"), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Sprint task", "remove task from sprint", err)
		return
	}
	JSONResponse(w, MessageResponse{Message: "Task removed from sprint successfully"})
}
