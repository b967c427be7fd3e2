package api

import (
	"errors"
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type columnRequest struct {
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	OrderIndex *int   `json:"order_index"`
}

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := s.store.ListColumns(r.Context(), projectFilter(r))
	if err != nil {
		s.storeError(w, r, "Column", "fetch columns", err)
		return
	}
	JSONResponse(w, columns)
}

func (s *Server) handleGetColumn(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetColumn(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Column", "fetch column", err)
		return
	}
	JSONResponse(w, c)
}

// handleCreateColumn adds a custom column. Its id is allocated from the
// project's existing columns.
func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ProjectID, req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Column", "project ID", "name"))
		return
	}

	c, err := s.store.CreateColumn(r.Context(), req.ProjectID, req.Name, req.OrderIndex)
	if errors.Is(err, db.ErrNotFound) {
		HandleError(w, scopeerrors.ErrNotFound("Project"))
		return
	}
	if err != nil {
		s.storeError(w, r, "Column", "create column", err)
		return
	}
	created(w, "Column", c.ID)
}

// handleUpdateColumn renames a column and, when order_index is given, moves it.
func (s *Server) handleUpdateColumn(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Column", "name"))
		return
	}

	ctx := r.Context()
	c, err := s.store.GetColumn(ctx, r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Column", "update column", err)
		return
	}
	c.Name = req.Name
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}

	if err := s.store.UpdateColumn(ctx, c); err != nil {
		s.storeError(w, r, "Column", "update column", err)
		return
	}
	updated(w, "Column")
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteColumn(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Column", "delete column", err)
		return
	}
	deleted(w, "Column")
}
