package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type minutesRequest struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	MeetingDate string `json:"meeting_date"`
}

func (req minutesRequest) minutes(id string) *db.Minutes {
	return &db.Minutes{
		ID:          id,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Content:     req.Content,
		MeetingDate: req.MeetingDate,
	}
}

func (s *Server) handleListMinutes(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListMinutes(r.Context(), projectFilter(r))
	if err != nil {
		s.storeError(w, r, "Minutes", "fetch minutes", err)
		return
	}
	JSONResponse(w, list)
}

func (s *Server) handleGetMinutes(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMinutes(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Minutes", "fetch minutes", err)
		return
	}
	JSONResponse(w, m)
}

func (s *Server) handleCreateMinutes(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ID, req.ProjectID, req.Title, req.MeetingDate) {
		HandleError(w, scopeerrors.ErrMissingFields("Minutes", "ID", "project ID", "title", "meeting date"))
		return
	}

	if err := s.store.CreateMinutes(r.Context(), req.minutes(req.ID)); err != nil {
		s.storeError(w, r, "Minutes", "create minutes", err)
		return
	}
	created(w, "Minutes", req.ID)
}

func (s *Server) handleUpdateMinutes(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Title, req.MeetingDate) {
		HandleError(w, scopeerrors.ErrMissingFields("Minutes", "title", "meeting date"))
		return
	}

	if err := s.store.UpdateMinutes(r.Context(), req.minutes(r.PathValue("id"))); err != nil {
		s.storeError(w, r, "Minutes", "update minutes", err)
		return
	}
	updated(w, "Minutes")
}

func (s *Server) handleDeleteMinutes(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMinutes(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Minutes", "delete minutes", err)
		return
	}
	deleted(w, "Minutes")
}
