package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type riskRequest struct {
	ID             string `json:"id"`
	ProjectID      string `json:"project_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Impact         *int   `json:"impact"`
	Probability    *int   `json:"probability"`
	MitigationPlan string `json:"mitigation_plan"`
	Strategy       string `json:"strategy"`
	Status         string `json:"status"`
}

func (req riskRequest) risk(id string) *db.Risk {
	rk := &db.Risk{
		ID:             id,
		ProjectID:      req.ProjectID,
		Name:           req.Name,
		Description:    req.Description,
		Impact:         1,
		Probability:    1,
		MitigationPlan: req.MitigationPlan,
		Strategy:       orDefault(req.Strategy, "accept"),
		Status:         orDefault(req.Status, "identified"),
	}
	if req.Impact != nil {
		rk.Impact = *req.Impact
	}
	if req.Probability != nil {
		rk.Probability = *req.Probability
	}
	return rk
}

func (s *Server) handleListRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.store.ListRisks(r.Context(), projectFilter(r))
	if err != nil {
		s.storeError(w, r, "Risk", "fetch risks", err)
		return
	}
	JSONResponse(w, risks)
}

func (s *Server) handleGetRisk(w http.ResponseWriter, r *http.Request) {
	rk, err := s.store.GetRisk(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, "Risk", "fetch risk", err)
		return
	}
	JSONResponse(w, rk)
}

func (s *Server) handleCreateRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.ID, req.ProjectID, req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Risk", "ID", "project ID", "name"))
		return
	}

	if err := s.store.CreateRisk(r.Context(), req.risk(req.ID)); err != nil {
		s.storeError(w, r, "Risk", "create risk", err)
		return
	}
	created(w, "Risk", req.ID)
}

func (s *Server) handleUpdateRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if !present(req.Name) {
		HandleError(w, scopeerrors.ErrMissingFields("Risk", "name"))
		return
	}

	if err := s.store.UpdateRisk(r.Context(), req.risk(r.PathValue("id"))); err != nil {
		s.storeError(w, r, "Risk", "update risk", err)
		return
	}
	updated(w, "Risk")
}

func (s *Server) handleDeleteRisk(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRisk(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "Risk", "delete risk", err)
		return
	}
	deleted(w, "Risk")
}
