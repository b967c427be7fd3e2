package api

import (
	"net/http"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// IDResponse carries a generated identifier.
type IDResponse struct {
	ID string `json:"id"`
}

// handleGenerateID suggests the next free id for an entity prefix.
// Nothing is reserved; a create with a taken id answers 409.
func (s *Server) handleGenerateID(w http.ResponseWriter, r *http.Request) {
	prefix := r.PathValue("prefix")
	if !db.ValidPrefix(prefix) {
		HandleError(w, scopeerrors.ErrInvalidPrefix(prefix))
		return
	}

	id, err := s.store.NextID(r.Context(), prefix, projectFilter(r))
	if err != nil {
		s.storeError(w, r, "ID", "generate ID", err)
		return
	}
	JSONResponse(w, IDResponse{ID: id})
}
