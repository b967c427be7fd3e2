package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/randalmurphal/scope/internal/db"
	"github.com/randalmurphal/scope/internal/db/driver"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// timestampLayout is ISO 8601 with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// storeError writes the response for a failed storage call. Missing rows
// map to 404 and duplicate ids to 409; everything else is logged and
// reported as "Failed to <action>" with the cause attached.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, entity, action string, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		HandleError(w, scopeerrors.ErrNotFound(entity))
	case driver.IsUniqueViolation(err):
		HandleError(w, scopeerrors.ErrConflict(entity))
	default:
		s.logger.Error("storage error",
			"action", action,
			"error", err,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
		)
		HandleError(w, scopeerrors.ErrInternal("Failed to "+action, err))
	}
}

// projectFilter returns the optional ?project_id= list filter.
func projectFilter(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("project_id"))
}

// present reports whether every value is non-empty.
func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// orDefault returns v unless it is empty.
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// emptyToNil treats a blank optional date as absent.
func emptyToNil(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func created(w http.ResponseWriter, entity, id string) {
	JSONResponse(w, MessageResponse{Message: entity + " created successfully", ID: id})
}

func updated(w http.ResponseWriter, entity string) {
	JSONResponse(w, MessageResponse{Message: entity + " updated successfully"})
}

func deleted(w http.ResponseWriter, entity string) {
	JSONResponse(w, MessageResponse{Message: entity + " deleted successfully"})
}
