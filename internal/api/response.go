// Package api provides the REST API server for scope.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// APIError is the standard error response format.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse acknowledges a write. ID is set for creates.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// JSONResponse writes a successful JSON response.
func JSONResponse(w http.ResponseWriter, data any) {
	JSONResponseStatus(w, data, http.StatusOK)
}

// JSONResponseStatus writes a JSON response with a specific status code.
func JSONResponseStatus(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// JSONError writes a simple error response.
func JSONError(w http.ResponseWriter, message string, status int) {
	JSONResponseStatus(w, APIError{Error: message}, status)
}

// HandleError inspects error type and writes appropriate response.
// Errors that are not ScopeErrors are reported as internal server errors
// with their message attached.
func HandleError(w http.ResponseWriter, err error) {
	var scopeErr *scopeerrors.ScopeError
	if errors.As(err, &scopeErr) {
		JSONResponseStatus(w, APIError{
			Error:   scopeErr.What,
			Message: scopeErr.Why,
			Details: scopeErr.Details(),
		}, scopeErr.HTTPStatus())
		return
	}
	JSONResponseStatus(w, APIError{
		Error:   "Internal server error",
		Message: err.Error(),
	}, http.StatusInternalServerError)
}

// decodeJSON reads a JSON request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &scopeerrors.ScopeError{
			Code:  scopeerrors.CodeValidation,
			What:  "Invalid request body",
			Why:   err.Error(),
			Cause: err,
		}
	}
	return nil
}
