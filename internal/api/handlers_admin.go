package api

import "net/http"

// AdminResponse is the body of the schema administration endpoints.
type AdminResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// handleInitDB applies pending migrations.
func (s *Server) handleInitDB(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Migrate(r.Context()); err != nil {
		s.logger.Error("database initialization failed", "error", err)
		JSONResponseStatus(w, AdminResponse{
			Success: false,
			Error:   "Database initialization failed",
			Message: err.Error(),
		}, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, AdminResponse{Success: true, Message: "Database initialized successfully"})
}

// handleResetDB drops every table and recreates the schema. All data is lost.
func (s *Server) handleResetDB(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("resetting database", "remote", r.RemoteAddr)
	if err := s.store.Reset(r.Context()); err != nil {
		s.logger.Error("database reset failed", "error", err)
		JSONResponseStatus(w, AdminResponse{
			Success: false,
			Error:   "Database reset failed",
			Message: err.Error(),
		}, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, AdminResponse{Success: true, Message: "Database reset and initialized successfully"})
}
