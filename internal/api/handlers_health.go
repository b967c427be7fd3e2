package api

import "net/http"

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, HealthResponse{
		Status:    "OK",
		Message:   "Project Scope API is running",
		Timestamp: timestamp(),
	})
}
