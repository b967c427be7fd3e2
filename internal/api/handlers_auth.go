package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/randalmurphal/scope/internal/auth"
	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message   string   `json:"message"`
	Token     string   `json:"token"`
	User      *db.User `json:"user"`
	ExpiresIn string   `json:"expiresIn"`
}

// IdentityResponse echoes the caller's token identity.
type IdentityResponse struct {
	Message   string        `json:"message,omitempty"`
	User      auth.Identity `json:"user"`
	Timestamp string        `json:"timestamp"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		HandleError(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		JSONResponseStatus(w, APIError{
			Error:   "Validation error",
			Message: "Username and password are required",
		}, http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, db.ErrNotFound) {
		HandleError(w, scopeerrors.ErrAuthenticationFailed())
		return
	}
	if err != nil {
		s.loginFailed(w, err)
		return
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info("login rejected", "username", req.Username)
		HandleError(w, scopeerrors.ErrAuthenticationFailed())
		return
	}

	token, err := s.tokens.Sign(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
	if err != nil {
		s.loginFailed(w, err)
		return
	}

	s.logger.Info("login", "username", user.Username)
	JSONResponse(w, LoginResponse{
		Message:   "Login successful",
		Token:     token,
		User:      user,
		ExpiresIn: formatTTL(s.tokens.TTL()),
	})
}

func (s *Server) loginFailed(w http.ResponseWriter, err error) {
	s.logger.Error("login error", "error", err)
	JSONResponseStatus(w, APIError{
		Error:   "Internal server error",
		Message: "Login failed",
	}, http.StatusInternalServerError)
}

// handleLogout confirms a logout. Tokens are stateless; the client discards it.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, MessageTimestamp{Message: "Logout successful", Timestamp: timestamp()})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	JSONResponse(w, IdentityResponse{Message: "Token is valid", User: id, Timestamp: timestamp()})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	JSONResponse(w, IdentityResponse{User: id, Timestamp: timestamp()})
}

// MessageTimestamp is a bare acknowledgement with the server time.
type MessageTimestamp struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// formatTTL renders a token lifetime the way clients expect it, e.g. "24h".
func formatTTL(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return d.String()
	}
}
