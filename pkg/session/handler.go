package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/timesheet/internal/rest"
	"github.com/klokku/timesheet/pkg/tracker_api"
	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionDTO struct {
	User user.UserDTO `json:"user"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login godoc
// @Summary Sign in
// @Description Sign in to the time tracker API and store the session
// @Tags Session
// @Accept json
// @Produce json
// @Param credentials body LoginDTO true "Credentials"
// @Success 201 {object} SessionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/session [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Signing in")

	var credentials LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	session, err := h.service.Login(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			rest.WriteError(w, http.StatusBadRequest, "Email and password are required", "")
		case errors.Is(err, tracker_api.ErrInvalidCredentials):
			rest.WriteError(w, http.StatusUnauthorized, "Invalid email or password", "")
		default:
			log.Errorf("failed to sign in: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SessionDTO{User: user.UserToDTO(session.User)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetSession godoc
// @Summary Get current session
// @Tags Session
// @Produce json
// @Success 200 {object} SessionDTO
// @Failure 404 {object} rest.ErrorResponse "No active session"
// @Router /api/session [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, err := h.service.Current()
	if err != nil {
		rest.WriteError(w, http.StatusNotFound, "No active session", "")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SessionDTO{User: user.UserToDTO(session.User)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Logout godoc
// @Summary Sign out
// @Description Forget the stored session
// @Tags Session
// @Success 204 "No Content"
// @Router /api/session [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log.Debug("Signing out")
	if err := h.service.Logout(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
