package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/timesheet/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

type Handler struct {
	viewers   ViewerProvider
	directory Directory
}

func NewHandler(viewers ViewerProvider, directory Directory) *Handler {
	return &Handler{
		viewers:   viewers,
		directory: directory,
	}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the profile of the actor the weekly view is built for
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {object} rest.ErrorResponse "No current user"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Getting current user")

	currentUser, err := h.viewers.CurrentViewer(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, http.StatusForbidden, "No current user", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UserToDTO(currentUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetAvailableUsers godoc
// @Summary Get all users
// @Description Retrieve the user directory. Only administrators may list users.
// @Tags User
// @Produce json
// @Success 200 {array} UserDTO
// @Failure 403 {object} rest.ErrorResponse "Not an administrator"
// @Router /api/user [get]
// @Security XUserId
func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Getting available users")

	currentUser, err := h.viewers.CurrentViewer(r.Context())
	if err != nil || !currentUser.IsAdmin {
		rest.WriteError(w, http.StatusForbidden, "Administrator access required", "")
		return
	}

	users, err := h.directory.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	usersDTO := make([]UserDTO, 0, len(users))
	for _, u := range users {
		usersDTO = append(usersDTO, UserToDTO(u))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(usersDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func UserToDTO(u User) UserDTO {
	return UserDTO{
		Id:          u.Id,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth,
		IsAdmin:     u.IsAdmin,
	}
}

func DTOToUser(dto UserDTO) User {
	return User{
		Id:          dto.Id,
		Email:       dto.Email,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		DateOfBirth: dto.DateOfBirth,
		IsAdmin:     dto.IsAdmin,
	}
}
