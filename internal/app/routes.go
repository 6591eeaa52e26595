package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Weekly view
	r.HandleFunc("/api/weekly-view", deps.WeeklyViewHandler.GetWeeklyView).Methods("GET")

	// Users
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")

	// Session, only when signing in against the time tracker API
	if deps.SessionHandler != nil {
		r.HandleFunc("/api/session", deps.SessionHandler.Login).Methods("POST")
		r.HandleFunc("/api/session", deps.SessionHandler.GetSession).Methods("GET")
		r.HandleFunc("/api/session", deps.SessionHandler.Logout).Methods("DELETE")
	}
}
