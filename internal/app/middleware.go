package app

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/timesheet/internal/rest"
	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(requestLogger)

	if deps.UserService != nil {
		r.Use(userFromHeader(deps.UserService))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Tracef("%s %s", req.Method, req.URL.RequestURI())
		next.ServeHTTP(w, req)
	})
}

// userFromHeader propagates the user named by the X-User-Id header into the
// request context for downstream services.
func userFromHeader(users user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if header != "" {
				userId, err := uuid.Parse(header)
				if err != nil {
					log.Debugf("invalid user id header: %s", header)
					rest.WriteError(w, http.StatusBadRequest, "invalid user id", err.Error())
					return
				}
				u, err := users.GetUser(ctx, userId.String())
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", userId)
						rest.WriteError(w, http.StatusForbidden, "user not found", "")
						return
					}
					log.Errorf("failed to get user: %v", err)
					rest.WriteError(w, http.StatusInternalServerError, "failed to get user", err.Error())
					return
				}
				log.Debugf("user found: %s", u.Id)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
