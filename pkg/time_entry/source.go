package time_entry

import (
	"context"

	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Source yields the time entries the viewer is allowed to see.
type Source interface {
	ListEntries(ctx context.Context, viewer user.User) ([]TimeEntry, error)
}

// RepositorySource scopes repository reads to the viewer: administrators see
// every record, everybody else only their own.
type RepositorySource struct {
	repo Repository
}

func NewRepositorySource(repo Repository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) ListEntries(ctx context.Context, viewer user.User) ([]TimeEntry, error) {
	if viewer.IsAdmin {
		log.Tracef("listing all time entries for administrator %s", viewer.Id)
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetForUser(ctx, viewer.Id)
}
