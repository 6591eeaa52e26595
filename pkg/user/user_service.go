package user

import (
	"context"
	"fmt"
)

// Directory lists the users whose names may appear on weekly cards.
type Directory interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// ViewerProvider resolves the actor the weekly view is built for.
type ViewerProvider interface {
	CurrentViewer(ctx context.Context) (User, error)
}

type Service interface {
	Directory
	GetUser(ctx context.Context, id string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}
