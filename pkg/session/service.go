package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/timesheet/pkg/tracker_api"
	log "github.com/sirupsen/logrus"
)

var ErrCredentialsRequired = errors.New("email and password are required")

type Service struct {
	store  *Store
	client tracker_api.Client
}

func NewService(store *Store, client tracker_api.Client) *Service {
	return &Service{store: store, client: client}
}

// Login authenticates against the time tracker API and saves the new session.
func (s *Service) Login(ctx context.Context, email string, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrCredentialsRequired
	}
	response, err := s.client.Login(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("login failed: %w", err)
	}
	session := Session{AccessToken: response.AccessToken, User: response.User}
	if err := s.store.Save(ctx, session); err != nil {
		return Session{}, err
	}
	log.Infof("Signed in as user %s", session.User.Id)
	return session, nil
}

// EnsureSession loads the stored session and, when none exists and credentials
// are given, signs in.
func (s *Service) EnsureSession(ctx context.Context, email string, password string) error {
	if err := s.store.Load(); err != nil {
		return err
	}
	if _, err := s.store.Current(); err == nil {
		return nil
	}
	if email == "" {
		log.Info("No stored session and no credentials configured, waiting for POST /api/session")
		return nil
	}
	_, err := s.Login(ctx, email, password)
	return err
}

func (s *Service) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *Service) Current() (Session, error) {
	return s.store.Current()
}
