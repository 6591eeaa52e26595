package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klokku/timesheet/internal/event_bus"
	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrNoSession = errors.New("no active session")

// Session is the signed-in actor together with the token used for API calls.
type Session struct {
	AccessToken string
	User        user.User
}

type sessionFile struct {
	AccessToken string       `json:"authToken"`
	User        user.UserDTO `json:"authUser"`
}

// Store is the process-wide session. It is loaded from and saved to a JSON
// file and announces every change on the event bus.
type Store struct {
	mu       sync.RWMutex
	path     string
	current  *Session
	eventBus *event_bus.EventBus
}

func NewStore(path string, eventBus *event_bus.EventBus) *Store {
	return &Store{path: path, eventBus: eventBus}
}

// Load reads the session file. A missing file leaves the store without a session.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("Session file not found at %s, starting without a session", s.path)
			s.current = nil
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var stored sessionFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to decode session file %s: %w", s.path, err)
	}
	if stored.AccessToken == "" {
		s.current = nil
		return nil
	}
	s.current = &Session{AccessToken: stored.AccessToken, User: user.DTOToUser(stored.User)}
	log.Infof("Loaded session of user %s from %s", s.current.User.Id, s.path)
	return nil
}

// Save persists the session and makes it current.
func (s *Store) Save(ctx context.Context, session Session) error {
	if session.AccessToken == "" {
		return fmt.Errorf("cannot save session without access token")
	}
	data, err := json.MarshalIndent(sessionFile{
		AccessToken: session.AccessToken,
		User:        user.UserToDTO(session.User),
	}, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := writeFileAtomic(s.path, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	s.current = &session
	s.mu.Unlock()

	s.publish(ctx, event_bus.SessionStartedEvent, session.User)
	return nil
}

// Clear forgets the session and removes its file.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	previous := s.current
	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	s.mu.Unlock()

	if previous != nil {
		s.publish(ctx, event_bus.SessionEndedEvent, previous.User)
	}
	return nil
}

func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, ErrNoSession
	}
	return *s.current, nil
}

func (s *Store) AccessToken() (string, error) {
	current, err := s.Current()
	if err != nil {
		return "", err
	}
	return current.AccessToken, nil
}

// CurrentViewer returns the signed-in actor.
func (s *Store) CurrentViewer(_ context.Context) (user.User, error) {
	current, err := s.Current()
	if err != nil {
		return user.User{}, user.ErrNoUser
	}
	return current.User, nil
}

func (s *Store) publish(ctx context.Context, eventType event_bus.EventType, u user.User) {
	if s.eventBus == nil {
		return
	}
	// The change already happened, so a cancelled request must not suppress the event.
	err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), eventType, event_bus.SessionChanged{
		UserId:  u.Id,
		IsAdmin: u.IsAdmin,
	}))
	if err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
