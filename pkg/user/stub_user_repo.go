package user

import (
	"context"
	"sync"
)

type StubUserRepository struct {
	mu    sync.RWMutex
	data  map[string]User
	order []string
	err   error
}

func NewStubUserRepository(users ...User) *StubUserRepository {
	s := &StubUserRepository{data: map[string]User{}}
	for _, u := range users {
		s.Add(u)
	}
	return s
}

func (s *StubUserRepository) Add(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[u.Id]; !ok {
		s.order = append(s.order, u.Id)
	}
	s.data[u.Id] = u
}

// SetError makes every subsequent call fail with err.
func (s *StubUserRepository) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *StubUserRepository) GetUser(ctx context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return User{}, s.err
	}
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepository) GetAllUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	users := make([]User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.data[id])
	}
	return users, nil
}
