package tracker_api

import (
	"context"
	"sync"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
)

type ClientStub struct {
	mu            sync.RWMutex
	credentials   map[string]string // email -> password
	users         []user.User
	entries       []time_entry.TimeEntry
	token         string
	loginErr      error
	getEntriesErr error
	getUsersErr   error
}

func NewClientStub(token string) *ClientStub {
	return &ClientStub{
		credentials: make(map[string]string),
		token:       token,
	}
}

func (c *ClientStub) Login(ctx context.Context, email string, password string) (LoginResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.loginErr != nil {
		return LoginResponse{}, c.loginErr
	}
	expected, ok := c.credentials[email]
	if !ok || expected != password {
		return LoginResponse{}, ErrInvalidCredentials
	}
	for _, u := range c.users {
		if u.Email == email {
			return LoginResponse{AccessToken: c.token, User: u}, nil
		}
	}
	return LoginResponse{}, ErrInvalidCredentials
}

func (c *ClientStub) GetTimeTrackers(ctx context.Context, accessToken string) ([]time_entry.TimeEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if accessToken != c.token {
		return nil, ErrUnauthenticated
	}
	if c.getEntriesErr != nil {
		return nil, c.getEntriesErr
	}
	result := make([]time_entry.TimeEntry, len(c.entries))
	copy(result, c.entries)
	return result, nil
}

func (c *ClientStub) GetUsers(ctx context.Context, accessToken string) ([]user.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if accessToken != c.token {
		return nil, ErrUnauthenticated
	}
	if c.getUsersErr != nil {
		return nil, c.getUsersErr
	}
	result := make([]user.User, len(c.users))
	copy(result, c.users)
	return result, nil
}

// Helper methods for test setup

func (c *ClientStub) AddUser(u user.User, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, u)
	c.credentials[u.Email] = password
}

func (c *ClientStub) SetEntries(entries []time_entry.TimeEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
}

func (c *ClientStub) SetLoginError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginErr = err
}

func (c *ClientStub) SetGetEntriesError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getEntriesErr = err
}

func (c *ClientStub) SetGetUsersError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getUsersErr = err
}
