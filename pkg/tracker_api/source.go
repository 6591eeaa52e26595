package tracker_api

import (
	"context"
	"fmt"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
)

// TokenProvider supplies the access token of the signed-in actor.
type TokenProvider interface {
	AccessToken() (string, error)
}

// EntrySource reads time entries from the time tracker API.
type EntrySource struct {
	client Client
	tokens TokenProvider
}

func NewEntrySource(client Client, tokens TokenProvider) *EntrySource {
	return &EntrySource{client: client, tokens: tokens}
}

// ListEntries returns the entries visible to the token owner. The backend
// already limits non-administrators to their own records.
func (s *EntrySource) ListEntries(ctx context.Context, _ user.User) ([]time_entry.TimeEntry, error) {
	token, err := s.tokens.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	return s.client.GetTimeTrackers(ctx, token)
}

// DirectorySource reads the user directory from the time tracker API.
type DirectorySource struct {
	client Client
	tokens TokenProvider
}

func NewDirectorySource(client Client, tokens TokenProvider) *DirectorySource {
	return &DirectorySource{client: client, tokens: tokens}
}

func (s *DirectorySource) ListUsers(ctx context.Context) ([]user.User, error) {
	token, err := s.tokens.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	return s.client.GetUsers(ctx, token)
}
