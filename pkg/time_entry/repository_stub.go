package time_entry

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	entries []TimeEntry
	err     error
}

func NewRepositoryStub(entries ...TimeEntry) *RepositoryStub {
	return &RepositoryStub{entries: entries}
}

func (r *RepositoryStub) GetAll(ctx context.Context) ([]TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	result := make([]TimeEntry, len(r.entries))
	copy(result, r.entries)
	return result, nil
}

func (r *RepositoryStub) GetForUser(ctx context.Context, userId string) ([]TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	var result []TimeEntry
	for _, entry := range r.entries {
		if entry.UserId == userId {
			result = append(result, entry)
		}
	}
	return result, nil
}

// Helper methods for test setup

func (r *RepositoryStub) SetEntries(entries []TimeEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
}

func (r *RepositoryStub) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
