package weekly_view

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	"github.com/mitchellh/hashstructure/v2"
	log "github.com/sirupsen/logrus"
)

type cacheKey struct {
	selectedDate string
	entriesHash  uint64
	namesHash    uint64
}

type nameLookup struct {
	Names  map[string]user.User
	Viewer *user.User
}

// ViewCache memoizes Build results by selected date and the content of its
// inputs. A cache with size zero builds every time.
type ViewCache struct {
	views *lru.Cache[cacheKey, View]
}

func NewViewCache(size int) (*ViewCache, error) {
	if size <= 0 {
		return &ViewCache{}, nil
	}
	views, err := lru.New[cacheKey, View](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create view cache: %w", err)
	}
	return &ViewCache{views: views}, nil
}

// GetOrBuild returns the cached view for identical inputs or builds and stores a new one.
func (c *ViewCache) GetOrBuild(
	entries []time_entry.TimeEntry,
	dateInput string,
	names map[string]user.User,
	viewer *user.User,
	locale Locale,
) View {
	if c == nil || c.views == nil {
		return Build(entries, dateInput, names, viewer, locale)
	}

	key, err := newCacheKey(entries, dateInput, names, viewer)
	if err != nil {
		log.Warnf("unable to hash weekly view inputs, skipping cache: %v", err)
		return Build(entries, dateInput, names, viewer, locale)
	}

	if view, ok := c.views.Get(key); ok {
		log.Tracef("weekly view cache hit for %s", key.selectedDate)
		return view
	}

	view := Build(entries, dateInput, names, viewer, locale)
	c.views.Add(key, view)
	return view
}

// Purge drops every cached view.
func (c *ViewCache) Purge() {
	if c == nil || c.views == nil {
		return
	}
	c.views.Purge()
}

func (c *ViewCache) Len() int {
	if c == nil || c.views == nil {
		return 0
	}
	return c.views.Len()
}

func newCacheKey(
	entries []time_entry.TimeEntry,
	dateInput string,
	names map[string]user.User,
	viewer *user.User,
) (cacheKey, error) {
	entriesHash, err := hashstructure.Hash(entries, hashstructure.FormatV2, nil)
	if err != nil {
		return cacheKey{}, fmt.Errorf("hash entries: %w", err)
	}
	namesHash, err := hashstructure.Hash(nameLookup{Names: names, Viewer: viewer}, hashstructure.FormatV2, nil)
	if err != nil {
		return cacheKey{}, fmt.Errorf("hash name lookup: %w", err)
	}
	return cacheKey{
		selectedDate: DateKey(strings.TrimSpace(dateInput)),
		entriesHash:  entriesHash,
		namesHash:    namesHash,
	}, nil
}
