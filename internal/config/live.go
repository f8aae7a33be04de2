package config

import (
	"context"
	"sync"

	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/storage"
)

// LiveSettings is a handle on the settings record with explicit reload.
// It is constructed once per process and passed to whoever needs it.
type LiveSettings struct {
	store storage.Store

	mu          sync.RWMutex
	current     models.PetSettings
	subscribers []func(models.PetSettings)
}

// NewLiveSettings loads the current record from store.
func NewLiveSettings(ctx context.Context, store storage.Store) (*LiveSettings, error) {
	s, err := LoadSettings(ctx, store)
	if err != nil {
		return nil, err
	}
	return &LiveSettings{store: store, current: *s}, nil
}

// Current returns a copy of the last loaded settings.
func (l *LiveSettings) Current() models.PetSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Subscribe registers fn to be called with the new settings after every
// reload that changed them.
func (l *LiveSettings) Subscribe(fn func(models.PetSettings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Reload re-reads the record. Subscribers run only when the value changed.
func (l *LiveSettings) Reload(ctx context.Context) (bool, error) {
	s, err := LoadSettings(ctx, l.store)
	if err != nil {
		return false, err
	}
	return l.set(*s), nil
}

// Update saves s and notifies subscribers if it differs from the current value.
func (l *LiveSettings) Update(ctx context.Context, s models.PetSettings) error {
	if err := SaveSettings(ctx, l.store, &s); err != nil {
		return err
	}
	l.set(s)
	return nil
}

func (l *LiveSettings) set(s models.PetSettings) bool {
	l.mu.Lock()
	if l.current == s {
		l.mu.Unlock()
		return false
	}
	l.current = s
	subs := make([]func(models.PetSettings), len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
	return true
}
