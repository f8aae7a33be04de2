package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/storage"
)

// OpenStorage opens the configured key-value store: Redis when
// DESKPET_REDIS_URL is set, ~/.deskpet/storage.json otherwise.
func OpenStorage() (storage.Store, error) {
	path, err := GlobalStorageFile()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// LoadSettings loads the settings record from the store.
// If no record exists, returns default settings.
func LoadSettings(ctx context.Context, store storage.Store) (*models.PetSettings, error) {
	raw, err := store.Get(ctx, models.SettingsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewPetSettings(), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Start from defaults so fields missing from an older record keep sane values.
	settings := models.NewPetSettings()
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// SaveSettings stores the settings record JSON-encoded.
func SaveSettings(ctx context.Context, store storage.Store, settings *models.PetSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := store.Set(ctx, models.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// ResetSettings overwrites the record with defaults and returns them.
func ResetSettings(ctx context.Context, store storage.Store) (*models.PetSettings, error) {
	defaults := models.NewPetSettings()
	if err := SaveSettings(ctx, store, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}
