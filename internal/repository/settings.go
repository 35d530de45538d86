package repository

import (
	"context"
	"errors"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

const settingsID = "settings"

// SettingsRepository persists the process-wide singleton settings record.
type SettingsRepository struct {
	store *store.Store
}

func NewSettingsRepository(s *store.Store) *SettingsRepository {
	return &SettingsRepository{store: s}
}

// Load returns the stored settings, or the zero value when none were saved yet.
func (r *SettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := r.store.Get(ctx, store.CollectionSettings, settingsID, &settings)
	if errors.Is(err, store.ErrNotFound) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	return r.store.Put(ctx, store.CollectionSettings, settingsID, &settings, nil)
}
