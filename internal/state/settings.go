package state

import (
	"context"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// SettingsStore holds the singleton settings record, loaded at startup and
// persisted on change.
type SettingsStore struct {
	mu   sync.RWMutex
	repo *repository.SettingsRepository
	hub  *Hub

	settings models.Settings
}

func NewSettingsStore(repo *repository.SettingsRepository, hub *Hub) *SettingsStore {
	return &SettingsStore{repo: repo, hub: hub}
}

func (s *SettingsStore) Load(ctx context.Context) (models.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return settings, nil
}

func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsStore) Save(ctx context.Context, settings models.Settings) error {
	if err := s.repo.Save(ctx, settings); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntitySettings, Action: ActionUpdated})
	return nil
}

// APIKey returns the stored Wavespeed key, empty when unset.
func (s *SettingsStore) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.WavespeedAPIKey
}
