package state

import (
	"context"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// GenerationResultStore mirrors the generation history of the last-loaded
// scene image, plus the in-flight flag the UI reads while a call runs.
type GenerationResultStore struct {
	mu   sync.RWMutex
	repo *repository.GenerationResultRepository
	hub  *Hub

	imageID    string
	results    []models.GenerationResult
	generating bool
}

func NewGenerationResultStore(repo *repository.GenerationResultRepository, hub *Hub) *GenerationResultStore {
	return &GenerationResultStore{repo: repo, hub: hub}
}

func (s *GenerationResultStore) LoadImage(ctx context.Context, imageID string) ([]models.GenerationResult, error) {
	results, err := s.repo.ListByImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.imageID = imageID
	s.results = results
	s.mu.Unlock()
	return results, nil
}

func (s *GenerationResultStore) Add(ctx context.Context, result models.GenerationResult) (*models.GenerationResult, error) {
	added, err := s.repo.Add(ctx, result)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.imageID == added.ImageID {
		s.results = append([]models.GenerationResult{*added}, s.results...)
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityGenerationResult, Action: ActionCreated, ScopeID: added.ImageID})
	return added, nil
}

func (s *GenerationResultStore) Clear(ctx context.Context, imageID string) error {
	if err := s.repo.ClearByImage(ctx, imageID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.imageID == imageID {
		s.results = nil
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityGenerationResult, Action: ActionDeleted, ScopeID: imageID})
	return nil
}

func (s *GenerationResultStore) SetGenerating(generating bool) {
	s.mu.Lock()
	s.generating = generating
	s.mu.Unlock()
}

func (s *GenerationResultStore) IsGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}
