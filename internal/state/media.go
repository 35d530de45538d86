package state

import (
	"context"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// MediaStore mirrors the media library of the last-loaded project.
type MediaStore struct {
	mu   sync.RWMutex
	repo *repository.MediaRepository
	hub  *Hub

	projectID string
	items     []models.MediaItem
}

func NewMediaStore(repo *repository.MediaRepository, hub *Hub) *MediaStore {
	return &MediaStore{repo: repo, hub: hub}
}

func (s *MediaStore) LoadProject(ctx context.Context, projectID string) ([]models.MediaItem, error) {
	items, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projectID = projectID
	s.items = items
	s.mu.Unlock()
	return items, nil
}

func (s *MediaStore) GetByID(id string) *models.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item
		}
	}
	return nil
}

// Resolve fetches a media item from the backend, bypassing the mirror. Used
// when an item outside the loaded scope must be looked up (e.g. generation
// inputs).
func (s *MediaStore) Resolve(ctx context.Context, id string) (*models.MediaItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *MediaStore) CreateUpload(ctx context.Context, projectID, imageData string, tags []string) (*models.MediaItem, error) {
	item, err := s.repo.CreateUpload(ctx, projectID, imageData, tags)
	if err != nil {
		return nil, err
	}
	s.prepend(projectID, item)
	s.hub.Publish(Event{Entity: EntityMedia, Action: ActionCreated, ID: item.ID, ScopeID: projectID})
	return item, nil
}

func (s *MediaStore) CreateGeneration(ctx context.Context, projectID, imageData string, meta models.GenerationMeta) (*models.MediaItem, error) {
	item, err := s.repo.CreateGeneration(ctx, projectID, imageData, meta)
	if err != nil {
		return nil, err
	}
	s.prepend(projectID, item)
	s.hub.Publish(Event{Entity: EntityMedia, Action: ActionCreated, ID: item.ID, ScopeID: projectID})
	return item, nil
}

func (s *MediaStore) Update(ctx context.Context, id string, upd models.MediaUpdate) (*models.MediaItem, error) {
	item, err := s.repo.Update(ctx, id, upd)
	if err != nil || item == nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *item
			break
		}
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityMedia, Action: ActionUpdated, ID: id, ScopeID: item.ProjectID})
	return item, nil
}

// Delete reloads the scope afterwards: the backend sweep may have rewritten
// sibling inputImageIds, which a simple filter would miss.
func (s *MediaStore) Delete(ctx context.Context, id string) (bool, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.mu.Lock()
	loaded := s.projectID == item.ProjectID
	s.mu.Unlock()
	if loaded {
		if _, err := s.LoadProject(ctx, item.ProjectID); err != nil {
			return true, err
		}
	}

	s.hub.Publish(Event{Entity: EntityMedia, Action: ActionDeleted, ID: id, ScopeID: item.ProjectID})
	return true, nil
}

func (s *MediaStore) prepend(projectID string, item *models.MediaItem) {
	s.mu.Lock()
	if s.projectID == projectID {
		s.items = append([]models.MediaItem{*item}, s.items...)
	}
	s.mu.Unlock()
}
