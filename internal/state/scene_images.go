package state

import (
	"context"
	"sort"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// SceneImageStore mirrors the image slots of the last-loaded scene.
type SceneImageStore struct {
	mu   sync.RWMutex
	repo *repository.SceneImageRepository
	hub  *Hub

	sceneID string
	images  []models.SceneImage
}

func NewSceneImageStore(repo *repository.SceneImageRepository, hub *Hub) *SceneImageStore {
	return &SceneImageStore{repo: repo, hub: hub}
}

func (s *SceneImageStore) LoadScene(ctx context.Context, sceneID string) ([]models.SceneImage, error) {
	images, err := s.repo.ListByScene(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sceneID = sceneID
	s.images = images
	s.mu.Unlock()
	return images, nil
}

func (s *SceneImageStore) GetByID(id string) *models.SceneImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.images {
		if s.images[i].ID == id {
			img := s.images[i]
			return &img
		}
	}
	return nil
}

// Resolve fetches a scene image from the backend, bypassing the mirror.
func (s *SceneImageStore) Resolve(ctx context.Context, id string) (*models.SceneImage, error) {
	return s.repo.Get(ctx, id)
}

func (s *SceneImageStore) Create(ctx context.Context, sceneID, title string) (*models.SceneImage, error) {
	image, err := s.repo.Create(ctx, sceneID, title, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.sceneID == sceneID {
		s.images = append(s.images, *image)
		sort.SliceStable(s.images, func(i, j int) bool {
			return s.images[i].Position < s.images[j].Position
		})
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntitySceneImage, Action: ActionCreated, ID: image.ID, ScopeID: sceneID})
	return image, nil
}

func (s *SceneImageStore) Insert(ctx context.Context, sceneID, title string, afterPosition int) (*models.SceneImage, error) {
	image, err := s.repo.Insert(ctx, sceneID, title, afterPosition)
	if err != nil {
		return nil, err
	}

	if err := s.reload(ctx, sceneID); err != nil {
		return nil, err
	}

	s.hub.Publish(Event{Entity: EntitySceneImage, Action: ActionReordered, ID: image.ID, ScopeID: sceneID})
	return image, nil
}

func (s *SceneImageStore) Update(ctx context.Context, id string, upd models.SceneImageUpdate) (*models.SceneImage, error) {
	image, err := s.repo.Update(ctx, id, upd)
	if err != nil || image == nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.images {
		if s.images[i].ID == id {
			s.images[i] = *image
			break
		}
	}
	sort.SliceStable(s.images, func(i, j int) bool {
		return s.images[i].Position < s.images[j].Position
	})
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntitySceneImage, Action: ActionUpdated, ID: id, ScopeID: image.SceneID})
	return image, nil
}

func (s *SceneImageStore) Delete(ctx context.Context, id string) (bool, error) {
	image, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if image == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := s.reload(ctx, image.SceneID); err != nil {
		return true, err
	}

	s.hub.Publish(Event{Entity: EntitySceneImage, Action: ActionDeleted, ID: id, ScopeID: image.SceneID})
	return true, nil
}

func (s *SceneImageStore) reload(ctx context.Context, sceneID string) error {
	s.mu.Lock()
	loaded := s.sceneID == sceneID
	s.mu.Unlock()
	if !loaded {
		return nil
	}
	_, err := s.LoadScene(ctx, sceneID)
	return err
}
