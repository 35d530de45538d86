package state

import (
	"context"
	"sort"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// SceneStore mirrors the storyboard of the last-loaded project.
type SceneStore struct {
	mu   sync.RWMutex
	repo *repository.SceneRepository
	hub  *Hub

	projectID string
	scenes    []models.Scene
}

func NewSceneStore(repo *repository.SceneRepository, hub *Hub) *SceneStore {
	return &SceneStore{repo: repo, hub: hub}
}

func (s *SceneStore) LoadProject(ctx context.Context, projectID string) ([]models.Scene, error) {
	scenes, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projectID = projectID
	s.scenes = scenes
	s.mu.Unlock()
	return scenes, nil
}

func (s *SceneStore) GetByID(id string) *models.Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.scenes {
		if s.scenes[i].ID == id {
			sc := s.scenes[i]
			return &sc
		}
	}
	return nil
}

func (s *SceneStore) Create(ctx context.Context, projectID, title string) (*models.Scene, error) {
	scene, err := s.repo.Create(ctx, projectID, title, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.projectID == projectID {
		s.scenes = append(s.scenes, *scene)
		sort.SliceStable(s.scenes, func(i, j int) bool {
			return s.scenes[i].Position < s.scenes[j].Position
		})
	}
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityScene, Action: ActionCreated, ID: scene.ID, ScopeID: projectID})
	return scene, nil
}

// Insert shifts siblings in the backend, so the mirror is reloaded rather
// than patched to pick up the new positions.
func (s *SceneStore) Insert(ctx context.Context, projectID, title string, afterPosition int) (*models.Scene, error) {
	scene, err := s.repo.Insert(ctx, projectID, title, afterPosition)
	if err != nil {
		return nil, err
	}

	if err := s.reload(ctx, projectID); err != nil {
		return nil, err
	}

	s.hub.Publish(Event{Entity: EntityScene, Action: ActionReordered, ID: scene.ID, ScopeID: projectID})
	return scene, nil
}

func (s *SceneStore) Update(ctx context.Context, id string, upd models.SceneUpdate) (*models.Scene, error) {
	scene, err := s.repo.Update(ctx, id, upd)
	if err != nil || scene == nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.scenes {
		if s.scenes[i].ID == id {
			s.scenes[i] = *scene
			break
		}
	}
	sort.SliceStable(s.scenes, func(i, j int) bool {
		return s.scenes[i].Position < s.scenes[j].Position
	})
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityScene, Action: ActionUpdated, ID: id, ScopeID: scene.ProjectID})
	return scene, nil
}

// Delete renumbers the survivors in the backend, so the mirror reloads.
func (s *SceneStore) Delete(ctx context.Context, id string) (bool, error) {
	scene, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if scene == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := s.reload(ctx, scene.ProjectID); err != nil {
		return true, err
	}

	s.hub.Publish(Event{Entity: EntityScene, Action: ActionDeleted, ID: id, ScopeID: scene.ProjectID})
	return true, nil
}

func (s *SceneStore) reload(ctx context.Context, projectID string) error {
	s.mu.Lock()
	loaded := s.projectID == projectID
	s.mu.Unlock()
	if !loaded {
		return nil
	}
	_, err := s.LoadProject(ctx, projectID)
	return err
}
