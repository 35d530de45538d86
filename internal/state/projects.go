package state

import (
	"context"
	"sync"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/repository"
)

// ProjectStore mirrors the project list (most recently updated first).
type ProjectStore struct {
	mu   sync.RWMutex
	repo *repository.ProjectRepository
	hub  *Hub

	projects []models.Project
}

func NewProjectStore(repo *repository.ProjectRepository, hub *Hub) *ProjectStore {
	return &ProjectStore{repo: repo, hub: hub}
}

func (s *ProjectStore) Load(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return projects, nil
}

func (s *ProjectStore) All() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// GetByID serves the in-memory mirror; it reflects the last successfully
// loaded or mutated state.
func (s *ProjectStore) GetByID(id string) *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p
		}
	}
	return nil
}

func (s *ProjectStore) Create(ctx context.Context, title, thumbnail string) (*models.Project, error) {
	project, err := s.repo.Create(ctx, title, thumbnail)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.projects = append([]models.Project{*project}, s.projects...)
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityProject, Action: ActionCreated, ID: project.ID})
	return project, nil
}

func (s *ProjectStore) Update(ctx context.Context, id string, upd models.ProjectUpdate) (*models.Project, error) {
	project, err := s.repo.Update(ctx, id, upd)
	if err != nil || project == nil {
		return nil, err
	}

	// Updated projects move to the front of the recency ordering.
	s.mu.Lock()
	rest := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if s.projects[i].ID != id {
			rest = append(rest, s.projects[i])
		}
	}
	s.projects = append([]models.Project{*project}, rest...)
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityProject, Action: ActionUpdated, ID: id})
	return project, nil
}

func (s *ProjectStore) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.mu.Lock()
	kept := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if s.projects[i].ID != id {
			kept = append(kept, s.projects[i])
		}
	}
	s.projects = kept
	s.mu.Unlock()

	s.hub.Publish(Event{Entity: EntityProject, Action: ActionDeleted, ID: id})
	return true, nil
}
