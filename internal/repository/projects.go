package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

type ProjectRepository struct {
	store  *store.Store
	scenes *SceneRepository
	media  *MediaRepository
}

func NewProjectRepository(s *store.Store, scenes *SceneRepository, media *MediaRepository) *ProjectRepository {
	return &ProjectRepository{
		store:  s,
		scenes: scenes,
		media:  media,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, title, thumbnail string) (*models.Project, error) {
	now := nowMillis()
	project := &models.Project{
		ID:        newID(),
		Title:     title,
		Thumbnail: thumbnail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.put(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns nil without error when the id is absent.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.store.Get(ctx, store.CollectionProjects, id, &project)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns every project, most recently updated first.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.store.ListByIndex(ctx, store.CollectionProjects, "updated_at", nil, &projects); err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt > projects[j].UpdatedAt
	})
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, upd models.ProjectUpdate) (*models.Project, error) {
	project, err := r.Get(ctx, id)
	if err != nil || project == nil {
		return nil, err
	}

	if upd.Title != nil {
		project.Title = *upd.Title
	}
	if upd.Thumbnail != nil {
		project.Thumbnail = *upd.Thumbnail
	}
	project.UpdatedAt = nowMillis()

	if err := r.put(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and everything it owns. Children go first so a
// failed cascade aborts before the parent record disappears.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	project, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if project == nil {
		return false, nil
	}

	if err := r.scenes.DeleteByProject(ctx, id); err != nil {
		return false, fmt.Errorf("failed to cascade scenes for project %s: %w", id, err)
	}
	if err := r.media.DeleteByProject(ctx, id); err != nil {
		return false, fmt.Errorf("failed to cascade media for project %s: %w", id, err)
	}

	return r.store.Delete(ctx, store.CollectionProjects, id)
}

func (r *ProjectRepository) put(ctx context.Context, project *models.Project) error {
	return r.store.Put(ctx, store.CollectionProjects, project.ID, project, map[string]any{
		"updated_at": project.UpdatedAt,
	})
}
