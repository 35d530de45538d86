package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

type SceneRepository struct {
	store  *store.Store
	images *SceneImageRepository
}

func NewSceneRepository(s *store.Store, images *SceneImageRepository) *SceneRepository {
	return &SceneRepository{
		store:  s,
		images: images,
	}
}

// Create appends a scene to the project's storyboard. When position is nil it
// defaults to the current sibling count, keeping positions contiguous.
func (r *SceneRepository) Create(ctx context.Context, projectID, title string, position *int) (*models.Scene, error) {
	pos := 0
	if position != nil {
		pos = *position
	} else {
		siblings, err := r.ListByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		pos = len(siblings)
	}

	scene := &models.Scene{
		ID:        newID(),
		ProjectID: projectID,
		Title:     title,
		Position:  pos,
		CreatedAt: nowMillis(),
	}
	if err := r.put(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

func (r *SceneRepository) Get(ctx context.Context, id string) (*models.Scene, error) {
	var scene models.Scene
	err := r.store.Get(ctx, store.CollectionScenes, id, &scene)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scene, nil
}

// ListByProject returns the project's scenes in storyboard order.
func (r *SceneRepository) ListByProject(ctx context.Context, projectID string) ([]models.Scene, error) {
	var scenes []models.Scene
	if err := r.store.ListByIndex(ctx, store.CollectionScenes, "project_id", projectID, &scenes); err != nil {
		return nil, err
	}
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].Position < scenes[j].Position
	})
	return scenes, nil
}

func (r *SceneRepository) Update(ctx context.Context, id string, upd models.SceneUpdate) (*models.Scene, error) {
	scene, err := r.Get(ctx, id)
	if err != nil || scene == nil {
		return nil, err
	}

	if upd.Title != nil {
		scene.Title = *upd.Title
	}
	if upd.Position != nil {
		scene.Position = *upd.Position
	}
	if upd.SelectedImageID != nil {
		scene.SelectedImageID = *upd.SelectedImageID
	}

	if err := r.put(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

// Insert places a new scene directly after afterPosition, shifting every
// sibling beyond it up by one first so no two siblings ever share a position.
// afterPosition of -1 or beyond the last sibling appends at the end.
func (r *SceneRepository) Insert(ctx context.Context, projectID, title string, afterPosition int) (*models.Scene, error) {
	siblings, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if afterPosition < 0 || afterPosition >= len(siblings)-1 {
		pos := len(siblings)
		return r.Create(ctx, projectID, title, &pos)
	}

	for i := len(siblings) - 1; i >= 0; i-- {
		if siblings[i].Position > afterPosition {
			siblings[i].Position++
			if err := r.put(ctx, &siblings[i]); err != nil {
				return nil, fmt.Errorf("failed to shift scene %s: %w", siblings[i].ID, err)
			}
		}
	}

	pos := afterPosition + 1
	return r.Create(ctx, projectID, title, &pos)
}

// Delete removes the scene, cascades to its images, and renumbers the
// surviving siblings so positions stay a gap-free 0..n-1.
func (r *SceneRepository) Delete(ctx context.Context, id string) (bool, error) {
	scene, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if scene == nil {
		return false, nil
	}

	if err := r.images.DeleteByScene(ctx, id); err != nil {
		return false, fmt.Errorf("failed to cascade images for scene %s: %w", id, err)
	}

	deleted, err := r.store.Delete(ctx, store.CollectionScenes, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := r.renumber(ctx, scene.ProjectID); err != nil {
		return true, err
	}
	return true, nil
}

// DeleteByProject removes every scene of a project, used by the project
// cascade. No renumbering: the whole sibling set goes away.
func (r *SceneRepository) DeleteByProject(ctx context.Context, projectID string) error {
	scenes, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, scene := range scenes {
		if err := r.images.DeleteByScene(ctx, scene.ID); err != nil {
			return fmt.Errorf("failed to cascade images for scene %s: %w", scene.ID, err)
		}
		if _, err := r.store.Delete(ctx, store.CollectionScenes, scene.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SceneRepository) renumber(ctx context.Context, projectID string) error {
	siblings, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range siblings {
		if siblings[i].Position != i {
			siblings[i].Position = i
			if err := r.put(ctx, &siblings[i]); err != nil {
				return fmt.Errorf("failed to renumber scene %s: %w", siblings[i].ID, err)
			}
		}
	}
	return nil
}

func (r *SceneRepository) put(ctx context.Context, scene *models.Scene) error {
	return r.store.Put(ctx, store.CollectionScenes, scene.ID, scene, map[string]any{
		"project_id": scene.ProjectID,
	})
}
