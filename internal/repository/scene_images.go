package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

type SceneImageRepository struct {
	store   *store.Store
	results *GenerationResultRepository
}

func NewSceneImageRepository(s *store.Store, results *GenerationResultRepository) *SceneImageRepository {
	return &SceneImageRepository{
		store:   s,
		results: results,
	}
}

func (r *SceneImageRepository) Create(ctx context.Context, sceneID, title string, position *int) (*models.SceneImage, error) {
	pos := 0
	if position != nil {
		pos = *position
	} else {
		siblings, err := r.ListByScene(ctx, sceneID)
		if err != nil {
			return nil, err
		}
		pos = len(siblings)
	}

	image := &models.SceneImage{
		ID:                  newID(),
		SceneID:             sceneID,
		Title:               title,
		Position:            pos,
		SelectedOutputIndex: 0,
		CreatedAt:           nowMillis(),
	}
	if err := r.put(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (r *SceneImageRepository) Get(ctx context.Context, id string) (*models.SceneImage, error) {
	var image models.SceneImage
	err := r.store.Get(ctx, store.CollectionSceneImages, id, &image)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *SceneImageRepository) ListByScene(ctx context.Context, sceneID string) ([]models.SceneImage, error) {
	var images []models.SceneImage
	if err := r.store.ListByIndex(ctx, store.CollectionSceneImages, "scene_id", sceneID, &images); err != nil {
		return nil, err
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	return images, nil
}

func (r *SceneImageRepository) Update(ctx context.Context, id string, upd models.SceneImageUpdate) (*models.SceneImage, error) {
	image, err := r.Get(ctx, id)
	if err != nil || image == nil {
		return nil, err
	}

	if upd.Title != nil {
		image.Title = *upd.Title
	}
	if upd.Position != nil {
		image.Position = *upd.Position
	}
	if upd.SelectedOutputIndex != nil {
		image.SelectedOutputIndex = *upd.SelectedOutputIndex
	}

	if err := r.put(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// Insert mirrors SceneRepository.Insert for image slots within a scene.
func (r *SceneImageRepository) Insert(ctx context.Context, sceneID, title string, afterPosition int) (*models.SceneImage, error) {
	siblings, err := r.ListByScene(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	if afterPosition < 0 || afterPosition >= len(siblings)-1 {
		pos := len(siblings)
		return r.Create(ctx, sceneID, title, &pos)
	}

	for i := len(siblings) - 1; i >= 0; i-- {
		if siblings[i].Position > afterPosition {
			siblings[i].Position++
			if err := r.put(ctx, &siblings[i]); err != nil {
				return nil, fmt.Errorf("failed to shift image %s: %w", siblings[i].ID, err)
			}
		}
	}

	pos := afterPosition + 1
	return r.Create(ctx, sceneID, title, &pos)
}

func (r *SceneImageRepository) Delete(ctx context.Context, id string) (bool, error) {
	image, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if image == nil {
		return false, nil
	}

	if err := r.results.ClearByImage(ctx, id); err != nil {
		return false, fmt.Errorf("failed to cascade results for image %s: %w", id, err)
	}

	deleted, err := r.store.Delete(ctx, store.CollectionSceneImages, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := r.renumber(ctx, image.SceneID); err != nil {
		return true, err
	}
	return true, nil
}

func (r *SceneImageRepository) DeleteByScene(ctx context.Context, sceneID string) error {
	images, err := r.ListByScene(ctx, sceneID)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := r.results.ClearByImage(ctx, image.ID); err != nil {
			return fmt.Errorf("failed to cascade results for image %s: %w", image.ID, err)
		}
		if _, err := r.store.Delete(ctx, store.CollectionSceneImages, image.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SceneImageRepository) renumber(ctx context.Context, sceneID string) error {
	siblings, err := r.ListByScene(ctx, sceneID)
	if err != nil {
		return err
	}
	for i := range siblings {
		if siblings[i].Position != i {
			siblings[i].Position = i
			if err := r.put(ctx, &siblings[i]); err != nil {
				return fmt.Errorf("failed to renumber image %s: %w", siblings[i].ID, err)
			}
		}
	}
	return nil
}

func (r *SceneImageRepository) put(ctx context.Context, image *models.SceneImage) error {
	return r.store.Put(ctx, store.CollectionSceneImages, image.ID, image, map[string]any{
		"scene_id": image.SceneID,
	})
}
