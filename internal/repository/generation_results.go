package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

// GenerationResultRepository stores per-image generation history. Records are
// keyed by the composite (imageId, timestamp).
type GenerationResultRepository struct {
	store *store.Store
}

func NewGenerationResultRepository(s *store.Store) *GenerationResultRepository {
	return &GenerationResultRepository{store: s}
}

func resultKey(imageID string, timestamp int64) string {
	return fmt.Sprintf("%s:%d", imageID, timestamp)
}

// Add persists one batch of outputs. A zero timestamp is stamped with the
// current time. Two batches landing in the same millisecond would share a
// key, so the timestamp is bumped until the key is free.
func (r *GenerationResultRepository) Add(ctx context.Context, result models.GenerationResult) (*models.GenerationResult, error) {
	if result.Timestamp == 0 {
		result.Timestamp = nowMillis()
	}
	for {
		var existing models.GenerationResult
		err := r.store.Get(ctx, store.CollectionGenerationResults,
			resultKey(result.ImageID, result.Timestamp), &existing)
		if errors.Is(err, store.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		result.Timestamp++
	}
	err := r.store.Put(ctx, store.CollectionGenerationResults,
		resultKey(result.ImageID, result.Timestamp), &result, map[string]any{
			"image_id": result.ImageID,
		})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByImage returns the image's generation history, newest first.
func (r *GenerationResultRepository) ListByImage(ctx context.Context, imageID string) ([]models.GenerationResult, error) {
	var results []models.GenerationResult
	if err := r.store.ListByIndex(ctx, store.CollectionGenerationResults, "image_id", imageID, &results); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp > results[j].Timestamp
	})
	return results, nil
}

func (r *GenerationResultRepository) Delete(ctx context.Context, imageID string, timestamp int64) (bool, error) {
	return r.store.Delete(ctx, store.CollectionGenerationResults, resultKey(imageID, timestamp))
}

// ClearByImage drops the image's entire history.
func (r *GenerationResultRepository) ClearByImage(ctx context.Context, imageID string) error {
	results, err := r.ListByImage(ctx, imageID)
	if err != nil {
		return err
	}
	for _, result := range results {
		if _, err := r.store.Delete(ctx, store.CollectionGenerationResults,
			resultKey(result.ImageID, result.Timestamp)); err != nil {
			return err
		}
	}
	return nil
}
