package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/store"
)

type MediaRepository struct {
	store *store.Store
}

func NewMediaRepository(s *store.Store) *MediaRepository {
	return &MediaRepository{store: s}
}

func (r *MediaRepository) CreateUpload(ctx context.Context, projectID, imageData string, tags []string) (*models.MediaItem, error) {
	return r.create(ctx, projectID, models.MediaTypeUpload, imageData, tags, nil)
}

func (r *MediaRepository) CreateGeneration(ctx context.Context, projectID, imageData string, meta models.GenerationMeta) (*models.MediaItem, error) {
	return r.create(ctx, projectID, models.MediaTypeGeneration, imageData, nil, &meta)
}

func (r *MediaRepository) create(ctx context.Context, projectID string, mediaType models.MediaType, imageData string, tags []string, meta *models.GenerationMeta) (*models.MediaItem, error) {
	now := nowMillis()
	item := &models.MediaItem{
		ID:         newID(),
		ProjectID:  projectID,
		Type:       mediaType,
		ImageData:  imageData,
		Tags:       tags,
		Generation: meta,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *MediaRepository) Get(ctx context.Context, id string) (*models.MediaItem, error) {
	var item models.MediaItem
	err := r.store.Get(ctx, store.CollectionMedia, id, &item)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByProject returns the project's media, most recent first.
func (r *MediaRepository) ListByProject(ctx context.Context, projectID string) ([]models.MediaItem, error) {
	var items []models.MediaItem
	if err := r.store.ListByIndex(ctx, store.CollectionMedia, "project_id", projectID, &items); err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

func (r *MediaRepository) Update(ctx context.Context, id string, upd models.MediaUpdate) (*models.MediaItem, error) {
	item, err := r.Get(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	if upd.Archived != nil {
		item.Archived = *upd.Archived
	}
	if upd.Tags != nil {
		item.Tags = *upd.Tags
	}
	if upd.InputImageIDs != nil && item.Generation != nil {
		item.Generation.InputImageIDs = *upd.InputImageIDs
	}
	item.UpdatedAt = nowMillis()

	if err := r.put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete prunes every weak reference to the item from its project's media,
// then removes the item itself. Pruning first means a failed sweep never
// leaves a dangling id behind a completed delete.
func (r *MediaRepository) Delete(ctx context.Context, id string) (bool, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	if err := r.pruneReferences(ctx, item.ProjectID, id); err != nil {
		return false, err
	}

	return r.store.Delete(ctx, store.CollectionMedia, id)
}

// DeleteByProject removes every media item of a project, used by the project
// cascade. No reference sweep: the referencing items are going away too.
func (r *MediaRepository) DeleteByProject(ctx context.Context, projectID string) error {
	items, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := r.store.Delete(ctx, store.CollectionMedia, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// pruneReferences rewrites the inputImageIds of every project sibling that
// references deletedID. O(n) over project media; no reverse index is kept.
func (r *MediaRepository) pruneReferences(ctx context.Context, projectID, deletedID string) error {
	siblings, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range siblings {
		item := &siblings[i]
		if item.Generation == nil || !slices.Contains(item.Generation.InputImageIDs, deletedID) {
			continue
		}
		pruned := make([]string, 0, len(item.Generation.InputImageIDs)-1)
		for _, ref := range item.Generation.InputImageIDs {
			if ref != deletedID {
				pruned = append(pruned, ref)
			}
		}
		item.Generation.InputImageIDs = pruned
		item.UpdatedAt = nowMillis()
		if err := r.put(ctx, item); err != nil {
			return fmt.Errorf("failed to prune reference from media %s: %w", item.ID, err)
		}
	}
	return nil
}

func (r *MediaRepository) put(ctx context.Context, item *models.MediaItem) error {
	return r.store.Put(ctx, store.CollectionMedia, item.ID, item, map[string]any{
		"project_id": item.ProjectID,
		"created_at": item.CreatedAt,
	})
}
