package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func TestSceneImageRepository_InsertShiftsSiblings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := e.images.Create(ctx, "s1", title, nil)
		require.NoError(t, err)
	}

	inserted, err := e.images.Insert(ctx, "s1", "between", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted.Position)

	images, err := e.images.ListByScene(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, images, 4)
	for i, img := range images {
		assert.Equal(t, i, img.Position)
	}
	assert.Equal(t, "between", images[2].Title)
}

func TestSceneImageRepository_DeleteClosesGapAndClearsHistory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		img, err := e.images.Create(ctx, "s1", title, nil)
		require.NoError(t, err)
		ids = append(ids, img.ID)
	}
	_, err := e.results.Add(ctx, models.GenerationResult{
		ImageID: ids[0],
		Outputs: []string{"data:image/jpeg;base64,AAA"},
	})
	require.NoError(t, err)

	deleted, err := e.images.Delete(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, deleted)

	images, err := e.images.ListByScene(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, 1, images[1].Position)

	results, err := e.results.ListByImage(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSceneImageRepository_UpdateSelectedOutputIndex(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	image, err := e.images.Create(ctx, "s1", "slot", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, image.SelectedOutputIndex)

	idx := 2
	updated, err := e.images.Update(ctx, image.ID, models.SceneImageUpdate{SelectedOutputIndex: &idx})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SelectedOutputIndex)
}

func TestSceneImageRepository_UpdateMissingReturnsNil(t *testing.T) {
	e := newEnv(t)

	title := "x"
	updated, err := e.images.Update(context.Background(), "nope", models.SceneImageUpdate{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}
