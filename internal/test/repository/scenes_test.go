package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func sceneTitles(scenes []models.Scene) []string {
	titles := make([]string, len(scenes))
	for i, sc := range scenes {
		titles[i] = sc.Title
	}
	return titles
}

func assertContiguousScenes(t *testing.T, scenes []models.Scene) {
	t.Helper()
	for i, sc := range scenes {
		assert.Equal(t, i, sc.Position, "scene %q", sc.Title)
	}
}

func TestSceneRepository_CreateAppendsAtEnd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := e.scenes.Create(ctx, "p1", title, nil)
		require.NoError(t, err)
	}

	scenes, err := e.scenes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, sceneTitles(scenes))
	assertContiguousScenes(t, scenes)
}

func TestSceneRepository_InsertShiftsSiblings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := e.scenes.Create(ctx, "p1", title, nil)
		require.NoError(t, err)
	}

	inserted, err := e.scenes.Insert(ctx, "p1", "X", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted.Position)

	scenes, err := e.scenes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "X", "B", "C"}, sceneTitles(scenes))
	assertContiguousScenes(t, scenes)
}

func TestSceneRepository_InsertAfterLastAppends(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B"} {
		_, err := e.scenes.Create(ctx, "p1", title, nil)
		require.NoError(t, err)
	}

	inserted, err := e.scenes.Insert(ctx, "p1", "X", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted.Position)

	inserted, err = e.scenes.Insert(ctx, "p1", "Y", -1)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted.Position)

	scenes, err := e.scenes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "X", "Y"}, sceneTitles(scenes))
	assertContiguousScenes(t, scenes)
}

func TestSceneRepository_InsertIntoEmptyProject(t *testing.T) {
	e := newEnv(t)

	inserted, err := e.scenes.Insert(context.Background(), "p1", "A", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted.Position)
}

func TestSceneRepository_DeleteClosesGap(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		sc, err := e.scenes.Create(ctx, "p1", title, nil)
		require.NoError(t, err)
		ids = append(ids, sc.ID)
	}

	deleted, err := e.scenes.Delete(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, deleted)

	scenes, err := e.scenes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, sceneTitles(scenes))
	assertContiguousScenes(t, scenes)
}

func TestSceneRepository_DeleteCascadesToImagesAndResults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	scene, err := e.scenes.Create(ctx, "p1", "A", nil)
	require.NoError(t, err)
	image, err := e.images.Create(ctx, scene.ID, "slot 1", nil)
	require.NoError(t, err)
	_, err = e.results.Add(ctx, models.GenerationResult{
		ImageID: image.ID,
		Outputs: []string{"data:image/jpeg;base64,AAA"},
		Prompt:  "a boat",
	})
	require.NoError(t, err)

	deleted, err := e.scenes.Delete(ctx, scene.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	images, err := e.images.ListByScene(ctx, scene.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	results, err := e.results.ListByImage(ctx, image.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSceneRepository_DeleteMissingReturnsFalse(t *testing.T) {
	e := newEnv(t)

	deleted, err := e.scenes.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSceneRepository_GetMissingReturnsNil(t *testing.T) {
	e := newEnv(t)

	scene, err := e.scenes.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, scene)
}

func TestSceneRepository_UpdateMergesFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	scene, err := e.scenes.Create(ctx, "p1", "A", nil)
	require.NoError(t, err)

	title := "Opening shot"
	selected := "img-1"
	updated, err := e.scenes.Update(ctx, scene.ID, models.SceneUpdate{
		Title:           &title,
		SelectedImageID: &selected,
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening shot", updated.Title)
	assert.Equal(t, "img-1", updated.SelectedImageID)
	assert.Equal(t, scene.Position, updated.Position)

	updated, err = e.scenes.Update(ctx, scene.ID, models.SceneUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Opening shot", updated.Title)
}

func TestSceneRepository_ProjectsAreIsolated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.scenes.Create(ctx, "p1", "A", nil)
	require.NoError(t, err)
	other, err := e.scenes.Create(ctx, "p2", "B", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, other.Position)

	scenes, err := e.scenes.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, sceneTitles(scenes))
}
