package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func TestGenerationResultRepository_AddStampsZeroTimestamp(t *testing.T) {
	e := newEnv(t)

	added, err := e.results.Add(context.Background(), models.GenerationResult{
		ImageID: "img1",
		Outputs: []string{"data:image/jpeg;base64,AAA"},
	})
	require.NoError(t, err)
	assert.NotZero(t, added.Timestamp)
}

func TestGenerationResultRepository_AddKeepsSameMillisecondBatches(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.results.Add(ctx, models.GenerationResult{
		ImageID:   "img1",
		Outputs:   []string{"data:image/jpeg;base64,AAA"},
		Timestamp: 100,
	})
	require.NoError(t, err)

	second, err := e.results.Add(ctx, models.GenerationResult{
		ImageID:   "img1",
		Outputs:   []string{"data:image/jpeg;base64,BBB"},
		Timestamp: 100,
	})
	require.NoError(t, err)

	// The colliding key is bumped forward instead of overwriting the first batch.
	assert.Equal(t, int64(100), first.Timestamp)
	assert.Equal(t, int64(101), second.Timestamp)

	results, err := e.results.ListByImage(ctx, "img1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"data:image/jpeg;base64,BBB"}, results[0].Outputs)
	assert.Equal(t, []string{"data:image/jpeg;base64,AAA"}, results[1].Outputs)
}

func TestGenerationResultRepository_ListNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, ts := range []int64{100, 300, 200} {
		_, err := e.results.Add(ctx, models.GenerationResult{
			ImageID:   "img1",
			Outputs:   []string{"data:image/jpeg;base64,AAA"},
			Timestamp: ts,
		})
		require.NoError(t, err)
	}
	_, err := e.results.Add(ctx, models.GenerationResult{
		ImageID:   "other",
		Outputs:   []string{"data:image/jpeg;base64,BBB"},
		Timestamp: 999,
	})
	require.NoError(t, err)

	results, err := e.results.ListByImage(ctx, "img1")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, int64(300), results[0].Timestamp)
	assert.Equal(t, int64(200), results[1].Timestamp)
	assert.Equal(t, int64(100), results[2].Timestamp)
}

func TestGenerationResultRepository_DeleteByCompositeKey(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.results.Add(ctx, models.GenerationResult{
		ImageID:   "img1",
		Outputs:   []string{"data:image/jpeg;base64,AAA"},
		Timestamp: 100,
	})
	require.NoError(t, err)

	deleted, err := e.results.Delete(ctx, "img1", 100)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = e.results.Delete(ctx, "img1", 100)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGenerationResultRepository_ClearByImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, ts := range []int64{1, 2, 3} {
		_, err := e.results.Add(ctx, models.GenerationResult{
			ImageID:   "img1",
			Outputs:   []string{"data:image/jpeg;base64,AAA"},
			Timestamp: ts,
		})
		require.NoError(t, err)
	}

	require.NoError(t, e.results.ClearByImage(ctx, "img1"))

	results, err := e.results.ListByImage(ctx, "img1")
	require.NoError(t, err)
	assert.Empty(t, results)
}
