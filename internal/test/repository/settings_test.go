package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func TestSettingsRepository_LoadDefaultsToZeroValue(t *testing.T) {
	e := newEnv(t)

	settings, err := e.settings.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Settings{}, settings)
}

func TestSettingsRepository_SaveLoadRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	saved := models.Settings{
		WavespeedAPIKey:             "ws-key",
		MediaViewerSidebarCollapsed: true,
	}
	require.NoError(t, e.settings.Save(ctx, saved))

	loaded, err := e.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// Saving again replaces the singleton rather than adding a second record.
	saved.WavespeedAPIKey = ""
	require.NoError(t, e.settings.Save(ctx, saved))
	loaded, err = e.settings.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.WavespeedAPIKey)
	assert.True(t, loaded.MediaViewerSidebarCollapsed)
}
