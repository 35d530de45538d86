package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/repository"
	"hyper-reel-backend/internal/store"
)

type env struct {
	store    *store.Store
	results  *repository.GenerationResultRepository
	images   *repository.SceneImageRepository
	scenes   *repository.SceneRepository
	media    *repository.MediaRepository
	projects *repository.ProjectRepository
	settings *repository.SettingsRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, store.NewMigrator(st.DB()).Run())

	results := repository.NewGenerationResultRepository(st)
	images := repository.NewSceneImageRepository(st, results)
	scenes := repository.NewSceneRepository(st, images)
	media := repository.NewMediaRepository(st)
	projects := repository.NewProjectRepository(st, scenes, media)
	settings := repository.NewSettingsRepository(st)

	return &env{
		store:    st,
		results:  results,
		images:   images,
		scenes:   scenes,
		media:    media,
		projects: projects,
		settings: settings,
	}
}
