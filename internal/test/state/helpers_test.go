package state_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/repository"
	"hyper-reel-backend/internal/state"
	"hyper-reel-backend/internal/store"
)

type env struct {
	hub      *state.Hub
	projects *state.ProjectStore
	scenes   *state.SceneStore
	images   *state.SceneImageStore
	results  *state.GenerationResultStore
	media    *state.MediaStore
	settings *state.SettingsStore
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, store.NewMigrator(st.DB()).Run())

	resultsRepo := repository.NewGenerationResultRepository(st)
	imagesRepo := repository.NewSceneImageRepository(st, resultsRepo)
	scenesRepo := repository.NewSceneRepository(st, imagesRepo)
	mediaRepo := repository.NewMediaRepository(st)
	projectsRepo := repository.NewProjectRepository(st, scenesRepo, mediaRepo)
	settingsRepo := repository.NewSettingsRepository(st)

	hub := state.NewHub()
	return &env{
		hub:      hub,
		projects: state.NewProjectStore(projectsRepo, hub),
		scenes:   state.NewSceneStore(scenesRepo, hub),
		images:   state.NewSceneImageStore(imagesRepo, hub),
		results:  state.NewGenerationResultStore(resultsRepo, hub),
		media:    state.NewMediaStore(mediaRepo, hub),
		settings: state.NewSettingsStore(settingsRepo, hub),
	}
}

// drain collects every event currently buffered for the subscriber.
func drain(ch <-chan state.Event) []state.Event {
	var events []state.Event
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}
