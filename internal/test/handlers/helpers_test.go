package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/handlers"
	"hyper-reel-backend/internal/repository"
	"hyper-reel-backend/internal/services"
	"hyper-reel-backend/internal/state"
	"hyper-reel-backend/internal/store"
	"hyper-reel-backend/internal/wavespeed"
)

// newRouter wires the API the way the server does, minus auth and swagger.
func newRouter(t *testing.T) *gin.Engine {
	return newRouterWithWavespeed(t, "")
}

// newRouterWithWavespeed points the generation service at the given Wavespeed
// base URL, usually an httptest server.
func newRouterWithWavespeed(t *testing.T, wavespeedURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	projectStore := state.NewProjectStore(projectsRepo, hub)
	sceneStore := state.NewSceneStore(scenesRepo, hub)
	imageStore := state.NewSceneImageStore(imagesRepo, hub)
	resultStore := state.NewGenerationResultStore(resultsRepo, hub)
	mediaStore := state.NewMediaStore(mediaRepo, hub)
	settingsStore := state.NewSettingsStore(settingsRepo, hub)

	generationService := services.NewGenerationService(
		wavespeed.NewClient(wavespeedURL),
		mediaStore, imageStore, resultStore, settingsStore, "",
	)

	projectsHandler := handlers.NewProjectsHandler(projectStore)
	scenesHandler := handlers.NewScenesHandler(sceneStore)
	imagesHandler := handlers.NewSceneImagesHandler(imageStore, resultStore, generationService)
	mediaHandler := handlers.NewMediaHandler(mediaStore, generationService)
	settingsHandler := handlers.NewSettingsHandler(settingsStore)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PATCH("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	api.GET("/projects/:project_id/scenes", scenesHandler.ListScenes)
	api.POST("/projects/:project_id/scenes", scenesHandler.CreateScene)
	api.PATCH("/scenes/:scene_id", scenesHandler.UpdateScene)
	api.DELETE("/scenes/:scene_id", scenesHandler.DeleteScene)

	api.GET("/scenes/:scene_id/images", imagesHandler.ListSceneImages)
	api.POST("/scenes/:scene_id/images", imagesHandler.CreateSceneImage)
	api.PATCH("/images/:image_id", imagesHandler.UpdateSceneImage)
	api.DELETE("/images/:image_id", imagesHandler.DeleteSceneImage)
	api.GET("/images/:image_id/results", imagesHandler.ListResults)
	api.DELETE("/images/:image_id/results", imagesHandler.ClearResults)
	api.POST("/images/:image_id/generate", imagesHandler.GenerateForImage)

	api.GET("/projects/:project_id/media", mediaHandler.ListMedia)
	api.POST("/projects/:project_id/media", mediaHandler.UploadMedia)
	api.POST("/projects/:project_id/media/generate", mediaHandler.GenerateMedia)
	api.GET("/media/:media_id", mediaHandler.GetMedia)
	api.PATCH("/media/:media_id", mediaHandler.UpdateMedia)
	api.DELETE("/media/:media_id", mediaHandler.DeleteMedia)

	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)
	api.GET("/models", handlers.ListModels)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
