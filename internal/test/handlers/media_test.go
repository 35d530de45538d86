package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func TestMedia_UploadAndList(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "library")

	base := "/api/v1/projects/" + project.ID + "/media"
	w := doJSON(t, router, "POST", base, models.UploadMediaRequest{
		ImageData: "data:image/png;base64,abc",
		Tags:      []string{"moodboard"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var item models.MediaItem
	decode(t, w, &item)
	assert.Equal(t, models.MediaTypeUpload, item.Type)
	assert.Nil(t, item.Generation)

	w = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.MediaListResponse
	decode(t, w, &list)
	require.Len(t, list.Media, 1)
	assert.Equal(t, item.ID, list.Media[0].ID)
}

func TestMedia_UploadRequiresImageData(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "library")

	w := doJSON(t, router, "POST", "/api/v1/projects/"+project.ID+"/media", models.UploadMediaRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMedia_UpdateAndDelete(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "library")

	w := doJSON(t, router, "POST", "/api/v1/projects/"+project.ID+"/media", models.UploadMediaRequest{
		ImageData: "data:image/png;base64,abc",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var item models.MediaItem
	decode(t, w, &item)

	archived := true
	w = doJSON(t, router, "PATCH", "/api/v1/media/"+item.ID, models.MediaUpdate{Archived: &archived})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.MediaItem
	decode(t, w, &updated)
	assert.True(t, updated.Archived)

	w = doJSON(t, router, "DELETE", "/api/v1/media/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/media/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettings_KeyIsMasked(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings models.SettingsResponse
	decode(t, w, &settings)
	assert.False(t, settings.HasWavespeedAPIKey)

	key := "ws-secret-key"
	w = doJSON(t, router, "PUT", "/api/v1/settings", models.UpdateSettingsRequest{WavespeedAPIKey: &key})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "ws-secret-key")

	w = doJSON(t, router, "GET", "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &settings)
	assert.True(t, settings.HasWavespeedAPIKey)
	assert.NotContains(t, w.Body.String(), "ws-secret-key")
}

func TestModels_ListsRegistry(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/models", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.ModelListResponse
	decode(t, w, &list)
	require.Len(t, list.Models, 2)
	assert.Equal(t, "qwen-image-edit-plus", list.Models[0].ID)
	assert.Equal(t, "wan-2.2-text-to-image", list.Models[1].ID)
}
