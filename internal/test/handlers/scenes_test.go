package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func mustCreateProject(t *testing.T, router *gin.Engine, title string) models.Project {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/v1/projects", models.CreateProjectRequest{Title: title})
	require.Equal(t, http.StatusOK, w.Code)
	var project models.Project
	decode(t, w, &project)
	return project
}

func TestScenes_CreateAndInsertOrdering(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "storyboard")

	base := "/api/v1/projects/" + project.ID + "/scenes"
	for _, title := range []string{"A", "B", "C"} {
		w := doJSON(t, router, "POST", base, models.CreateSceneRequest{Title: title})
		require.Equal(t, http.StatusOK, w.Code)
	}

	after := 0
	w := doJSON(t, router, "POST", base, models.CreateSceneRequest{Title: "X", AfterPosition: &after})
	require.Equal(t, http.StatusOK, w.Code)
	var inserted models.Scene
	decode(t, w, &inserted)
	assert.Equal(t, 1, inserted.Position)

	w = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.SceneListResponse
	decode(t, w, &list)
	require.Len(t, list.Scenes, 4)

	titles := make([]string, len(list.Scenes))
	for i, sc := range list.Scenes {
		titles[i] = sc.Title
		assert.Equal(t, i, sc.Position)
	}
	assert.Equal(t, []string{"A", "X", "B", "C"}, titles)
}

func TestScenes_DeleteClosesGap(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "storyboard")

	base := "/api/v1/projects/" + project.ID + "/scenes"
	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		w := doJSON(t, router, "POST", base, models.CreateSceneRequest{Title: title})
		require.Equal(t, http.StatusOK, w.Code)
		var scene models.Scene
		decode(t, w, &scene)
		ids = append(ids, scene.ID)
	}

	w := doJSON(t, router, "DELETE", "/api/v1/scenes/"+ids[1], nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.SceneListResponse
	decode(t, w, &list)
	require.Len(t, list.Scenes, 2)
	assert.Equal(t, 0, list.Scenes[0].Position)
	assert.Equal(t, 1, list.Scenes[1].Position)
}

func TestSceneImages_LifecycleWithResults(t *testing.T) {
	router := newRouter(t)
	project := mustCreateProject(t, router, "storyboard")

	w := doJSON(t, router, "POST", "/api/v1/projects/"+project.ID+"/scenes", models.CreateSceneRequest{Title: "scene"})
	require.Equal(t, http.StatusOK, w.Code)
	var scene models.Scene
	decode(t, w, &scene)

	w = doJSON(t, router, "POST", "/api/v1/scenes/"+scene.ID+"/images", models.CreateSceneImageRequest{Title: "slot"})
	require.Equal(t, http.StatusOK, w.Code)
	var image models.SceneImage
	decode(t, w, &image)
	assert.Equal(t, 0, image.Position)

	idx := 1
	w = doJSON(t, router, "PATCH", "/api/v1/images/"+image.ID, models.SceneImageUpdate{SelectedOutputIndex: &idx})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.SceneImage
	decode(t, w, &updated)
	assert.Equal(t, 1, updated.SelectedOutputIndex)

	w = doJSON(t, router, "GET", "/api/v1/images/"+image.ID+"/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results models.GenerationResultListResponse
	decode(t, w, &results)
	assert.Empty(t, results.Results)

	w = doJSON(t, router, "DELETE", "/api/v1/images/"+image.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/scenes/"+scene.ID+"/images", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var images models.SceneImageListResponse
	decode(t, w, &images)
	assert.Empty(t, images.Images)
}
