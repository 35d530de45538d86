package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hyper-reel-backend/internal/models"
)

func TestProjects_Lifecycle(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/projects", models.CreateProjectRequest{Title: "Road Trip"})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Project
	decode(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Road Trip", created.Title)

	w = doJSON(t, router, "GET", "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.ProjectListResponse
	decode(t, w, &list)
	require.Len(t, list.Projects, 1)

	w = doJSON(t, router, "GET", "/api/v1/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	title := "Road Trip 2024"
	w = doJSON(t, router, "PATCH", "/api/v1/projects/"+created.ID, models.ProjectUpdate{Title: &title})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Project
	decode(t, w, &updated)
	assert.Equal(t, "Road Trip 2024", updated.Title)

	w = doJSON(t, router, "DELETE", "/api/v1/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted models.DeleteResponse
	decode(t, w, &deleted)
	assert.True(t, deleted.Deleted)

	w = doJSON(t, router, "GET", "/api/v1/projects/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_CreateRequiresTitle(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/projects", map[string]string{"thumbnail": "data:..."})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_MalformedIDRejected(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/projects/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_DeleteMissingReturns404(t *testing.T) {
	router := newRouter(t)

	w := doJSON(t, router, "DELETE", "/api/v1/projects/0d4421af-4f4c-4a96-b8f4-8f29295efb4e", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
