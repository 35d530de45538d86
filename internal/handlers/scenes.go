package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/state"
)

type ScenesHandler struct {
	scenes *state.SceneStore
}

func NewScenesHandler(scenes *state.SceneStore) *ScenesHandler {
	return &ScenesHandler{scenes: scenes}
}

// ListScenes godoc
// @Summary     List scenes
// @Description Returns a project's scenes ordered by position
// @Tags        scenes
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.SceneListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/scenes [get]
func (h *ScenesHandler) ListScenes(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	scenes, err := h.scenes.LoadProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list scenes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SceneListResponse{Scenes: scenes})
}

// CreateScene godoc
// @Summary     Create scene
// @Description Appends a scene to the storyboard, or inserts it after the given position
// @Tags        scenes
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateSceneRequest true "Scene fields"
// @Success     200 {object} models.Scene
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/scenes [post]
func (h *ScenesHandler) CreateScene(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req models.CreateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	var (
		scene *models.Scene
		err   error
	)
	if req.AfterPosition != nil {
		scene, err = h.scenes.Insert(c.Request.Context(), projectID, req.Title, *req.AfterPosition)
	} else {
		scene, err = h.scenes.Create(c.Request.Context(), projectID, req.Title)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create scene",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, scene)
}

// UpdateScene godoc
// @Summary     Update scene
// @Tags        scenes
// @Accept      json
// @Produce     json
// @Param       scene_id path string true "Scene ID (UUID)"
// @Param       request body models.SceneUpdate true "Fields to update"
// @Success     200 {object} models.Scene
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /scenes/{scene_id} [patch]
func (h *ScenesHandler) UpdateScene(c *gin.Context) {
	sceneID, ok := pathID(c, "scene_id")
	if !ok {
		return
	}

	var upd models.SceneUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	scene, err := h.scenes.Update(c.Request.Context(), sceneID, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update scene",
			Message: err.Error(),
		})
		return
	}
	if scene == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "scene not found"})
		return
	}

	c.JSON(http.StatusOK, scene)
}

// DeleteScene godoc
// @Summary     Delete scene
// @Description Deletes the scene, its image slots and their histories, then closes the position gap
// @Tags        scenes
// @Produce     json
// @Param       scene_id path string true "Scene ID (UUID)"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /scenes/{scene_id} [delete]
func (h *ScenesHandler) DeleteScene(c *gin.Context) {
	sceneID, ok := pathID(c, "scene_id")
	if !ok {
		return
	}

	deleted, err := h.scenes.Delete(c.Request.Context(), sceneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete scene",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "scene not found"})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: true})
}
