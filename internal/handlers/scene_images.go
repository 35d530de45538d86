package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/services"
	"hyper-reel-backend/internal/state"
)

type SceneImagesHandler struct {
	images     *state.SceneImageStore
	results    *state.GenerationResultStore
	generation *services.GenerationService
}

func NewSceneImagesHandler(
	images *state.SceneImageStore,
	results *state.GenerationResultStore,
	generation *services.GenerationService,
) *SceneImagesHandler {
	return &SceneImagesHandler{images: images, results: results, generation: generation}
}

// ListSceneImages godoc
// @Summary     List scene images
// @Description Returns a scene's image slots ordered by position
// @Tags        scene-images
// @Produce     json
// @Param       scene_id path string true "Scene ID (UUID)"
// @Success     200 {object} models.SceneImageListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /scenes/{scene_id}/images [get]
func (h *SceneImagesHandler) ListSceneImages(c *gin.Context) {
	sceneID, ok := pathID(c, "scene_id")
	if !ok {
		return
	}

	images, err := h.images.LoadScene(c.Request.Context(), sceneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list scene images",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SceneImageListResponse{Images: images})
}

// CreateSceneImage godoc
// @Summary     Create scene image
// @Description Appends an image slot to the scene, or inserts it after the given position
// @Tags        scene-images
// @Accept      json
// @Produce     json
// @Param       scene_id path string true "Scene ID (UUID)"
// @Param       request body models.CreateSceneImageRequest true "Image slot fields"
// @Success     200 {object} models.SceneImage
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /scenes/{scene_id}/images [post]
func (h *SceneImagesHandler) CreateSceneImage(c *gin.Context) {
	sceneID, ok := pathID(c, "scene_id")
	if !ok {
		return
	}

	var req models.CreateSceneImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	var (
		image *models.SceneImage
		err   error
	)
	if req.AfterPosition != nil {
		image, err = h.images.Insert(c.Request.Context(), sceneID, req.Title, *req.AfterPosition)
	} else {
		image, err = h.images.Create(c.Request.Context(), sceneID, req.Title)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create scene image",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, image)
}

// UpdateSceneImage godoc
// @Summary     Update scene image
// @Tags        scene-images
// @Accept      json
// @Produce     json
// @Param       image_id path string true "Scene image ID (UUID)"
// @Param       request body models.SceneImageUpdate true "Fields to update"
// @Success     200 {object} models.SceneImage
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id} [patch]
func (h *SceneImagesHandler) UpdateSceneImage(c *gin.Context) {
	imageID, ok := pathID(c, "image_id")
	if !ok {
		return
	}

	var upd models.SceneImageUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	image, err := h.images.Update(c.Request.Context(), imageID, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update scene image",
			Message: err.Error(),
		})
		return
	}
	if image == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "scene image not found"})
		return
	}

	c.JSON(http.StatusOK, image)
}

// DeleteSceneImage godoc
// @Summary     Delete scene image
// @Description Deletes the image slot and its generation history, then closes the position gap
// @Tags        scene-images
// @Produce     json
// @Param       image_id path string true "Scene image ID (UUID)"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id} [delete]
func (h *SceneImagesHandler) DeleteSceneImage(c *gin.Context) {
	imageID, ok := pathID(c, "image_id")
	if !ok {
		return
	}

	deleted, err := h.images.Delete(c.Request.Context(), imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete scene image",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "scene image not found"})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: true})
}

// ListResults godoc
// @Summary     List generation results
// @Description Returns the image slot's generation history, newest first
// @Tags        scene-images
// @Produce     json
// @Param       image_id path string true "Scene image ID (UUID)"
// @Success     200 {object} models.GenerationResultListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id}/results [get]
func (h *SceneImagesHandler) ListResults(c *gin.Context) {
	imageID, ok := pathID(c, "image_id")
	if !ok {
		return
	}

	results, err := h.results.LoadImage(c.Request.Context(), imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list generation results",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GenerationResultListResponse{Results: results})
}

// ClearResults godoc
// @Summary     Clear generation results
// @Description Deletes the image slot's entire generation history
// @Tags        scene-images
// @Produce     json
// @Param       image_id path string true "Scene image ID (UUID)"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /images/{image_id}/results [delete]
func (h *SceneImagesHandler) ClearResults(c *gin.Context) {
	imageID, ok := pathID(c, "image_id")
	if !ok {
		return
	}

	if err := h.results.Clear(c.Request.Context(), imageID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to clear generation results",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: true})
}

// GenerateForImage godoc
// @Summary     Generate images for a scene image
// @Description Runs one Wavespeed generation and appends the batch to the slot's history
// @Tags        scene-images
// @Accept      json
// @Produce     json
// @Param       image_id path string true "Scene image ID (UUID)"
// @Param       request body models.GenerateRequest true "Generation command"
// @Success     200 {object} models.GenerationResult
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /images/{image_id}/generate [post]
func (h *SceneImagesHandler) GenerateForImage(c *gin.Context) {
	imageID, ok := pathID(c, "image_id")
	if !ok {
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	result, err := h.generation.GenerateForSceneImage(c.Request.Context(), imageID, req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "generation failed",
			Message: err.Error(),
		})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "scene image not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}
