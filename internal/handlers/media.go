package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/services"
	"hyper-reel-backend/internal/state"
)

type MediaHandler struct {
	media      *state.MediaStore
	generation *services.GenerationService
}

func NewMediaHandler(media *state.MediaStore, generation *services.GenerationService) *MediaHandler {
	return &MediaHandler{media: media, generation: generation}
}

// ListMedia godoc
// @Summary     List media
// @Description Returns a project's media items, newest first
// @Tags        media
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.MediaListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	items, err := h.media.LoadProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list media",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MediaListResponse{Media: items})
}

// UploadMedia godoc
// @Summary     Upload media
// @Description Stores an uploaded image as a media item in the project's library
// @Tags        media
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UploadMediaRequest true "Inline image data and optional tags"
// @Success     200 {object} models.MediaItem
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/media [post]
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req models.UploadMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	item, err := h.media.CreateUpload(c.Request.Context(), projectID, req.ImageData, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload media",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GenerateMedia godoc
// @Summary     Generate media
// @Description Runs one Wavespeed generation and stores each output as a media item
// @Tags        media
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.GenerateRequest true "Generation command"
// @Success     200 {object} models.GenerateMediaResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /projects/{project_id}/media/generate [post]
func (h *MediaHandler) GenerateMedia(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	items, err := h.generation.GenerateMedia(c.Request.Context(), projectID, req)
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

	c.JSON(http.StatusOK, models.GenerateMediaResponse{Media: items})
}

// GetMedia godoc
// @Summary     Get media item
// @Tags        media
// @Produce     json
// @Param       media_id path string true "Media ID (UUID)"
// @Success     200 {object} models.MediaItem
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /media/{media_id} [get]
func (h *MediaHandler) GetMedia(c *gin.Context) {
	mediaID, ok := pathID(c, "media_id")
	if !ok {
		return
	}

	item, err := h.media.Resolve(c.Request.Context(), mediaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get media",
			Message: err.Error(),
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateMedia godoc
// @Summary     Update media item
// @Description Merges the supplied fields into the media item
// @Tags        media
// @Accept      json
// @Produce     json
// @Param       media_id path string true "Media ID (UUID)"
// @Param       request body models.MediaUpdate true "Fields to update"
// @Success     200 {object} models.MediaItem
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /media/{media_id} [patch]
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	mediaID, ok := pathID(c, "media_id")
	if !ok {
		return
	}

	var upd models.MediaUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	item, err := h.media.Update(c.Request.Context(), mediaID, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update media",
			Message: err.Error(),
		})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMedia godoc
// @Summary     Delete media item
// @Description Deletes the item and removes its id from sibling inputImageIds lists
// @Tags        media
// @Produce     json
// @Param       media_id path string true "Media ID (UUID)"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /media/{media_id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	mediaID, ok := pathID(c, "media_id")
	if !ok {
		return
	}

	deleted, err := h.media.Delete(c.Request.Context(), mediaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete media",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media not found"})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: true})
}
