package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/state"
)

type SettingsHandler struct {
	settings *state.SettingsStore
}

func NewSettingsHandler(settings *state.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings godoc
// @Summary     Get settings
// @Description Returns app settings. The stored API key is never echoed back, only whether one is set.
// @Tags        settings
// @Produce     json
// @Success     200 {object} models.SettingsResponse
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings := h.settings.Get()
	c.JSON(http.StatusOK, models.SettingsResponse{
		HasWavespeedAPIKey:          settings.WavespeedAPIKey != "",
		MediaViewerSidebarCollapsed: settings.MediaViewerSidebarCollapsed,
	})
}

// UpdateSettings godoc
// @Summary     Update settings
// @Description Merges the supplied fields into the settings singleton. Sending an empty key clears it.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body models.UpdateSettingsRequest true "Fields to update"
// @Success     200 {object} models.SettingsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	settings := h.settings.Get()
	if req.WavespeedAPIKey != nil {
		settings.WavespeedAPIKey = *req.WavespeedAPIKey
	}
	if req.MediaViewerSidebarCollapsed != nil {
		settings.MediaViewerSidebarCollapsed = *req.MediaViewerSidebarCollapsed
	}

	if err := h.settings.Save(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save settings",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		HasWavespeedAPIKey:          settings.WavespeedAPIKey != "",
		MediaViewerSidebarCollapsed: settings.MediaViewerSidebarCollapsed,
	})
}
