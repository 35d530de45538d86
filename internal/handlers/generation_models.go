package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/wavespeed"
)

// ListModels godoc
// @Summary     List generation models
// @Description Returns the registered Wavespeed models and their request shapes
// @Tags        models
// @Produce     json
// @Success     200 {object} models.ModelListResponse
// @Router      /models [get]
func ListModels(c *gin.Context) {
	registered := wavespeed.Models()
	infos := make([]models.ModelInfo, 0, len(registered))
	for _, m := range registered {
		infos = append(infos, models.ModelInfo{
			ID:                  m.ID,
			Label:               m.Label,
			RequiresInputImages: m.RequiresInputImages,
			SupportsSeed:        m.SupportsSeed,
			MaxInputImages:      m.MaxInputImages,
		})
	}
	c.JSON(http.StatusOK, models.ModelListResponse{Models: infos})
}
