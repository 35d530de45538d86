package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"hyper-reel-backend/internal/state"
)

type EventsHandler struct {
	hub *state.Hub
}

func NewEventsHandler(hub *state.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// StreamEvents godoc
// @Summary     Stream change events
// @Description Server-sent event stream of entity mutations (created/updated/deleted/reordered)
// @Tags        events
// @Produce     text/event-stream
// @Success     200 {object} state.Event
// @Router      /events [get]
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	events, cancel := h.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
