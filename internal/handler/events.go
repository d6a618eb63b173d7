package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetEvents godoc
// @Summary      Get the alert event feed
// @Description  Returns alert events newest first, with the unread count
// @Tags         events
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/events [get]
func (h *Handler) GetEvents(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-events")
	defer span.End()

	events := h.engine.Events()
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
		"unread": h.engine.UnreadEvents(),
	})
}

// AckEvents godoc
// @Summary      Acknowledge all alert events
// @Description  Marks every event as read; acknowledged events are no longer merge targets
// @Tags         events
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/events/ack [post]
func (h *Handler) AckEvents(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ack-events")
	defer span.End()

	h.engine.AckEvents()
	c.JSON(http.StatusOK, gin.H{"unread": 0})
}
