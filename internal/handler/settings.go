package handler

import (
	"net/http"

	"fluxterm/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetSettings godoc
// @Summary      Get analytics settings
// @Description  Returns the active hold duration, time window, and view mode
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.AnalyticsSettings
// @Router       /api/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-settings")
	defer span.End()

	c.JSON(http.StatusOK, h.engine.AnalyticsSettings())
}

// UpdateSettings godoc
// @Summary      Update analytics settings
// @Description  Replaces the analytics settings; omitted fields fall back to defaults
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body  domain.AnalyticsSettings  true  "New settings"
// @Success      200  {object}  domain.AnalyticsSettings
// @Failure      400  {object}  map[string]string
// @Router       /api/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.update-settings")
	defer span.End()

	var req domain.AnalyticsSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.engine.SetAnalyticsSettings(req)
	h.persist(c)
	c.JSON(http.StatusOK, h.engine.AnalyticsSettings())
}

type timeframesRequest struct {
	Primary domain.Timeframe `json:"primary"`
	Context domain.Timeframe `json:"context"`
}

// GetTimeframes godoc
// @Summary      Get analysis timeframes
// @Description  Returns the primary and context timeframes driving indicators and triggers
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/timeframes [get]
func (h *Handler) GetTimeframes(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-timeframes")
	defer span.End()

	primary, context := h.engine.Timeframes()
	c.JSON(http.StatusOK, gin.H{"primary": primary, "context": context})
}

// UpdateTimeframes godoc
// @Summary      Update analysis timeframes
// @Description  Switches the primary and context timeframes and recomputes all symbols
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body  timeframesRequest  true  "New timeframes"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/timeframes [put]
func (h *Handler) UpdateTimeframes(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.update-timeframes")
	defer span.End()

	var req timeframesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if !req.Primary.IsValid() || !req.Context.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                "unsupported timeframe",
			"supported_timeframes": domain.SupportedTimeframes,
		})
		return
	}
	span.SetAttributes(
		attribute.String("primary", string(req.Primary)),
		attribute.String("context", string(req.Context)),
	)

	h.engine.SetTimeframes(req.Primary, req.Context)
	h.persist(c)
	primary, context := h.engine.Timeframes()
	c.JSON(http.StatusOK, gin.H{"primary": primary, "context": context})
}
