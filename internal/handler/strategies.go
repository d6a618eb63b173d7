package handler

import (
	"net/http"

	"fluxterm/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type strategyUpdateRequest struct {
	Enabled *bool                  `json:"enabled,omitempty"`
	Params  *domain.StrategyParams `json:"params,omitempty"`
}

// GetStrategies godoc
// @Summary      List alert strategies
// @Description  Returns every strategy definition with its current enabled flag and parameters
// @Tags         strategies
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/strategies [get]
func (h *Handler) GetStrategies(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-strategies")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"strategies": h.engine.Strategies()})
}

// UpdateStrategy godoc
// @Summary      Update a strategy
// @Description  Toggles a strategy or replaces its tunable parameters
// @Tags         strategies
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "Strategy id (e.g., rsi_reversal)"
// @Param        request  body  strategyUpdateRequest  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/strategies/{id} [put]
func (h *Handler) UpdateStrategy(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.update-strategy")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("strategy_id", id))

	var req strategyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Enabled == nil && req.Params == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if req.Enabled != nil {
		if err := h.engine.SetStrategyEnabled(id, *req.Enabled); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Params != nil {
		if err := h.engine.SetStrategyParams(id, *req.Params); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}

	h.persist(c)
	c.JSON(http.StatusOK, gin.H{"strategies": h.engine.Strategies()})
}
