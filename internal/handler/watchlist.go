package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetWatchlist godoc
// @Summary      Get the watchlist
// @Tags         watchlist
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/watchlist [get]
func (h *Handler) GetWatchlist(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-watchlist")
	defer span.End()

	symbols := h.engine.Watchlist()
	c.JSON(http.StatusOK, gin.H{"symbols": symbols, "count": len(symbols)})
}

// ToggleWatchlist godoc
// @Summary      Toggle a symbol on the watchlist
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path  string  true  "Asset symbol (e.g., BTC, ETH)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/watchlist/{symbol} [post]
func (h *Handler) ToggleWatchlist(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.toggle-watchlist")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	if _, ok := h.engine.Snapshot(symbol); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
		return
	}

	watched := h.engine.ToggleWatchlist(symbol)
	h.persist(c)
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "watched": watched})
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// SetPaused godoc
// @Summary      Pause or resume the engine
// @Description  Paused engines drop incoming updates instead of queueing a backlog
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body  pauseRequest  true  "Pause flag"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/pause [put]
func (h *Handler) SetPaused(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.set-paused")
	defer span.End()

	var req pauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(attribute.Bool("paused", req.Paused))

	h.engine.SetPaused(req.Paused)
	c.JSON(http.StatusOK, gin.H{"paused": h.engine.Paused()})
}
