package handler

import (
	"net/http"

	"fluxterm/internal/analytics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

var statsSorts = map[string]analytics.SortKey{
	"trades":     analytics.SortByTrades,
	"win_rate":   analytics.SortByWinRate,
	"avg_return": analytics.SortByReturn,
}

// GetSignals godoc
// @Summary      Get the signal log
// @Description  Returns recorded strategy firings, newest first
// @Tags         trading
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/signals [get]
func (h *Handler) GetSignals(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-signals")
	defer span.End()

	signals := h.engine.SignalLog()
	c.JSON(http.StatusOK, gin.H{"signals": signals, "count": len(signals)})
}

// GetTrades godoc
// @Summary      Get simulated trades
// @Description  Returns closed paper trades, newest first
// @Tags         trading
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/trades [get]
func (h *Handler) GetTrades(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-trades")
	defer span.End()

	trades := h.engine.TradeHistory()
	c.JSON(http.StatusOK, gin.H{"trades": trades, "count": len(trades)})
}

// GetStats godoc
// @Summary      Get per-strategy performance statistics
// @Description  Returns aggregated stats plus portfolio totals under the active analytics settings
// @Tags         trading
// @Produce      json
// @Param        sort  query  string  false  "Sort key (trades, win_rate, avg_return)"  default(avg_return)
// @Param        dir   query  string  false  "Sort direction (asc, desc)"  default(desc)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-stats")
	defer span.End()

	sortKey, ok := statsSorts[c.DefaultQuery("sort", "avg_return")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported sort: " + c.Query("sort")})
		return
	}
	dir := c.DefaultQuery("dir", "desc")
	if dir != "asc" && dir != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported dir: " + dir})
		return
	}
	span.SetAttributes(attribute.String("sort", string(sortKey)), attribute.String("dir", dir))

	stats, global := h.engine.Stats(sortKey, dir == "desc")
	c.JSON(http.StatusOK, gin.H{"strategies": stats, "global": global})
}
