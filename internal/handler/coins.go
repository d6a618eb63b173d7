package handler

import (
	"net/http"
	"strings"

	"fluxterm/internal/engine"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

var snapshotViews = map[string]engine.SnapshotView{
	"all":       engine.ViewAll,
	"watchlist": engine.ViewWatchlist,
	"hotlist":   engine.ViewHotlist,
	"filtered":  engine.ViewFiltered,
}

var snapshotSorts = map[string]engine.SnapshotSort{
	"symbol":     engine.SortBySymbol,
	"score":      engine.SortByScore,
	"change":     engine.SortByChange,
	"price":      engine.SortByPrice,
	"confidence": engine.SortByConfidence,
}

// GetCoins godoc
// @Summary      List market snapshots
// @Description  Returns per-symbol snapshots for the selected view, sorted
// @Tags         coins
// @Produce      json
// @Param        view  query  string  false  "View (all, watchlist, hotlist, filtered)"  default(all)
// @Param        sort  query  string  false  "Sort key (symbol, score, change, price, confidence)"  default(score)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/coins [get]
func (h *Handler) GetCoins(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-coins")
	defer span.End()

	view, ok := snapshotViews[c.DefaultQuery("view", "all")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported view: " + c.Query("view")})
		return
	}
	sortKey, ok := snapshotSorts[c.DefaultQuery("sort", "score")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported sort: " + c.Query("sort")})
		return
	}
	span.SetAttributes(attribute.String("view", string(view)), attribute.String("sort", string(sortKey)))

	snapshots := h.engine.Snapshots(view, sortKey)
	c.JSON(http.StatusOK, gin.H{"coins": snapshots, "count": len(snapshots)})
}

// GetCoin godoc
// @Summary      Get one market snapshot
// @Description  Returns the full snapshot for a single symbol
// @Tags         coins
// @Produce      json
// @Param        symbol  path  string  true  "Asset symbol (e.g., BTC, ETH)"
// @Success      200  {object}  domain.CoinSnapshot
// @Failure      404  {object}  map[string]string
// @Router       /api/coins/{symbol} [get]
func (h *Handler) GetCoin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-coin")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	snapshot, ok := h.engine.Snapshot(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
