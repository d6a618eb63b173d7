package handler

import (
	"log"

	"fluxterm/internal/engine"
	"fluxterm/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer trace.Tracer
	engine *engine.Engine
	prefs  *service.PrefService
}

func New(tracer trace.Tracer, eng *engine.Engine, prefs *service.PrefService) *Handler {
	return &Handler{
		tracer: tracer,
		engine: eng,
		prefs:  prefs,
	}
}

// RegisterRoutes mounts every endpoint. The /api group sits behind API key
// auth; /health stays open for probes.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/coins", h.GetCoins)
	api.GET("/coins/:symbol", h.GetCoin)
	api.GET("/signals", h.GetSignals)
	api.GET("/trades", h.GetTrades)
	api.GET("/stats", h.GetStats)
	api.GET("/events", h.GetEvents)
	api.POST("/events/ack", h.AckEvents)
	api.GET("/strategies", h.GetStrategies)
	api.PUT("/strategies/:id", h.UpdateStrategy)
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.GET("/timeframes", h.GetTimeframes)
	api.PUT("/timeframes", h.UpdateTimeframes)
	api.GET("/filters", h.GetFilters)
	api.PUT("/filters", h.UpdateFilters)
	api.GET("/presets", h.GetPresets)
	api.POST("/presets", h.SavePreset)
	api.DELETE("/presets/:id", h.DeletePreset)
	api.GET("/watchlist", h.GetWatchlist)
	api.POST("/watchlist/:symbol", h.ToggleWatchlist)
	api.PUT("/pause", h.SetPaused)
}

// persist pushes the current engine configuration to the preference store.
// Persistence failures never fail the request that triggered them.
func (h *Handler) persist(c *gin.Context) {
	if h.prefs == nil {
		return
	}
	if err := h.prefs.Persist(c.Request.Context()); err != nil {
		log.Printf("preference persistence error: %v", err)
	}
}
