package handler

import (
	"fmt"
	"net/http"
	"time"

	"fluxterm/internal/domain"
	"fluxterm/internal/screener"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type ruleRequest struct {
	ID        string                `json:"id,omitempty"`
	Metric    domain.FilterMetric   `json:"metric"`
	Operator  domain.FilterOperator `json:"operator"`
	Number    *float64              `json:"number,omitempty"`
	Label     *string               `json:"label,omitempty"`
	Timeframe domain.Timeframe      `json:"timeframe,omitempty"`
}

type filtersRequest struct {
	Rules []ruleRequest `json:"rules"`
}

func buildRules(reqs []ruleRequest) ([]domain.FilterRule, error) {
	rules := make([]domain.FilterRule, 0, len(reqs))
	for i, req := range reqs {
		var operand domain.Operand
		switch {
		case req.Number != nil && req.Label != nil:
			return nil, fmt.Errorf("rule %d: number and label are mutually exclusive", i+1)
		case req.Number != nil:
			operand = domain.NumberOperand(*req.Number)
		case req.Label != nil:
			operand = domain.LabelOperand(*req.Label)
		default:
			return nil, fmt.Errorf("rule %d: missing operand", i+1)
		}
		id := req.ID
		if id == "" {
			id = fmt.Sprintf("rule_%d", i+1)
		}
		rule, err := screener.NewRule(id, req.Metric, req.Operator, operand, req.Timeframe)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// GetFilters godoc
// @Summary      Get active scanner conditions
// @Description  Returns the conditions behind the filtered view
// @Tags         filters
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/filters [get]
func (h *Handler) GetFilters(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-filters")
	defer span.End()

	rules := h.engine.FilterRules()
	c.JSON(http.StatusOK, gin.H{"rules": rules, "count": len(rules)})
}

// UpdateFilters godoc
// @Summary      Replace scanner conditions
// @Description  Validates and installs a new condition set; an empty set matches every symbol
// @Tags         filters
// @Accept       json
// @Produce      json
// @Param        request  body  filtersRequest  true  "New conditions"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/filters [put]
func (h *Handler) UpdateFilters(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.update-filters")
	defer span.End()

	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	rules, err := buildRules(req.Rules)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.Int("rule_count", len(rules)))

	h.engine.SetFilterRules(rules)
	h.persist(c)
	c.JSON(http.StatusOK, gin.H{"rules": h.engine.FilterRules(), "count": len(rules)})
}

type presetRequest struct {
	ID        string           `json:"id,omitempty"`
	Name      string           `json:"name"`
	Rules     []ruleRequest    `json:"rules"`
	PrimaryTF domain.Timeframe `json:"primary_tf,omitempty"`
	ContextTF domain.Timeframe `json:"context_tf,omitempty"`
}

// GetPresets godoc
// @Summary      List saved scanner presets
// @Tags         filters
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/presets [get]
func (h *Handler) GetPresets(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-presets")
	defer span.End()

	presets := h.engine.Presets()
	c.JSON(http.StatusOK, gin.H{"presets": presets, "count": len(presets)})
}

// SavePreset godoc
// @Summary      Save a scanner preset
// @Description  Creates a preset, or replaces the preset with the same id
// @Tags         filters
// @Accept       json
// @Produce      json
// @Param        request  body  presetRequest  true  "Preset definition"
// @Success      200  {object}  domain.Preset
// @Failure      400  {object}  map[string]string
// @Router       /api/presets [post]
func (h *Handler) SavePreset(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.save-preset")
	defer span.End()

	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preset name is required"})
		return
	}
	rules, err := buildRules(req.Rules)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("preset", req.Name))

	if req.ID == "" {
		req.ID = fmt.Sprintf("preset_%d", time.Now().UnixNano())
	}
	preset := domain.Preset{
		ID:        req.ID,
		Name:      req.Name,
		Rules:     rules,
		PrimaryTF: req.PrimaryTF,
		ContextTF: req.ContextTF,
	}
	h.engine.SavePreset(preset)
	h.persist(c)
	c.JSON(http.StatusOK, gin.H{"presets": h.engine.Presets()})
}

// DeletePreset godoc
// @Summary      Delete a scanner preset
// @Tags         filters
// @Produce      json
// @Param        id  path  string  true  "Preset id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/presets/{id} [delete]
func (h *Handler) DeletePreset(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.delete-preset")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("preset_id", id))

	h.engine.DeletePreset(id)
	h.persist(c)
	c.JSON(http.StatusOK, gin.H{"presets": h.engine.Presets()})
}
