package strategy

import (
	"fmt"
	"sync"
	"time"

	"fluxterm/internal/domain"
)

// Registry owns the strategy definitions. Identity is fixed for the process
// lifetime; only the enabled flag and the parameter bag change.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]*domain.Strategy
	order      []string
}

// Defaults returns a registry seeded with the built-in strategy set.
func Defaults() *Registry {
	defs := []domain.Strategy{
		{
			ID:          domain.StrategyRSIReversal,
			Name:        "RSI Reversal",
			Description: "RSI leaves an extreme with slope confirmation",
			Enabled:     true,
			Logic:       "AND",
			Severity:    domain.SeveritySuccess,
			Cooldown:    time.Minute,
			Params:      domain.StrategyParams{RSIOversold: 30, RSIOverbought: 70},
		},
		{
			ID:          domain.StrategyMACDMomentum,
			Name:        "MACD Momentum",
			Description: "Histogram zero-line cross on the primary timeframe",
			Enabled:     true,
			Logic:       "AND",
			Severity:    domain.SeverityInfo,
			Cooldown:    5 * time.Minute,
		},
		{
			ID:          domain.StrategyVWAPCross,
			Name:        "VWAP Cross",
			Description: "Price reclaims or loses the session VWAP anchor",
			Enabled:     true,
			Logic:       "AND",
			Severity:    domain.SeveritySuccess,
			Cooldown:    5 * time.Minute,
			Params:      domain.StrategyParams{VWAPHoldTicks: 2},
		},
		{
			ID:          domain.StrategyLevelBounce,
			Name:        "Level Bounce",
			Description: "Price presses into the day high or day low",
			Enabled:     true,
			Logic:       "OR",
			Severity:    domain.SeverityWarning,
			Cooldown:    5 * time.Minute,
			Params:      domain.StrategyParams{LevelProxPct: 0.5},
		},
		{
			ID:          domain.StrategyOISurge,
			Name:        "OI Surge",
			Description: "Open interest expansion with price confirmation",
			Enabled:     false,
			Logic:       "AND",
			Severity:    domain.SeverityHigh,
			Cooldown:    5 * time.Minute,
		},
		{
			ID:          domain.StrategyConfluence,
			Name:        "Confluence",
			Description: "Multiple aligned conditions across timeframes",
			Enabled:     false,
			Logic:       "AND",
			Severity:    domain.SeveritySuccess,
			Cooldown:    10 * time.Minute,
		},
	}

	r := &Registry{strategies: make(map[string]*domain.Strategy, len(defs))}
	for i := range defs {
		s := defs[i]
		r.strategies[s.ID] = &s
		r.order = append(r.order, s.ID)
	}
	return r
}

// List returns the strategies in their registration order, by value.
func (r *Registry) List() []domain.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Strategy, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.strategies[id])
	}
	return out
}

// Get returns a copy of one strategy definition.
func (r *Registry) Get(id string) (domain.Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[id]
	if !ok {
		return domain.Strategy{}, false
	}
	return *s, true
}

// Enabled returns the currently enabled strategies.
func (r *Registry) Enabled() []domain.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Strategy
	for _, id := range r.order {
		if r.strategies[id].Enabled {
			out = append(out, *r.strategies[id])
		}
	}
	return out
}

func (r *Registry) SetEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.strategies[id]
	if !ok {
		return fmt.Errorf("unknown strategy %q", id)
	}
	s.Enabled = enabled
	return nil
}

func (r *Registry) SetParams(id string, params domain.StrategyParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.strategies[id]
	if !ok {
		return fmt.Errorf("unknown strategy %q", id)
	}
	s.Params = params
	return nil
}

// Apply overlays persisted per-strategy preferences onto the definitions.
// Unknown ids are ignored so stale stores cannot grow the registry.
func (r *Registry) Apply(prefs map[string]domain.StrategyPrefs) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range prefs {
		s, ok := r.strategies[id]
		if !ok {
			continue
		}
		s.Enabled = p.Enabled
		s.Params = p.Params
	}
}

// Prefs extracts the mutable slice of every definition for persistence.
func (r *Registry) Prefs() map[string]domain.StrategyPrefs {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.StrategyPrefs, len(r.strategies))
	for id, s := range r.strategies {
		out[id] = domain.StrategyPrefs{Enabled: s.Enabled, Params: s.Params}
	}
	return out
}
