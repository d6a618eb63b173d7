package alert

import (
	"fmt"
	"time"

	"fluxterm/internal/domain"
)

const (
	signalLogCap    = 200
	defaultCooldown = time.Minute
)

// Firing pairs an emitted signal with the definition that produced it, so
// the caller can decide whether to open a simulated trade.
type Firing struct {
	Signal   domain.Signal
	Strategy domain.Strategy
}

// Engine evaluates strategy triggers and enforces per (symbol, strategy)
// cooldowns. It is not safe for concurrent use; the owning engine serializes
// access.
type Engine struct {
	now       func() time.Time
	lastFired map[string]time.Time
	signals   []domain.Signal
	seq       int
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now, lastFired: make(map[string]time.Time)}
}

// Evaluate runs every strategy's trigger against the snapshot and returns
// the firings that cleared their cooldown. Disabled strategies still emit
// signals into the log; the caller must not open trades for them.
// prevVWAP is the symbol's recorded VWAP state from before this tick's
// update, so VWAP crossings trigger on the edge rather than the level.
func (e *Engine) Evaluate(snap *domain.CoinSnapshot, prevVWAP domain.VWAPState, strategies []domain.Strategy, primaryTF domain.Timeframe) []Firing {
	if snap == nil {
		return nil
	}
	now := e.now()
	var firings []Firing
	for _, strat := range strategies {
		direction, reasons, ok := trigger(snap, prevVWAP, strat, primaryTF)
		if !ok {
			continue
		}
		key := snap.Symbol + "|" + strat.ID
		cooldown := strat.Cooldown
		if cooldown <= 0 {
			cooldown = defaultCooldown
		}
		if last, fired := e.lastFired[key]; fired && now.Sub(last) < cooldown {
			continue
		}
		e.lastFired[key] = now
		e.seq++
		sig := domain.Signal{
			ID:         fmt.Sprintf("sig_%d", e.seq),
			Timestamp:  now,
			Symbol:     snap.Symbol,
			StrategyID: strat.ID,
			Direction:  direction,
			Price:      snap.Price,
			Reasons:    reasons,
		}
		e.record(sig)
		firings = append(firings, Firing{Signal: sig, Strategy: strat})
	}
	return firings
}

// SignalLog returns the recent signals, most recent first.
func (e *Engine) SignalLog() []domain.Signal {
	out := make([]domain.Signal, len(e.signals))
	copy(out, e.signals)
	return out
}

func (e *Engine) record(sig domain.Signal) {
	e.signals = append([]domain.Signal{sig}, e.signals...)
	if len(e.signals) > signalLogCap {
		e.signals = e.signals[:signalLogCap]
	}
}

func trigger(snap *domain.CoinSnapshot, prevVWAP domain.VWAPState, strat domain.Strategy, primaryTF domain.Timeframe) (domain.SignalDirection, []string, bool) {
	switch strat.ID {
	case domain.StrategyRSIReversal:
		return rsiReversal(snap, strat.Params, primaryTF)
	case domain.StrategyMACDMomentum:
		return macdMomentum(snap, primaryTF)
	case domain.StrategyVWAPCross:
		return vwapCross(snap, prevVWAP)
	case domain.StrategyLevelBounce:
		return levelBounce(snap, strat.Params)
	default:
		// oi_surge and confluence are definitions without trigger logic.
		return "", nil, false
	}
}

func rsiReversal(snap *domain.CoinSnapshot, params domain.StrategyParams, tf domain.Timeframe) (domain.SignalDirection, []string, bool) {
	st, ok := snap.Technical[tf]
	if !ok {
		return "", nil, false
	}
	oversold := params.RSIOversold
	if oversold == 0 {
		oversold = 30
	}
	overbought := params.RSIOverbought
	if overbought == 0 {
		overbought = 70
	}
	rsi := st.RSI
	if rsi.Value < oversold && rsi.Slope == domain.SlopeUp {
		return domain.DirectionLong, []string{
			fmt.Sprintf("RSI %.1f below %.0f with rising slope", rsi.Value, oversold),
		}, true
	}
	if rsi.Value > overbought && rsi.Slope == domain.SlopeDown {
		return domain.DirectionShort, []string{
			fmt.Sprintf("RSI %.1f above %.0f with falling slope", rsi.Value, overbought),
		}, true
	}
	return "", nil, false
}

func macdMomentum(snap *domain.CoinSnapshot, tf domain.Timeframe) (domain.SignalDirection, []string, bool) {
	st, ok := snap.Technical[tf]
	if !ok {
		return "", nil, false
	}
	switch st.MACD.Cross {
	case domain.CrossBullish:
		return domain.DirectionLong, []string{fmt.Sprintf("MACD bullish cross on %s", tf)}, true
	case domain.CrossBearish:
		return domain.DirectionShort, []string{fmt.Sprintf("MACD bearish cross on %s", tf)}, true
	default:
		return "", nil, false
	}
}

func vwapCross(snap *domain.CoinSnapshot, prevVWAP domain.VWAPState) (domain.SignalDirection, []string, bool) {
	anchor := snap.VWAP.Price
	if anchor <= 0 {
		return "", nil, false
	}
	if snap.Price > anchor && prevVWAP == domain.VWAPBelow {
		return domain.DirectionLong, []string{
			fmt.Sprintf("price %.4f reclaimed VWAP %.4f", snap.Price, anchor),
		}, true
	}
	if snap.Price < anchor && prevVWAP == domain.VWAPAbove {
		return domain.DirectionShort, []string{
			fmt.Sprintf("price %.4f lost VWAP %.4f", snap.Price, anchor),
		}, true
	}
	return "", nil, false
}

func levelBounce(snap *domain.CoinSnapshot, params domain.StrategyParams) (domain.SignalDirection, []string, bool) {
	prox := params.LevelProxPct
	if prox <= 0 {
		prox = 0.5
	}
	high := snap.Levels.DayHigh
	low := snap.Levels.DayLow
	if high <= 0 || low <= 0 {
		return "", nil, false
	}
	if withinPct(snap.Price, high, prox) {
		return domain.DirectionShort, []string{
			fmt.Sprintf("price %.4f within %.2f%% of day high %.4f", snap.Price, prox, high),
		}, true
	}
	if withinPct(snap.Price, low, prox) {
		return domain.DirectionLong, []string{
			fmt.Sprintf("price %.4f within %.2f%% of day low %.4f", snap.Price, prox, low),
		}, true
	}
	return "", nil, false
}

func withinPct(price, level, pct float64) bool {
	if level == 0 {
		return false
	}
	diff := price - level
	if diff < 0 {
		diff = -diff
	}
	return diff/level*100 <= pct
}
