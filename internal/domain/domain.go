package domain

import "time"

type SignalDirection string

const (
	DirectionLong  SignalDirection = "LONG"
	DirectionShort SignalDirection = "SHORT"
)

// Severity ranks how loudly an alert should be surfaced.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityHigh    Severity = "high"
)

// Known strategy ids. The trigger logic for each lives in the alert engine;
// OISurge and Confluence are definitions without trigger logic.
const (
	StrategyRSIReversal  = "rsi_reversal"
	StrategyMACDMomentum = "macd_momentum"
	StrategyVWAPCross    = "vwap_cross"
	StrategyLevelBounce  = "level_bounce"
	StrategyOISurge      = "oi_surge"
	StrategyConfluence   = "confluence"
)

// StrategyParams is the per-strategy threshold bag. Fields a strategy does
// not use stay zero.
type StrategyParams struct {
	RSIOverbought float64 `json:"rsi_overbought,omitempty"`
	RSIOversold   float64 `json:"rsi_oversold,omitempty"`
	VWAPHoldTicks int     `json:"vwap_hold_ticks,omitempty"`
	LevelProxPct  float64 `json:"level_prox_pct,omitempty"`
}

// Strategy is an alert rule definition. Identity is stable for the process
// lifetime; only Enabled and Params are mutable.
type Strategy struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Enabled     bool           `json:"enabled"`
	Logic       string         `json:"logic"` // AND / OR, informational only
	Severity    Severity       `json:"severity"`
	Cooldown    time.Duration  `json:"cooldown"`
	Params      StrategyParams `json:"params"`
}

// Signal records one strategy firing. Immutable once created.
type Signal struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Symbol     string          `json:"symbol"`
	StrategyID string          `json:"strategy_id"`
	Direction  SignalDirection `json:"direction"`
	Price      float64         `json:"price"`
	Reasons    []string        `json:"reasons"`
}

type ExitReason string

const (
	ExitTime         ExitReason = "TIME"
	ExitInvalidation ExitReason = "INVALIDATION"
	ExitStop         ExitReason = "STOP"
	ExitNone         ExitReason = ""
)

type TradeResult string

const (
	ResultWin  TradeResult = "WIN"
	ResultLoss TradeResult = "LOSS"
	ResultFlat TradeResult = "FLAT"
	ResultOpen TradeResult = "OPEN"
)

// SimTrade is a simulated paper trade. All *Pct fields are percentages
// (1.0 == 1%). The entry fee is charged once: a fresh trade starts with
// NetReturnPct == -FeePct, and at close NetReturnPct == GrossReturnPct - FeePct.
type SimTrade struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	StrategyID     string          `json:"strategy_id"`
	Direction      SignalDirection `json:"direction"`
	EntryTime      time.Time       `json:"entry_time"`
	EntryPrice     float64         `json:"entry_price"`
	ExitTime       *time.Time      `json:"exit_time,omitempty"`
	ExitPrice      *float64        `json:"exit_price,omitempty"`
	ExitReason     ExitReason      `json:"exit_reason,omitempty"`
	HoldSeconds    int             `json:"hold_seconds"`
	Result         TradeResult     `json:"result"`
	GrossReturnPct float64         `json:"gross_return_pct"`
	NetReturnPct   float64         `json:"net_return_pct"`
	FeePct         float64         `json:"fee_pct"`
	MFEPct         float64         `json:"mfe_pct"`
	MAEPct         float64         `json:"mae_pct"`
}

// AlertEvent is one dispatched notification. Near-simultaneous firings for
// the same symbol merge into a single event (see the event package).
type AlertEvent struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Symbol        string            `json:"symbol"`
	StrategyID    string            `json:"strategy_id"`
	Direction     SignalDirection   `json:"direction"`
	Severity      Severity          `json:"severity"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Vars          map[string]string `json:"vars,omitempty"`
	MergedReasons []string          `json:"merged_reasons,omitempty"`
}

// StrategyStats is the per-strategy aggregate, recomputed on demand from the
// signal log and trade history; never stored.
type StrategyStats struct {
	StrategyID   string  `json:"strategy_id"`
	Triggers     int     `json:"triggers"`
	TradesClosed int     `json:"trades_closed"`
	WinRatePct   float64 `json:"win_rate_pct"`
	AvgReturnPct float64 `json:"avg_return_pct"`
	AvgMFEPct    float64 `json:"avg_mfe_pct"`
	AvgMAEPct    float64 `json:"avg_mae_pct"`
}

// GlobalStats are the cross-strategy KPIs.
type GlobalStats struct {
	BestStrategyID string  `json:"best_strategy_id,omitempty"`
	TotalSignals   int     `json:"total_signals"`
	TotalClosed    int     `json:"total_closed"`
	WinRatePct     float64 `json:"win_rate_pct"`
	AvgReturnPct   float64 `json:"avg_return_pct"`
}

type ViewMode string

const (
	ViewGross ViewMode = "GROSS"
	ViewNet   ViewMode = "NET"
)

type TimeWindow string

const (
	Window15m TimeWindow = "15m"
	Window1h  TimeWindow = "1h"
	Window24h TimeWindow = "24h"
	WindowAll TimeWindow = "all"
)

// Cutoff returns the window start relative to now, or the zero time for
// WindowAll and unknown values.
func (w TimeWindow) Cutoff(now time.Time) time.Time {
	switch w {
	case Window15m:
		return now.Add(-15 * time.Minute)
	case Window1h:
		return now.Add(-time.Hour)
	case Window24h:
		return now.Add(-24 * time.Hour)
	default:
		return time.Time{}
	}
}

// AnalyticsSettings shape the aggregator view and the hold duration frozen
// into newly opened trades.
type AnalyticsSettings struct {
	HoldSeconds int        `json:"hold_seconds"`
	TimeWindow  TimeWindow `json:"time_window"`
	ViewMode    ViewMode   `json:"view_mode"`
}

// DefaultAnalyticsSettings is the configuration used until the user changes it.
func DefaultAnalyticsSettings() AnalyticsSettings {
	return AnalyticsSettings{HoldSeconds: 30, TimeWindow: WindowAll, ViewMode: ViewNet}
}
