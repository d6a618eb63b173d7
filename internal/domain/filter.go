package domain

// FilterMetric names a value a scanner condition can reference.
type FilterMetric string

const (
	MetricRSI        FilterMetric = "rsi"
	MetricRSISlope   FilterMetric = "rsi_slope"
	MetricMACDHist   FilterMetric = "macd_hist"
	MetricMACDCross  FilterMetric = "macd_cross"
	MetricTrendState FilterMetric = "trend_state"
	MetricExecTier   FilterMetric = "exec_score"
	MetricVWAPState  FilterMetric = "vwap_state"
	MetricVolDelta   FilterMetric = "vol_delta"
	MetricOIChange   FilterMetric = "oi_change"
	MetricLevelProx  FilterMetric = "level_prox"
)

type FilterOperator string

const (
	OpGreater  FilterOperator = ">"
	OpLess     FilterOperator = "<"
	OpEqual    FilterOperator = "="
	OpNotEqual FilterOperator = "!="
)

// OperandKind tags the variant carried by an Operand.
type OperandKind string

const (
	OperandNumber OperandKind = "number"
	OperandLabel  OperandKind = "label"
)

// Operand is the comparison target of a condition, resolved to a concrete
// variant at rule-construction time instead of a loosely compared union.
type Operand struct {
	Kind   OperandKind `json:"kind"`
	Number float64     `json:"number,omitempty"`
	Label  string      `json:"label,omitempty"`
}

func NumberOperand(v float64) Operand { return Operand{Kind: OperandNumber, Number: v} }
func LabelOperand(s string) Operand   { return Operand{Kind: OperandLabel, Label: s} }

// FilterRule is one stateless scanner condition; immutable once created.
type FilterRule struct {
	ID        string         `json:"id"`
	Metric    FilterMetric   `json:"metric"`
	Operator  FilterOperator `json:"operator"`
	Operand   Operand        `json:"operand"`
	Timeframe Timeframe      `json:"timeframe"`
}

// Preset is a named, savable scanner configuration.
type Preset struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Rules     []FilterRule `json:"rules"`
	PrimaryTF Timeframe    `json:"primary_tf"`
	ContextTF Timeframe    `json:"context_tf"`
}

// StrategyPrefs is the persisted mutable slice of a strategy definition.
type StrategyPrefs struct {
	Enabled bool           `json:"enabled"`
	Params  StrategyParams `json:"params"`
}

// Preferences is the full configuration surface persisted across restarts.
// The core only produces and consumes this structure; reading and writing
// the backing store is the cache package's job.
type Preferences struct {
	Watchlist   []string                 `json:"watchlist,omitempty"`
	Presets     []Preset                 `json:"presets,omitempty"`
	FilterRules []FilterRule             `json:"filter_rules,omitempty"`
	PrimaryTF   Timeframe                `json:"primary_tf,omitempty"`
	ContextTF   Timeframe                `json:"context_tf,omitempty"`
	Strategies  map[string]StrategyPrefs `json:"strategies,omitempty"`
	Analytics   *AnalyticsSettings       `json:"analytics,omitempty"`
}
