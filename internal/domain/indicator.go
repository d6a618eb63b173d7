package domain

// RSIState is the qualitative bucket for an RSI value.
type RSIState string

const (
	RSIOversold   RSIState = "oversold"
	RSIOverbought RSIState = "overbought"
	RSINeutral    RSIState = "neutral"
)

// Slope describes the short-term direction of a series. SlopeFlat is only
// produced when the state is supplied externally; the recurrence path always
// resolves to up or down.
type Slope string

const (
	SlopeUp   Slope = "up"
	SlopeDown Slope = "down"
	SlopeFlat Slope = "flat"
)

// Cross marks a MACD histogram zero-crossing at the latest step.
type Cross string

const (
	CrossBullish Cross = "bullish"
	CrossBearish Cross = "bearish"
	CrossNone    Cross = ""
)

// MACDTrend is the momentary histogram direction, informational only.
type MACDTrend string

const (
	MACDBullish MACDTrend = "bullish"
	MACDBearish MACDTrend = "bearish"
)

// TrendState is the fast/slow EMA relationship.
type TrendState string

const (
	TrendUp   TrendState = "up"
	TrendDown TrendState = "down"
	TrendChop TrendState = "chop"
)

type RSIData struct {
	Value float64  `json:"value"`
	State RSIState `json:"state"`
	Slope Slope    `json:"slope"`
}

type MACDData struct {
	Line      float64   `json:"line"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
	Cross     Cross     `json:"cross,omitempty"`
	Trend     MACDTrend `json:"trend"`
}

type TrendData struct {
	EMAFast float64    `json:"ema_fast"`
	EMASlow float64    `json:"ema_slow"`
	State   TrendState `json:"state"`
}

// IndicatorState is the derived technical state for one (symbol, timeframe).
// It is recomputed deterministically from the candle series on every update.
type IndicatorState struct {
	RSI   RSIData   `json:"rsi"`
	MACD  MACDData  `json:"macd"`
	Trend TrendData `json:"trend"`
}

// VWAPState tracks which side of the VWAP anchor price trades, with
// hysteresis: below flips to above only on a strict cross of the anchor.
type VWAPState string

const (
	VWAPAbove VWAPState = "above"
	VWAPBelow VWAPState = "below"
)

type VWAPData struct {
	Price     float64   `json:"price"`
	State     VWAPState `json:"state"`
	BandUpper float64   `json:"band_upper"`
	BandLower float64   `json:"band_lower"`
	Reclaimed bool      `json:"reclaimed"`
}

// LevelProximity tags price sitting near a day/week extreme.
type LevelProximity string

const (
	NearDayHigh  LevelProximity = "near_dh"
	NearDayLow   LevelProximity = "near_dl"
	NearWeekHigh LevelProximity = "near_wh"
	NearWeekLow  LevelProximity = "near_wl"
	NearNone     LevelProximity = ""
)

type LevelData struct {
	DayHigh   float64        `json:"day_high"`
	DayLow    float64        `json:"day_low"`
	DayOpen   float64        `json:"day_open"`
	PrevClose float64        `json:"prev_close"`
	WeekHigh  float64        `json:"week_high"`
	WeekLow   float64        `json:"week_low"`
	WeekOpen  float64        `json:"week_open"`
	Proximity LevelProximity `json:"proximity,omitempty"`
}

// ExecutionTier is a coarse execution-quality bucket modeling spread and
// slippage. It drives the flat entry fee charged to simulated trades.
type ExecutionTier string

const (
	TierA ExecutionTier = "A"
	TierB ExecutionTier = "B"
	TierC ExecutionTier = "C"
)

func (t ExecutionTier) IsValid() bool {
	return t == TierA || t == TierB || t == TierC
}

type ExecutionData struct {
	SpreadBps   float64       `json:"spread_bps"`
	DepthUSD    float64       `json:"depth_usd"`
	SlippageEst float64       `json:"slippage_est"`
	Tier        ExecutionTier `json:"tier"`
}

type OrderflowData struct {
	TakerBuySellRatio float64   `json:"taker_buy_sell_ratio"`
	CVD               float64   `json:"cvd"`
	CVDHistory        []float64 `json:"cvd_history"`
	Imbalance         float64   `json:"imbalance"`
	OFI               float64   `json:"ofi"`
	WhalePrints       int       `json:"whale_prints"`
}

// CoinSnapshot is the read-only aggregate view of one tracked symbol,
// consumed by value so callers cannot corrupt engine state.
type CoinSnapshot struct {
	Symbol        string                       `json:"symbol"`
	Price         float64                      `json:"price"`
	PriceChange1m float64                      `json:"price_change_1m"`
	PriceChange5m float64                      `json:"price_change_5m"`
	Volume1m      float64                      `json:"volume_1m"`
	VolumeDelta   float64                      `json:"volume_delta"`
	OpenInterest  float64                      `json:"open_interest"`
	OIChange      float64                      `json:"oi_change"`
	Funding       float64                      `json:"funding"`
	Score         float64                      `json:"score"`
	Technical     map[Timeframe]IndicatorState `json:"technical"`
	ATR           map[Timeframe]float64        `json:"atr"`
	Confidence    float64                      `json:"confidence"`
	VWAP          VWAPData                     `json:"vwap"`
	Levels        LevelData                    `json:"levels"`
	Execution     ExecutionData                `json:"execution"`
	Orderflow     OrderflowData                `json:"orderflow"`
	Tags          []string                     `json:"tags,omitempty"`
	LastUpdate    int64                        `json:"last_update_unix"`
}

// Clone returns a deep copy safe to hand across the presentation boundary.
func (c CoinSnapshot) Clone() CoinSnapshot {
	out := c
	out.Technical = make(map[Timeframe]IndicatorState, len(c.Technical))
	for tf, st := range c.Technical {
		out.Technical[tf] = st
	}
	out.ATR = make(map[Timeframe]float64, len(c.ATR))
	for tf, v := range c.ATR {
		out.ATR[tf] = v
	}
	out.Orderflow.CVDHistory = append([]float64(nil), c.Orderflow.CVDHistory...)
	out.Tags = append([]string(nil), c.Tags...)
	return out
}
