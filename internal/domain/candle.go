package domain

import "time"

// Candle represents a single OHLCV bucket in a per (symbol, timeframe) series.
// The most recent candle of a series is revised in place until its bucket
// closes; everything before it is append-only history.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// Timeframe identifies a candle bucket duration.
type Timeframe string

const (
	TF1m  Timeframe = "1m"
	TF3m  Timeframe = "3m"
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF30m Timeframe = "30m"
	TF1h  Timeframe = "1h"
	TF4h  Timeframe = "4h"
	TF1d  Timeframe = "1d"
	TF3d  Timeframe = "3d"
	TF7d  Timeframe = "7d"
	TF30d Timeframe = "30d"
)

// SupportedTimeframes lists every timeframe a symbol keeps a candle series for.
var SupportedTimeframes = []Timeframe{
	TF1m, TF3m, TF5m, TF15m, TF30m, TF1h, TF4h, TF1d, TF3d, TF7d, TF30d,
}

var timeframeDurations = map[Timeframe]time.Duration{
	TF1m:  time.Minute,
	TF3m:  3 * time.Minute,
	TF5m:  5 * time.Minute,
	TF15m: 15 * time.Minute,
	TF30m: 30 * time.Minute,
	TF1h:  time.Hour,
	TF4h:  4 * time.Hour,
	TF1d:  24 * time.Hour,
	TF3d:  72 * time.Hour,
	TF7d:  7 * 24 * time.Hour,
	TF30d: 30 * 24 * time.Hour,
}

// Duration returns the bucket length for the timeframe, defaulting to one
// minute for unknown values.
func (tf Timeframe) Duration() time.Duration {
	if d, ok := timeframeDurations[tf]; ok {
		return d
	}
	return time.Minute
}

// IsValid reports whether tf is a supported timeframe.
func (tf Timeframe) IsValid() bool {
	_, ok := timeframeDurations[tf]
	return ok
}

// SupportedSymbols is the default tracked futures universe.
var SupportedSymbols = []string{
	"BTC", "ETH", "SOL", "XRP", "DOGE", "ADA", "AVAX", "LINK", "MATIC", "DOT",
	"TRX", "LTC", "SHIB", "UNI", "ATOM", "XLM", "ETC", "FIL", "HBAR", "APT",
	"ARB", "OP", "INJ", "RNDR", "PEPE", "SUI", "SEI", "TIA", "ORDI", "WIF",
}
