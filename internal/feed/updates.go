package feed

import (
	"time"

	"fluxterm/internal/domain"
)

// Update is a typed market-data message. The feed adapter produces them and
// the tick loop drains them at the start of each pass, so the core sees a
// deterministic ordering instead of racing callbacks.
type Update interface {
	UpdateSymbol() string
}

// PriceUpdate carries the latest traded price for a symbol.
type PriceUpdate struct {
	Symbol    string
	Price     float64
	Timestamp time.Time
}

func (u PriceUpdate) UpdateSymbol() string { return u.Symbol }

// CandleUpdate revises or finalizes one candle bucket. IsFinal=false means
// the bucket is still open and the candle replaces the in-progress one.
type CandleUpdate struct {
	Symbol    string
	Timeframe domain.Timeframe
	Candle    domain.Candle
	IsFinal   bool
}

func (u CandleUpdate) UpdateSymbol() string { return u.Symbol }

// TradeTick is a single aggressor print.
type TradeTick struct {
	Symbol   string
	IsSell   bool
	Quantity float64
}

func (u TradeTick) UpdateSymbol() string { return u.Symbol }

// BookTick is a top-of-book revision.
type BookTick struct {
	Symbol  string
	BestBid float64
	BestAsk float64
}

func (u BookTick) UpdateSymbol() string { return u.Symbol }
