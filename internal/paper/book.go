package paper

import (
	"fmt"
	"time"

	"fluxterm/internal/domain"
)

const (
	historyCap = 500

	// Invalidation band around the VWAP anchor for vwap_cross trades.
	invalidationPct = 0.2
)

// FeeForTier maps an execution quality tier to the flat entry fee percent.
func FeeForTier(tier domain.ExecutionTier) float64 {
	switch tier {
	case domain.TierA:
		return 0.02
	case domain.TierB:
		return 0.05
	default:
		return 0.10
	}
}

// Book tracks simulated trades. At most one open trade exists per
// (symbol, strategy) pair; closed trades are immutable. Not safe for
// concurrent use; the owning engine serializes access.
type Book struct {
	now     func() time.Time
	open    map[string]*domain.SimTrade
	history []domain.SimTrade
	seq     int
}

func NewBook(now func() time.Time) *Book {
	if now == nil {
		now = time.Now
	}
	return &Book{now: now, open: make(map[string]*domain.SimTrade)}
}

// Open creates a trade for the signal unless one is already open for the
// same (symbol, strategy). The fee is charged once at entry, so a fresh
// trade starts with a net return of -fee. holdSeconds is frozen into the
// trade and never re-read from settings.
func (b *Book) Open(sig domain.Signal, tier domain.ExecutionTier, holdSeconds int) (domain.SimTrade, bool) {
	key := sig.Symbol + "|" + sig.StrategyID
	if _, exists := b.open[key]; exists {
		return domain.SimTrade{}, false
	}
	fee := FeeForTier(tier)
	b.seq++
	trade := &domain.SimTrade{
		ID:           fmt.Sprintf("trade_%d", b.seq),
		Symbol:       sig.Symbol,
		StrategyID:   sig.StrategyID,
		Direction:    sig.Direction,
		EntryTime:    sig.Timestamp,
		EntryPrice:   sig.Price,
		HoldSeconds:  holdSeconds,
		Result:       domain.ResultOpen,
		FeePct:       fee,
		NetReturnPct: -fee,
	}
	b.open[key] = trade
	return *trade, true
}

// Update advances every open trade for the symbol against the current price:
// excursion tracking first, then the exit checks. Invalidation is checked
// before hold-duration expiry. Returns the trades closed by this tick.
func (b *Book) Update(symbol string, price float64, vwapAnchor float64) []domain.SimTrade {
	if price <= 0 {
		return nil
	}
	now := b.now()
	var closed []domain.SimTrade
	for key, trade := range b.open {
		if trade.Symbol != symbol {
			continue
		}
		gross := signedReturn(trade, price)
		trade.GrossReturnPct = gross
		trade.NetReturnPct = gross - trade.FeePct
		if gross > trade.MFEPct {
			trade.MFEPct = gross
		}
		if gross < trade.MAEPct {
			trade.MAEPct = gross
		}

		reason := domain.ExitNone
		if trade.StrategyID == domain.StrategyVWAPCross && invalidated(trade, price, vwapAnchor) {
			reason = domain.ExitInvalidation
		} else if !now.Before(trade.EntryTime.Add(time.Duration(trade.HoldSeconds) * time.Second)) {
			reason = domain.ExitTime
		}
		if reason == domain.ExitNone {
			continue
		}

		exitTime := now
		exitPrice := price
		trade.ExitTime = &exitTime
		trade.ExitPrice = &exitPrice
		trade.ExitReason = reason
		switch {
		case trade.NetReturnPct > 0:
			trade.Result = domain.ResultWin
		case trade.NetReturnPct < 0:
			trade.Result = domain.ResultLoss
		default:
			trade.Result = domain.ResultFlat
		}
		delete(b.open, key)
		b.record(*trade)
		closed = append(closed, *trade)
	}
	return closed
}

// OpenTrades returns the open trades by value.
func (b *Book) OpenTrades() []domain.SimTrade {
	out := make([]domain.SimTrade, 0, len(b.open))
	for _, t := range b.open {
		out = append(out, *t)
	}
	return out
}

// History returns closed trades, most recent first.
func (b *Book) History() []domain.SimTrade {
	out := make([]domain.SimTrade, len(b.history))
	copy(out, b.history)
	return out
}

// All returns open trades followed by the closed history.
func (b *Book) All() []domain.SimTrade {
	return append(b.OpenTrades(), b.History()...)
}

func (b *Book) record(trade domain.SimTrade) {
	b.history = append([]domain.SimTrade{trade}, b.history...)
	if len(b.history) > historyCap {
		b.history = b.history[:historyCap]
	}
}

// signedReturn is positive when price moved in the trade's favor, in percent.
func signedReturn(trade *domain.SimTrade, price float64) float64 {
	if trade.EntryPrice == 0 {
		return 0
	}
	raw := (price - trade.EntryPrice) / trade.EntryPrice * 100
	if trade.Direction == domain.DirectionShort {
		return -raw
	}
	return raw
}

func invalidated(trade *domain.SimTrade, price, anchor float64) bool {
	if anchor <= 0 {
		return false
	}
	if trade.Direction == domain.DirectionLong {
		return price < anchor*(1-invalidationPct/100)
	}
	return price > anchor*(1+invalidationPct/100)
}
