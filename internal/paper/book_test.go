package paper

import (
	"math"
	"testing"
	"time"

	"fluxterm/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func longSignal(clock *fakeClock) domain.Signal {
	return domain.Signal{
		ID:         "sig_1",
		Timestamp:  clock.Now(),
		Symbol:     "BTC",
		StrategyID: domain.StrategyRSIReversal,
		Direction:  domain.DirectionLong,
		Price:      100,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOpen_FeeChargedAtEntry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	trade, ok := b.Open(longSignal(clock), domain.TierB, 30)
	if !ok {
		t.Fatal("expected trade to open")
	}
	if trade.FeePct != 0.05 {
		t.Fatalf("tier B fee = %v, want 0.05", trade.FeePct)
	}
	if !almostEqual(trade.NetReturnPct, -0.05) {
		t.Fatalf("fresh net return = %v, want -fee", trade.NetReturnPct)
	}
	if trade.Result != domain.ResultOpen {
		t.Fatalf("result = %v, want OPEN", trade.Result)
	}
	if trade.HoldSeconds != 30 {
		t.Fatalf("hold = %d, want frozen 30", trade.HoldSeconds)
	}
}

func TestOpen_IdempotentPerPair(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	if _, ok := b.Open(longSignal(clock), domain.TierA, 30); !ok {
		t.Fatal("first open must succeed")
	}
	if _, ok := b.Open(longSignal(clock), domain.TierA, 30); ok {
		t.Fatal("second open for the same (symbol, strategy) must be skipped")
	}

	// A different strategy on the same symbol is a separate slot.
	other := longSignal(clock)
	other.StrategyID = domain.StrategyMACDMomentum
	if _, ok := b.Open(other, domain.TierA, 30); !ok {
		t.Fatal("different strategy must open")
	}
	if got := len(b.OpenTrades()); got != 2 {
		t.Fatalf("open trades = %d, want 2", got)
	}
}

func TestUpdate_TimeExitWin(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	b.Open(longSignal(clock), domain.TierA, 30)

	// Hold window still running: no close.
	clock.Advance(15 * time.Second)
	if closed := b.Update("BTC", 100.5, 0); len(closed) != 0 {
		t.Fatalf("expected no close mid-hold, got %d", len(closed))
	}

	clock.Advance(15 * time.Second)
	closed := b.Update("BTC", 101, 0)
	if len(closed) != 1 {
		t.Fatalf("expected 1 close at hold expiry, got %d", len(closed))
	}
	trade := closed[0]
	if trade.ExitReason != domain.ExitTime {
		t.Fatalf("exit reason = %v, want TIME", trade.ExitReason)
	}
	if !almostEqual(trade.GrossReturnPct, 1.00) {
		t.Fatalf("gross = %v, want 1.00", trade.GrossReturnPct)
	}
	if !almostEqual(trade.NetReturnPct, 0.98) {
		t.Fatalf("net = %v, want 0.98", trade.NetReturnPct)
	}
	if trade.Result != domain.ResultWin {
		t.Fatalf("result = %v, want WIN", trade.Result)
	}
	if trade.ExitPrice == nil || *trade.ExitPrice != 101 {
		t.Fatalf("exit price not frozen: %+v", trade.ExitPrice)
	}
	if len(b.OpenTrades()) != 0 {
		t.Fatal("closed trade still open")
	}
}

func TestUpdate_VWAPInvalidationBeatsTime(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	sig := longSignal(clock)
	sig.StrategyID = domain.StrategyVWAPCross
	sig.Price = 100.5
	b.Open(sig, domain.TierA, 30)

	// Price drops 0.3% under the anchor well before the hold expires.
	clock.Advance(5 * time.Second)
	closed := b.Update("BTC", 99.7, 100)
	if len(closed) != 1 {
		t.Fatalf("expected immediate invalidation close, got %d", len(closed))
	}
	trade := closed[0]
	if trade.ExitReason != domain.ExitInvalidation {
		t.Fatalf("exit reason = %v, want INVALIDATION", trade.ExitReason)
	}
	if trade.Result != domain.ResultLoss {
		t.Fatalf("result = %v, want LOSS", trade.Result)
	}
}

func TestUpdate_ShortInvalidationMirror(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	sig := longSignal(clock)
	sig.StrategyID = domain.StrategyVWAPCross
	sig.Direction = domain.DirectionShort
	sig.Price = 99.5
	b.Open(sig, domain.TierA, 30)

	clock.Advance(5 * time.Second)
	closed := b.Update("BTC", 100.3, 100)
	if len(closed) != 1 || closed[0].ExitReason != domain.ExitInvalidation {
		t.Fatalf("expected SHORT invalidation above the anchor band, got %+v", closed)
	}
}

func TestUpdate_InvalidationOnlyForVWAPCross(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	b.Open(longSignal(clock), domain.TierA, 30)

	clock.Advance(5 * time.Second)
	if closed := b.Update("BTC", 99.0, 100); len(closed) != 0 {
		t.Fatalf("non-vwap trade must not invalidate, got %d closes", len(closed))
	}
}

func TestUpdate_ExcursionTracking(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	b.Open(longSignal(clock), domain.TierA, 60)

	clock.Advance(10 * time.Second)
	b.Update("BTC", 102, 0) // +2%
	clock.Advance(10 * time.Second)
	b.Update("BTC", 99, 0) // -1%
	clock.Advance(10 * time.Second)
	b.Update("BTC", 100.5, 0)

	open := b.OpenTrades()
	if len(open) != 1 {
		t.Fatalf("expected trade still open, got %d", len(open))
	}
	trade := open[0]
	if !almostEqual(trade.MFEPct, 2) {
		t.Fatalf("mfe = %v, want 2", trade.MFEPct)
	}
	if !almostEqual(trade.MAEPct, -1) {
		t.Fatalf("mae = %v, want -1", trade.MAEPct)
	}
	if trade.MFEPct < 0 || trade.MAEPct > 0 {
		t.Fatal("mfe must stay >= 0 and mae <= 0")
	}
}

func TestUpdate_ShortSignedReturn(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	sig := longSignal(clock)
	sig.Direction = domain.DirectionShort
	b.Open(sig, domain.TierA, 30)

	clock.Advance(30 * time.Second)
	closed := b.Update("BTC", 98, 0)
	if len(closed) != 1 {
		t.Fatalf("expected close, got %d", len(closed))
	}
	if !almostEqual(closed[0].GrossReturnPct, 2) {
		t.Fatalf("short gross = %v, want +2 on a 2%% drop", closed[0].GrossReturnPct)
	}
}

func TestUpdate_NetEqualsGrossMinusFee(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	b.Open(longSignal(clock), domain.TierC, 30)
	clock.Advance(30 * time.Second)
	closed := b.Update("BTC", 103.7, 0)
	if len(closed) != 1 {
		t.Fatalf("expected close, got %d", len(closed))
	}
	trade := closed[0]
	if !almostEqual(trade.NetReturnPct, trade.GrossReturnPct-trade.FeePct) {
		t.Fatalf("net %v != gross %v - fee %v", trade.NetReturnPct, trade.GrossReturnPct, trade.FeePct)
	}
}

func TestUpdate_OtherSymbolsUntouched(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	b.Open(longSignal(clock), domain.TierA, 30)

	clock.Advance(60 * time.Second)
	if closed := b.Update("ETH", 50, 0); len(closed) != 0 {
		t.Fatalf("updating another symbol must not close BTC trades, got %d", len(closed))
	}
	if len(b.OpenTrades()) != 1 {
		t.Fatal("trade disappeared")
	}
}

func TestHistoryCapAndOrder(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewBook(clock.Now)
	for i := 0; i < historyCap+25; i++ {
		sig := longSignal(clock)
		sig.Timestamp = clock.Now()
		b.Open(sig, domain.TierA, 1)
		clock.Advance(2 * time.Second)
		b.Update("BTC", 100.1, 0)
	}
	hist := b.History()
	if len(hist) != historyCap {
		t.Fatalf("history length = %d, want cap %d", len(hist), historyCap)
	}
	if !hist[0].EntryTime.After(hist[len(hist)-1].EntryTime) {
		t.Fatal("history must be most recent first")
	}
}

func TestFeeForTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tier domain.ExecutionTier
		want float64
	}{
		{domain.TierA, 0.02},
		{domain.TierB, 0.05},
		{domain.TierC, 0.10},
		{"", 0.10},
	}
	for _, tc := range cases {
		if got := FeeForTier(tc.tier); got != tc.want {
			t.Fatalf("FeeForTier(%q) = %v, want %v", tc.tier, got, tc.want)
		}
	}
}
