package engine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"fluxterm/internal/analytics"
	"fluxterm/internal/domain"
	"fluxterm/internal/feed"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testEngine(clock *fakeClock, symbols ...string) *Engine {
	if len(symbols) == 0 {
		symbols = []string{"BTC", "ETH"}
	}
	return New(Config{
		Symbols:    symbols,
		BasePrices: map[string]float64{"BTC": 50000, "ETH": 3000},
		Now:        clock.Now,
		Rand:       rand.New(rand.NewSource(7)),
	})
}

func TestNew_SeedsEverySymbol(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	snaps := e.Snapshots(ViewAll, SortBySymbol)
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Symbol != "BTC" || snaps[1].Symbol != "ETH" {
		t.Fatalf("symbol sort wrong: %s %s", snaps[0].Symbol, snaps[1].Symbol)
	}
	for _, snap := range snaps {
		if snap.Price <= 0 {
			t.Fatalf("%s has no price", snap.Symbol)
		}
		if _, ok := snap.Technical[domain.TF15m]; !ok {
			t.Fatalf("%s missing primary timeframe state", snap.Symbol)
		}
		if _, ok := snap.Technical[domain.TF1h]; !ok {
			t.Fatalf("%s missing context timeframe state", snap.Symbol)
		}
		if snap.ATR[domain.TF15m] <= 0 {
			t.Fatalf("%s has no ATR from seeded history", snap.Symbol)
		}
		if snap.Levels.DayHigh <= 0 || snap.Levels.DayLow <= 0 {
			t.Fatalf("%s has no day levels", snap.Symbol)
		}
		if snap.Confidence < 0 || snap.Confidence > 100 {
			t.Fatalf("%s confidence %v out of range", snap.Symbol, snap.Confidence)
		}
	}
}

func TestPushUpdate_PriceAppliedOnTick(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock)

	e.PushUpdate(feed.PriceUpdate{Symbol: "BTC", Price: 60000, Timestamp: clock.Now()})
	clock.Advance(time.Second)
	e.Tick()

	snap, ok := e.Snapshot("BTC")
	if !ok {
		t.Fatal("BTC snapshot missing")
	}
	// The synthetic walk steps after the queued update is applied, so the
	// price is the walk's small move off 60000, not the old 50000 level.
	if snap.Price < 59000 || snap.Price > 61000 {
		t.Fatalf("pushed price not applied: %v", snap.Price)
	}
}

func TestPushUpdate_UnknownSymbolIsNoop(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock)
	e.PushUpdate(feed.PriceUpdate{Symbol: "DOGE", Price: 1, Timestamp: clock.Now()})
	clock.Advance(time.Second)
	e.Tick()

	if _, ok := e.Snapshot("DOGE"); ok {
		t.Fatal("unknown symbol must not create state")
	}
	if got := len(e.Snapshots(ViewAll, SortBySymbol)); got != 2 {
		t.Fatalf("universe grew to %d", got)
	}
}

func TestTick_PausedSuspendsOnlyTriggers(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock)

	// A trade opened before pausing must keep being managed.
	e.book.Open(domain.Signal{
		ID:         "sig_hold",
		Symbol:     "BTC",
		StrategyID: domain.StrategyRSIReversal,
		Direction:  domain.DirectionLong,
		Timestamp:  clock.Now(),
		Price:      50000,
	}, domain.TierA, 30)

	e.SetPaused(true)
	e.PushUpdate(feed.PriceUpdate{Symbol: "BTC", Price: 60000, Timestamp: clock.Now()})
	clock.Advance(time.Second)
	res := e.Tick()
	if len(res.NewSignals) != 0 || len(res.NewEvents) != 0 {
		t.Fatal("paused tick must not fire strategies")
	}
	snap, _ := e.Snapshot("BTC")
	if snap.Price < 59000 || snap.Price > 61000 {
		t.Fatalf("paused tick dropped the queued update: %v", snap.Price)
	}

	// Hold expiry still closes the trade while paused.
	clock.Advance(2 * time.Minute)
	res = e.Tick()
	if len(res.NewSignals) != 0 {
		t.Fatal("paused tick must not fire strategies")
	}
	if len(res.ClosedTrades) != 1 {
		t.Fatalf("closed %d trades during paused ticks, want 1", len(res.ClosedTrades))
	}
	if got := res.ClosedTrades[0].ExitReason; got != domain.ExitTime {
		t.Fatalf("exit reason = %s, want %s", got, domain.ExitTime)
	}

	// Resuming picks triggers back up without replaying anything stale.
	e.SetPaused(false)
	clock.Advance(time.Second)
	e.Tick()
	if resumed, _ := e.Snapshot("BTC"); resumed.Price <= 0 {
		t.Fatalf("resume lost price state: %v", resumed.Price)
	}
}

func TestTick_DisabledStrategiesDoNotDispatchEvents(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock)
	for _, s := range e.Strategies() {
		if err := e.SetStrategyEnabled(s.ID, false); err != nil {
			t.Fatalf("disable %s: %v", s.ID, err)
		}
	}

	for i := 0; i < 200; i++ {
		clock.Advance(time.Second)
		res := e.Tick()
		if len(res.NewEvents) != 0 {
			t.Fatalf("disabled strategy dispatched events: %+v", res.NewEvents)
		}
	}
	if got := len(e.Events()); got != 0 {
		t.Fatalf("event feed has %d entries with every strategy disabled", got)
	}
	if got := e.UnreadEvents(); got != 0 {
		t.Fatalf("unread = %d with every strategy disabled", got)
	}
	if got := len(e.TradeHistory()); got != 0 {
		t.Fatalf("disabled strategies opened %d trades", got)
	}
}

func TestSnapshots_AreDeepCopies(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	snap, _ := e.Snapshot("BTC")
	snap.Technical[domain.TF15m] = domain.IndicatorState{
		RSI: domain.RSIData{Value: -1},
	}
	snap.Tags = append(snap.Tags, "poison")

	fresh, _ := e.Snapshot("BTC")
	if fresh.Technical[domain.TF15m].RSI.Value == -1 {
		t.Fatal("mutating a snapshot copy leaked into the engine")
	}
	for _, tag := range fresh.Tags {
		if tag == "poison" {
			t.Fatal("tag mutation leaked into the engine")
		}
	}
}

func TestWatchlistViewAndToggle(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	if got := e.Snapshots(ViewWatchlist, SortBySymbol); len(got) != 0 {
		t.Fatalf("empty watchlist returned %d snapshots", len(got))
	}

	if !e.ToggleWatchlist("ETH") {
		t.Fatal("toggle on must report true")
	}
	got := e.Snapshots(ViewWatchlist, SortBySymbol)
	if len(got) != 1 || got[0].Symbol != "ETH" {
		t.Fatalf("watchlist view wrong: %+v", got)
	}
	if e.ToggleWatchlist("ETH") {
		t.Fatal("toggle off must report false")
	}
	if got := e.Watchlist(); len(got) != 0 {
		t.Fatalf("watchlist not cleared: %v", got)
	}
}

func TestFilteredView(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	// A condition nothing satisfies empties the filtered view.
	e.SetFilterRules([]domain.FilterRule{{
		Metric:    domain.MetricRSI,
		Operator:  domain.OpGreater,
		Operand:   domain.NumberOperand(1000),
		Timeframe: domain.TF15m,
	}})
	if got := e.Snapshots(ViewFiltered, SortBySymbol); len(got) != 0 {
		t.Fatalf("impossible rule matched %d symbols", len(got))
	}

	e.SetFilterRules(nil)
	if got := e.Snapshots(ViewFiltered, SortBySymbol); len(got) != 2 {
		t.Fatalf("empty rule set must match all, got %d", len(got))
	}
}

func TestHotlistFiltersCapsAndRanks(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock, domain.SupportedSymbols...)
	for i := 0; i < 50; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}

	qualifying := 0
	for _, s := range e.Snapshots(ViewAll, SortBySymbol) {
		if s.Confidence > 70 && s.Execution.Tier != domain.TierC {
			qualifying++
		}
	}
	want := qualifying
	if want > hotlistSize {
		want = hotlistSize
	}

	got := e.Snapshots(ViewHotlist, SortByScore)
	if len(got) != want {
		t.Fatalf("hotlist size = %d, want %d", len(got), want)
	}
	for i, s := range got {
		if s.Confidence <= 70 || s.Execution.Tier == domain.TierC {
			t.Fatalf("unqualified entry on hotlist: %+v", s)
		}
		if i > 0 && s.Confidence > got[i-1].Confidence {
			t.Fatalf("hotlist not ranked by confidence at %d", i)
		}
	}
}

func TestTick_TradingInvariants(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock, domain.SupportedSymbols...)

	for i := 0; i < 300; i++ {
		clock.Advance(time.Second)
		e.Tick()

		open := make(map[string]int)
		for _, trade := range e.TradeHistory() {
			if trade.Result == domain.ResultOpen {
				open[trade.Symbol+"|"+trade.StrategyID]++
				continue
			}
			if math.Abs(trade.NetReturnPct-(trade.GrossReturnPct-trade.FeePct)) > 1e-9 {
				t.Fatalf("fee law violated: net %v gross %v fee %v",
					trade.NetReturnPct, trade.GrossReturnPct, trade.FeePct)
			}
			if trade.MFEPct < 0 || trade.MAEPct > 0 {
				t.Fatalf("excursion signs wrong: mfe %v mae %v", trade.MFEPct, trade.MAEPct)
			}
			if trade.ExitTime == nil || trade.ExitPrice == nil {
				t.Fatal("closed trade missing exit data")
			}
		}
		for key, n := range open {
			if n > 1 {
				t.Fatalf("%d open trades for %s", n, key)
			}
		}
	}

	// Cooldown invariant over the whole run.
	lastSeen := make(map[string]time.Time)
	strategies := make(map[string]time.Duration)
	for _, s := range e.Strategies() {
		cd := s.Cooldown
		if cd <= 0 {
			cd = time.Minute
		}
		strategies[s.ID] = cd
	}
	log := e.SignalLog()
	for i := len(log) - 1; i >= 0; i-- { // oldest first
		sig := log[i]
		key := sig.Symbol + "|" + sig.StrategyID
		if prev, ok := lastSeen[key]; ok {
			if gap := sig.Timestamp.Sub(prev); gap < strategies[sig.StrategyID] {
				t.Fatalf("cooldown violated for %s: gap %v", key, gap)
			}
		}
		lastSeen[key] = sig.Timestamp
	}
}

func TestStats_ReflectClosedTrades(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock, domain.SupportedSymbols...)
	for i := 0; i < 240; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}

	stats, global := e.Stats(analytics.SortByTrades, true)
	var closed int
	for _, trade := range e.TradeHistory() {
		if trade.Result != domain.ResultOpen {
			closed++
		}
	}
	if global.TotalClosed != closed {
		t.Fatalf("global closed %d != history closed %d", global.TotalClosed, closed)
	}
	if global.TotalSignals != len(e.SignalLog()) {
		t.Fatalf("global signals %d != log %d", global.TotalSignals, len(e.SignalLog()))
	}
	for i := 1; i < len(stats); i++ {
		if stats[i].TradesClosed > stats[i-1].TradesClosed {
			t.Fatalf("stats not sorted by trades desc at %d", i)
		}
	}
}

func TestSetAnalyticsSettings_FreezesHoldPerTrade(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	e.SetAnalyticsSettings(domain.AnalyticsSettings{
		HoldSeconds: 90,
		TimeWindow:  domain.Window1h,
		ViewMode:    domain.ViewGross,
	})
	got := e.AnalyticsSettings()
	if got.HoldSeconds != 90 || got.ViewMode != domain.ViewGross {
		t.Fatalf("settings not applied: %+v", got)
	}

	// Zero values fall back to defaults instead of breaking new trades.
	e.SetAnalyticsSettings(domain.AnalyticsSettings{})
	got = e.AnalyticsSettings()
	if got.HoldSeconds != 30 || got.TimeWindow != domain.WindowAll || got.ViewMode != domain.ViewNet {
		t.Fatalf("defaults not restored: %+v", got)
	}
}

func TestSetTimeframes(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	e.SetTimeframes(domain.TF5m, domain.TF4h)
	p, c := e.Timeframes()
	if p != domain.TF5m || c != domain.TF4h {
		t.Fatalf("timeframes = %s/%s, want 5m/4h", p, c)
	}
	snap, _ := e.Snapshot("BTC")
	if _, ok := snap.Technical[domain.TF5m]; !ok {
		t.Fatal("indicator state not recomputed for the new primary timeframe")
	}

	e.SetTimeframes("bogus", domain.TF1d)
	p, c = e.Timeframes()
	if p != domain.TF5m || c != domain.TF1d {
		t.Fatalf("invalid primary must keep selection, got %s/%s", p, c)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	a := testEngine(clock)
	a.ToggleWatchlist("BTC")
	a.SetTimeframes(domain.TF5m, domain.TF4h)
	a.SetAnalyticsSettings(domain.AnalyticsSettings{HoldSeconds: 60, TimeWindow: domain.Window24h, ViewMode: domain.ViewGross})
	if err := a.SetStrategyEnabled(domain.StrategyOISurge, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.SavePreset(domain.Preset{ID: "p1", Name: "momentum"})
	a.SetFilterRules([]domain.FilterRule{{
		Metric: domain.MetricRSI, Operator: domain.OpLess,
		Operand: domain.NumberOperand(30), Timeframe: domain.TF5m,
	}})

	b := testEngine(newFakeClock())
	b.ApplyPreferences(a.Preferences())

	if got := b.Watchlist(); len(got) != 1 || got[0] != "BTC" {
		t.Fatalf("watchlist not restored: %v", got)
	}
	p, c := b.Timeframes()
	if p != domain.TF5m || c != domain.TF4h {
		t.Fatalf("timeframes not restored: %s/%s", p, c)
	}
	if got := b.AnalyticsSettings(); got.HoldSeconds != 60 || got.ViewMode != domain.ViewGross {
		t.Fatalf("analytics settings not restored: %+v", got)
	}
	found := false
	for _, s := range b.Strategies() {
		if s.ID == domain.StrategyOISurge && s.Enabled {
			found = true
		}
	}
	if !found {
		t.Fatal("strategy enable flag not restored")
	}
	if got := b.Presets(); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("presets not restored: %+v", got)
	}
	if got := b.FilterRules(); len(got) != 1 {
		t.Fatalf("filter rules not restored: %+v", got)
	}
}

func TestSavePreset_ReplacesById(t *testing.T) {
	t.Parallel()

	e := testEngine(newFakeClock())
	e.SavePreset(domain.Preset{ID: "p1", Name: "old"})
	e.SavePreset(domain.Preset{ID: "p1", Name: "new"})
	got := e.Presets()
	if len(got) != 1 || got[0].Name != "new" {
		t.Fatalf("preset not replaced: %+v", got)
	}
	e.DeletePreset("p1")
	if got := e.Presets(); len(got) != 0 {
		t.Fatalf("preset not deleted: %+v", got)
	}
}

func TestCandleUpdate_RevisesOpenBucket(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	e := testEngine(clock)
	bucket := clock.Now().Truncate(domain.TF1m.Duration())

	e.PushUpdate(feed.CandleUpdate{
		Symbol:    "BTC",
		Timeframe: domain.TF1m,
		Candle:    domain.Candle{OpenTime: bucket, Open: 50000, High: 50100, Low: 49900, Close: 50050, Volume: 10},
		IsFinal:   false,
	})
	e.PushUpdate(feed.CandleUpdate{
		Symbol:    "BTC",
		Timeframe: domain.TF1m,
		Candle:    domain.Candle{OpenTime: bucket, Open: 50000, High: 50200, Low: 49900, Close: 50150, Volume: 25},
		IsFinal:   true,
	})
	clock.Advance(time.Second)
	e.Tick()

	snap, _ := e.Snapshot("BTC")
	if snap.Volume1m < 25 {
		t.Fatalf("revised bucket volume not applied: %v", snap.Volume1m)
	}
}
