package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"fluxterm/internal/alert"
	"fluxterm/internal/analytics"
	"fluxterm/internal/domain"
	"fluxterm/internal/event"
	"fluxterm/internal/feed"
	"fluxterm/internal/paper"
	"fluxterm/internal/screener"
	"fluxterm/internal/strategy"
	"fluxterm/internal/ta"
)

const (
	// seriesCap bounds each candle series; indicators recompute over a
	// smaller window so trimming never changes results.
	seriesCap = 300

	historyBars = 250

	levelProximityPct = 0.5

	whalePrintQty = 3.0

	cvdHistoryCap = 60
)

// Config seeds a new engine. Zero values fall back to the defaults used by
// the server.
type Config struct {
	Symbols    []string
	BasePrices map[string]float64
	PrimaryTF  domain.Timeframe
	ContextTF  domain.Timeframe
	Now        func() time.Time
	Rand       *rand.Rand
}

// TickResult reports what one tick produced, for persistence and dispatch.
type TickResult struct {
	NewSignals   []domain.Signal
	ClosedTrades []domain.SimTrade
	NewEvents    []domain.AlertEvent
}

// SnapshotView selects which symbols Snapshots returns.
type SnapshotView string

const (
	ViewAll       SnapshotView = "all"
	ViewWatchlist SnapshotView = "watchlist"
	ViewHotlist   SnapshotView = "hotlist"
	ViewFiltered  SnapshotView = "filtered"
)

// SnapshotSort selects the ordering of Snapshots.
type SnapshotSort string

const (
	SortBySymbol     SnapshotSort = "symbol"
	SortByScore      SnapshotSort = "score"
	SortByChange     SnapshotSort = "change"
	SortByPrice      SnapshotSort = "price"
	SortByConfidence SnapshotSort = "confidence"
)

const hotlistSize = 10

type symbolState struct {
	snap    domain.CoinSnapshot
	candles map[domain.Timeframe][]domain.Candle

	// Session VWAP accumulators and the above-anchor streak.
	vwapPV     float64
	vwapVolume float64
	aboveTicks int

	buyVolume  float64
	sellVolume float64
}

// Engine owns all mutable screener state: candle series, snapshots, the
// signal log, the trade book, and the event feed. Every engine is a fully
// independent instance; nothing here is process-global. All exported state
// is returned by value so callers cannot corrupt the internals.
type Engine struct {
	mu sync.Mutex

	now     func() time.Time
	symbols []string
	states  map[string]*symbolState

	queue  *feed.Queue
	source *feed.SyntheticSource

	registry *strategy.Registry
	alerts   *alert.Engine
	book     *paper.Book
	events   *event.Feed

	primaryTF domain.Timeframe
	contextTF domain.Timeframe
	settings  domain.AnalyticsSettings

	watchlist   map[string]bool
	filterRules []domain.FilterRule
	presets     []domain.Preset

	paused bool
}

func New(cfg Config) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = domain.SupportedSymbols
	}
	if cfg.PrimaryTF == "" {
		cfg.PrimaryTF = domain.TF15m
	}
	if cfg.ContextTF == "" {
		cfg.ContextTF = domain.TF1h
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		now:       cfg.Now,
		symbols:   append([]string(nil), cfg.Symbols...),
		states:    make(map[string]*symbolState, len(cfg.Symbols)),
		queue:     feed.NewQueue(),
		source:    feed.NewSyntheticSource(cfg.Symbols, cfg.BasePrices, cfg.Rand, cfg.Now),
		registry:  strategy.Defaults(),
		alerts:    alert.NewEngine(cfg.Now),
		book:      paper.NewBook(cfg.Now),
		events:    event.NewFeed(cfg.Now),
		primaryTF: cfg.PrimaryTF,
		contextTF: cfg.ContextTF,
		settings:  domain.DefaultAnalyticsSettings(),
		watchlist: make(map[string]bool),
	}

	for _, sym := range e.symbols {
		st := &symbolState{
			snap: domain.CoinSnapshot{
				Symbol:    sym,
				Price:     e.source.Price(sym),
				Technical: make(map[domain.Timeframe]domain.IndicatorState),
				ATR:       make(map[domain.Timeframe]float64),
				Execution: domain.ExecutionData{Tier: domain.TierB},
				VWAP:      domain.VWAPData{State: domain.VWAPBelow},
			},
			candles: make(map[domain.Timeframe][]domain.Candle, len(domain.SupportedTimeframes)),
		}
		for _, tf := range domain.SupportedTimeframes {
			st.candles[tf] = e.source.GenerateCandles(sym, tf, historyBars)
		}
		e.states[sym] = st
		e.recompute(st)
	}
	return e
}

// PushUpdate queues an external market-data update for the next tick. Safe
// to call from any goroutine.
func (e *Engine) PushUpdate(u feed.Update) {
	e.queue.Push(u)
}

// Tick runs one full pass: drain queued updates, advance the synthetic
// walk, recompute per-symbol state, evaluate strategies, update open
// trades, and merge new firings into the event feed.
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result TickResult

	// External updates first so the synthetic walk continues from the
	// latest delivered price instead of stepping over it.
	for _, u := range e.queue.Drain() {
		e.apply(u)
	}
	e.source.Step(e.queue)
	for _, u := range e.queue.Drain() {
		e.apply(u)
	}

	strategies := e.registry.List()
	for _, sym := range e.symbols {
		st := e.states[sym]
		prevVWAP := st.snap.VWAP.State
		e.recompute(st)

		// Pausing suspends only trigger evaluation. The walk, update
		// application, and open-trade exits keep running so hold expiry
		// and invalidation fire on time.
		if !e.paused {
			firings := e.alerts.Evaluate(&st.snap, prevVWAP, strategies, e.primaryTF)
			for _, f := range firings {
				result.NewSignals = append(result.NewSignals, f.Signal)
				if !f.Strategy.Enabled {
					continue
				}
				if _, opened := e.book.Open(f.Signal, st.snap.Execution.Tier, e.settings.HoldSeconds); !opened {
					continue
				}
				ev := event.BuildEvent(f, &st.snap, e.primaryTF)
				stored, merged := e.events.Publish(ev, f.Strategy.Name)
				if !merged {
					result.NewEvents = append(result.NewEvents, stored)
				}
			}
		}

		closed := e.book.Update(sym, st.snap.Price, st.snap.VWAP.Price)
		result.ClosedTrades = append(result.ClosedTrades, closed...)
	}
	return result
}

func (e *Engine) apply(u feed.Update) {
	st, ok := e.states[u.UpdateSymbol()]
	if !ok {
		return
	}
	switch upd := u.(type) {
	case feed.PriceUpdate:
		if upd.Price <= 0 {
			return
		}
		st.snap.Price = upd.Price
		e.source.SetPrice(upd.Symbol, upd.Price)
		ts := upd.Timestamp
		if ts.IsZero() {
			ts = e.now()
		}
		st.snap.LastUpdate = ts.Unix()
		for _, tf := range domain.SupportedTimeframes {
			st.candles[tf] = rollBucket(st.candles[tf], tf, upd.Price, ts)
		}
		st.vwapPV += upd.Price
		st.vwapVolume++
	case feed.CandleUpdate:
		if !upd.Timeframe.IsValid() {
			return
		}
		st.candles[upd.Timeframe] = applyCandle(st.candles[upd.Timeframe], upd.Candle)
	case feed.TradeTick:
		if upd.Quantity <= 0 {
			return
		}
		of := &st.snap.Orderflow
		if upd.IsSell {
			st.sellVolume += upd.Quantity
			of.CVD -= upd.Quantity
		} else {
			st.buyVolume += upd.Quantity
			of.CVD += upd.Quantity
		}
		if st.sellVolume > 0 {
			of.TakerBuySellRatio = st.buyVolume / st.sellVolume
		}
		if upd.Quantity >= whalePrintQty {
			of.WhalePrints++
		}
		of.CVDHistory = append(of.CVDHistory, of.CVD)
		if len(of.CVDHistory) > cvdHistoryCap {
			of.CVDHistory = of.CVDHistory[len(of.CVDHistory)-cvdHistoryCap:]
		}
		if series := st.candles[domain.TF1m]; len(series) > 0 {
			series[len(series)-1].Volume += upd.Quantity
		}
	case feed.BookTick:
		if upd.BestBid <= 0 || upd.BestAsk <= upd.BestBid {
			return
		}
		mid := (upd.BestBid + upd.BestAsk) / 2
		exec := &st.snap.Execution
		exec.SpreadBps = (upd.BestAsk - upd.BestBid) / mid * 10000
		exec.DepthUSD = mid * 50
		exec.SlippageEst = exec.SpreadBps / 2
		exec.Tier = tierForSpread(exec.SpreadBps)
		st.snap.Orderflow.Imbalance = (upd.BestAsk - mid) / mid
		st.snap.Orderflow.OFI = st.buyVolume - st.sellVolume
	}
}

// rollBucket revises the in-progress candle or opens a new bucket when the
// timestamp crosses a bucket boundary, trimming the series at the cap.
func rollBucket(series []domain.Candle, tf domain.Timeframe, price float64, ts time.Time) []domain.Candle {
	bucket := ts.Truncate(tf.Duration())
	if n := len(series); n > 0 && series[n-1].OpenTime.Equal(bucket) {
		c := &series[n-1]
		if price > c.High {
			c.High = price
		}
		if price < c.Low {
			c.Low = price
		}
		c.Close = price
		return series
	}
	series = append(series, domain.Candle{
		OpenTime: bucket,
		Open:     price,
		High:     price,
		Low:      price,
		Close:    price,
	})
	if len(series) > seriesCap {
		series = series[len(series)-seriesCap:]
	}
	return series
}

// applyCandle merges an externally sourced candle into a series: a matching
// open time replaces the bucket in place, a newer one appends.
func applyCandle(series []domain.Candle, c domain.Candle) []domain.Candle {
	if n := len(series); n > 0 {
		if series[n-1].OpenTime.Equal(c.OpenTime) {
			series[n-1] = c
			return series
		}
		if c.OpenTime.Before(series[n-1].OpenTime) {
			return series
		}
	}
	series = append(series, c)
	if len(series) > seriesCap {
		series = series[len(series)-seriesCap:]
	}
	return series
}

func (e *Engine) recompute(st *symbolState) {
	snap := &st.snap

	if series := st.candles[domain.TF1m]; len(series) > 0 {
		last := series[len(series)-1]
		snap.Volume1m = last.Volume
		if n := len(series); n > 1 {
			snap.PriceChange1m = pctChange(series[n-2].Close, snap.Price)
		}
		if n := len(series); n > 5 {
			snap.PriceChange5m = pctChange(series[n-6].Close, snap.Price)
		}
		snap.VolumeDelta = volumeDelta(series)
	}

	for _, tf := range []domain.Timeframe{e.primaryTF, e.contextTF} {
		series := st.candles[tf]
		snap.Technical[tf] = ta.StateFromCandles(series)
		snap.ATR[tf] = ta.ATRFromCandles(series, ta.ATRPeriod)
	}

	e.recomputeVWAP(st)
	e.recomputeLevels(st)

	primary := snap.Technical[e.primaryTF]
	context := snap.Technical[e.contextTF]
	confidence := 50.0
	if primary.Trend.State == domain.TrendUp {
		confidence += 15
	}
	if context.Trend.State == domain.TrendUp {
		confidence += 10
	}
	if primary.MACD.Histogram > 0 {
		confidence += 10
	}
	if snap.VWAP.State == domain.VWAPAbove {
		confidence += 15
	}
	snap.Confidence = clamp(confidence, 0, 100)
	snap.Score = clamp(snap.Confidence+abs(snap.PriceChange5m)*5+snap.VolumeDelta*0.1, 0, 200)
	snap.Tags = buildTags(snap, e.primaryTF)
}

// recomputeVWAP updates the anchor and applies hysteresis: the state flips
// to above only on a strict cross over the anchor, and any price under the
// anchor drops it back to below.
func (e *Engine) recomputeVWAP(st *symbolState) {
	snap := &st.snap
	if st.vwapVolume > 0 {
		snap.VWAP.Price = st.vwapPV / st.vwapVolume
	} else if snap.VWAP.Price == 0 {
		snap.VWAP.Price = snap.Price
	}
	anchor := snap.VWAP.Price
	snap.VWAP.BandUpper = anchor * 1.005
	snap.VWAP.BandLower = anchor * 0.995

	holdTicks := 2
	if s, ok := e.registry.Get(domain.StrategyVWAPCross); ok && s.Params.VWAPHoldTicks > 0 {
		holdTicks = s.Params.VWAPHoldTicks
	}
	switch {
	case snap.Price > anchor:
		snap.VWAP.State = domain.VWAPAbove
		st.aboveTicks++
	case snap.Price < anchor:
		snap.VWAP.State = domain.VWAPBelow
		st.aboveTicks = 0
	}
	snap.VWAP.Reclaimed = snap.VWAP.State == domain.VWAPAbove && st.aboveTicks >= holdTicks
}

func (e *Engine) recomputeLevels(st *symbolState) {
	snap := &st.snap
	if daily := st.candles[domain.TF1d]; len(daily) > 0 {
		cur := daily[len(daily)-1]
		snap.Levels.DayHigh = cur.High
		snap.Levels.DayLow = cur.Low
		snap.Levels.DayOpen = cur.Open
		if len(daily) > 1 {
			snap.Levels.PrevClose = daily[len(daily)-2].Close
		}
	}
	if weekly := st.candles[domain.TF7d]; len(weekly) > 0 {
		cur := weekly[len(weekly)-1]
		snap.Levels.WeekHigh = cur.High
		snap.Levels.WeekLow = cur.Low
		snap.Levels.WeekOpen = cur.Open
	}
	snap.Levels.Proximity = proximity(snap.Price, snap.Levels)
}

// proximity returns the nearest tracked level within the threshold, day
// levels taking priority over week levels at equal distance.
func proximity(price float64, levels domain.LevelData) domain.LevelProximity {
	type candidate struct {
		level float64
		prox  domain.LevelProximity
	}
	best := domain.NearNone
	bestDist := levelProximityPct
	for _, c := range []candidate{
		{levels.DayHigh, domain.NearDayHigh},
		{levels.DayLow, domain.NearDayLow},
		{levels.WeekHigh, domain.NearWeekHigh},
		{levels.WeekLow, domain.NearWeekLow},
	} {
		if c.level <= 0 {
			continue
		}
		dist := abs(price-c.level) / c.level * 100
		if dist < bestDist {
			best = c.prox
			bestDist = dist
		}
	}
	return best
}

func buildTags(snap *domain.CoinSnapshot, primaryTF domain.Timeframe) []string {
	var tags []string
	if st, ok := snap.Technical[primaryTF]; ok {
		if st.RSI.State != domain.RSINeutral {
			tags = append(tags, string(st.RSI.State))
		}
		if st.MACD.Cross != domain.CrossNone {
			tags = append(tags, "macd_"+string(st.MACD.Cross))
		}
	}
	if snap.VWAP.Reclaimed {
		tags = append(tags, "vwap_reclaim")
	}
	if snap.Levels.Proximity != domain.NearNone {
		tags = append(tags, string(snap.Levels.Proximity))
	}
	return tags
}

func tierForSpread(spreadBps float64) domain.ExecutionTier {
	switch {
	case spreadBps <= 2:
		return domain.TierA
	case spreadBps <= 6:
		return domain.TierB
	default:
		return domain.TierC
	}
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// volumeDelta compares the current 1m volume against the average of the
// preceding 20 buckets, in percent.
func volumeDelta(series []domain.Candle) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	lookback := 20
	start := n - 1 - lookback
	if start < 0 {
		start = 0
	}
	var sum float64
	var count int
	for i := start; i < n-1; i++ {
		sum += series[i].Volume
		count++
	}
	if count == 0 || sum == 0 {
		return 0
	}
	avg := sum / float64(count)
	return (series[n-1].Volume - avg) / avg * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Snapshots returns deep copies of the per-symbol aggregates for the given
// view, ordered by the given sort key.
func (e *Engine) Snapshots(view SnapshotView, sortKey SnapshotSort) []domain.CoinSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []domain.CoinSnapshot
	for _, sym := range e.symbols {
		st := e.states[sym]
		if view == ViewWatchlist && !e.watchlist[sym] {
			continue
		}
		if view == ViewFiltered && !screener.Matches(&st.snap, e.filterRules) {
			continue
		}
		if view == ViewHotlist && (st.snap.Confidence <= 70 || st.snap.Execution.Tier == domain.TierC) {
			continue
		}
		out = append(out, st.snap.Clone())
	}

	switch sortKey {
	case SortByScore:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	case SortByChange:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceChange5m > out[j].PriceChange5m })
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortByConfidence:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	}

	if view == ViewHotlist {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
		if len(out) > hotlistSize {
			out = out[:hotlistSize]
		}
	}
	return out
}

// Snapshot returns a deep copy of one symbol's aggregate.
func (e *Engine) Snapshot(symbol string) (domain.CoinSnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[symbol]
	if !ok {
		return domain.CoinSnapshot{}, false
	}
	return st.snap.Clone(), true
}

// SignalLog returns recent signals, most recent first.
func (e *Engine) SignalLog() []domain.Signal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alerts.SignalLog()
}

// TradeHistory returns open trades followed by the closed history.
func (e *Engine) TradeHistory() []domain.SimTrade {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.All()
}

// Events returns the alert feed, most recent first.
func (e *Engine) Events() []domain.AlertEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Events()
}

// UnreadEvents reports the firings dispatched since the last acknowledgment,
// counting firings merged into an existing event.
func (e *Engine) UnreadEvents() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Unread()
}

// AckEvents resets the unread counter.
func (e *Engine) AckEvents() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events.Ack()
}

// Stats recomputes the per-strategy aggregates and global KPIs under the
// current analytics settings.
func (e *Engine) Stats(key analytics.SortKey, descending bool) ([]domain.StrategyStats, domain.GlobalStats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stats := analytics.Compute(e.alerts.SignalLog(), e.book.History(), e.settings, e.now())
	analytics.Sort(stats, key, descending)
	return stats, analytics.Global(stats)
}

// Strategies lists the strategy definitions.
func (e *Engine) Strategies() []domain.Strategy {
	return e.registry.List()
}

func (e *Engine) SetStrategyEnabled(id string, enabled bool) error {
	return e.registry.SetEnabled(id, enabled)
}

func (e *Engine) SetStrategyParams(id string, params domain.StrategyParams) error {
	return e.registry.SetParams(id, params)
}

// AnalyticsSettings returns the current aggregator settings.
func (e *Engine) AnalyticsSettings() domain.AnalyticsSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetAnalyticsSettings replaces the aggregator settings. Hold seconds apply
// only to trades opened afterwards; open trades keep their frozen value.
func (e *Engine) SetAnalyticsSettings(s domain.AnalyticsSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.HoldSeconds <= 0 {
		s.HoldSeconds = domain.DefaultAnalyticsSettings().HoldSeconds
	}
	if s.TimeWindow == "" {
		s.TimeWindow = domain.WindowAll
	}
	if s.ViewMode == "" {
		s.ViewMode = domain.ViewNet
	}
	e.settings = s
}

// Timeframes returns the primary and context timeframe selection.
func (e *Engine) Timeframes() (domain.Timeframe, domain.Timeframe) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.primaryTF, e.contextTF
}

// SetTimeframes switches the analysis timeframes; invalid values keep the
// current selection.
func (e *Engine) SetTimeframes(primary, context domain.Timeframe) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if primary.IsValid() {
		e.primaryTF = primary
	}
	if context.IsValid() {
		e.contextTF = context
	}
	for _, sym := range e.symbols {
		e.recompute(e.states[sym])
	}
}

// FilterRules returns the active scanner conditions.
func (e *Engine) FilterRules() []domain.FilterRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.FilterRule(nil), e.filterRules...)
}

func (e *Engine) SetFilterRules(rules []domain.FilterRule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filterRules = append([]domain.FilterRule(nil), rules...)
}

// Presets returns the saved scanner presets.
func (e *Engine) Presets() []domain.Preset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Preset(nil), e.presets...)
}

// SavePreset adds or replaces a preset by id.
func (e *Engine) SavePreset(p domain.Preset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.presets {
		if e.presets[i].ID == p.ID {
			e.presets[i] = p
			return
		}
	}
	e.presets = append(e.presets, p)
}

func (e *Engine) DeletePreset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.presets {
		if e.presets[i].ID == id {
			e.presets = append(e.presets[:i], e.presets[i+1:]...)
			return
		}
	}
}

// Watchlist returns the watched symbols in universe order.
func (e *Engine) Watchlist() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, sym := range e.symbols {
		if e.watchlist[sym] {
			out = append(out, sym)
		}
	}
	return out
}

// ToggleWatchlist flips a symbol's watch flag and reports the new state.
func (e *Engine) ToggleWatchlist(symbol string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watchlist[symbol] = !e.watchlist[symbol]
	return e.watchlist[symbol]
}

// SetPaused stops or resumes tick processing. Paused ticks drop queued
// updates instead of accumulating them.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = paused
}

func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Preferences extracts the full persistable configuration surface.
func (e *Engine) Preferences() domain.Preferences {
	e.mu.Lock()
	defer e.mu.Unlock()
	settings := e.settings
	var watchlist []string
	for _, sym := range e.symbols {
		if e.watchlist[sym] {
			watchlist = append(watchlist, sym)
		}
	}
	return domain.Preferences{
		Watchlist:   watchlist,
		Presets:     append([]domain.Preset(nil), e.presets...),
		FilterRules: append([]domain.FilterRule(nil), e.filterRules...),
		PrimaryTF:   e.primaryTF,
		ContextTF:   e.contextTF,
		Strategies:  e.registry.Prefs(),
		Analytics:   &settings,
	}
}

// ApplyPreferences overlays a persisted configuration. Invalid timeframes
// and unknown strategy ids are ignored.
func (e *Engine) ApplyPreferences(p domain.Preferences) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k := range e.watchlist {
		delete(e.watchlist, k)
	}
	for _, sym := range p.Watchlist {
		e.watchlist[sym] = true
	}
	e.presets = append([]domain.Preset(nil), p.Presets...)
	e.filterRules = append([]domain.FilterRule(nil), p.FilterRules...)
	if p.PrimaryTF.IsValid() {
		e.primaryTF = p.PrimaryTF
	}
	if p.ContextTF.IsValid() {
		e.contextTF = p.ContextTF
	}
	e.registry.Apply(p.Strategies)
	if p.Analytics != nil {
		s := *p.Analytics
		if s.HoldSeconds <= 0 {
			s.HoldSeconds = domain.DefaultAnalyticsSettings().HoldSeconds
		}
		e.settings = s
	}
}
