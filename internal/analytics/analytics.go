package analytics

import (
	"sort"
	"time"

	"fluxterm/internal/domain"
)

// SortKey selects the stats column to order by.
type SortKey string

const (
	SortByTrades  SortKey = "trades"
	SortByWinRate SortKey = "win_rate"
	SortByReturn  SortKey = "avg_return"
)

// Compute aggregates the signal log and closed trades into per-strategy
// stats. It is pure: recomputed from scratch on every call so the numbers
// can never drift from their inputs. Open trades are excluded from every
// average; the time window filters signals by firing time and trades by
// exit time.
func Compute(signals []domain.Signal, trades []domain.SimTrade, settings domain.AnalyticsSettings, now time.Time) []domain.StrategyStats {
	cutoff := settings.TimeWindow.Cutoff(now)

	perStrategy := make(map[string]*domain.StrategyStats)
	var order []string
	get := func(id string) *domain.StrategyStats {
		st, ok := perStrategy[id]
		if !ok {
			st = &domain.StrategyStats{StrategyID: id}
			perStrategy[id] = st
			order = append(order, id)
		}
		return st
	}

	for _, sig := range signals {
		if !cutoff.IsZero() && sig.Timestamp.Before(cutoff) {
			continue
		}
		get(sig.StrategyID).Triggers++
	}

	wins := make(map[string]int)
	for _, trade := range trades {
		if trade.Result == domain.ResultOpen || trade.ExitTime == nil {
			continue
		}
		if !cutoff.IsZero() && trade.ExitTime.Before(cutoff) {
			continue
		}
		st := get(trade.StrategyID)
		st.TradesClosed++
		n := float64(st.TradesClosed)

		ret := trade.NetReturnPct
		if settings.ViewMode == domain.ViewGross {
			ret = trade.GrossReturnPct
		}
		st.AvgReturnPct += (ret - st.AvgReturnPct) / n
		st.AvgMFEPct += (trade.MFEPct - st.AvgMFEPct) / n
		st.AvgMAEPct += (trade.MAEPct - st.AvgMAEPct) / n

		// A win follows the same mode-selected return as the average, so
		// gross view counts a fee-eaten positive move as a win.
		if ret > 0 {
			wins[trade.StrategyID]++
		}
		st.WinRatePct = float64(wins[trade.StrategyID]) / n * 100
	}

	out := make([]domain.StrategyStats, 0, len(order))
	for _, id := range order {
		out = append(out, *perStrategy[id])
	}
	return out
}

// Global derives the cross-strategy KPIs from per-strategy stats. The best
// strategy is the highest average return among those with at least one
// closed trade.
func Global(stats []domain.StrategyStats) domain.GlobalStats {
	var g domain.GlobalStats
	var wins, returnSum, best float64
	for _, st := range stats {
		g.TotalSignals += st.Triggers
		g.TotalClosed += st.TradesClosed
		wins += st.WinRatePct / 100 * float64(st.TradesClosed)
		returnSum += st.AvgReturnPct * float64(st.TradesClosed)
		if st.TradesClosed > 0 && (g.BestStrategyID == "" || st.AvgReturnPct > best) {
			g.BestStrategyID = st.StrategyID
			best = st.AvgReturnPct
		}
	}
	if g.TotalClosed > 0 {
		g.WinRatePct = wins / float64(g.TotalClosed) * 100
		g.AvgReturnPct = returnSum / float64(g.TotalClosed)
	}
	return g
}

// Sort orders stats by the chosen key, stable so ties keep their original
// relative order.
func Sort(stats []domain.StrategyStats, key SortKey, descending bool) {
	less := func(a, b domain.StrategyStats) bool {
		switch key {
		case SortByTrades:
			return a.TradesClosed < b.TradesClosed
		case SortByWinRate:
			return a.WinRatePct < b.WinRatePct
		default:
			return a.AvgReturnPct < b.AvgReturnPct
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if descending {
			return less(stats[j], stats[i])
		}
		return less(stats[i], stats[j])
	})
}
