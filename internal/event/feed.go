package event

import (
	"fmt"
	"strings"
	"time"

	"fluxterm/internal/alert"
	"fluxterm/internal/domain"
)

const (
	feedCap     = 100
	mergeWindow = 60 * time.Second
)

// Feed is the dispatched alert feed. Firings for the same symbol within the
// merge window collapse into one event instead of alerting twice. Not safe
// for concurrent use; the owning engine serializes access.
type Feed struct {
	now    func() time.Time
	events []domain.AlertEvent
	// unread counts raw firings since the last ack, so it can exceed the
	// event count when firings merge. unreadEvents counts distinct events
	// and bounds the merge scan.
	unread       int
	unreadEvents int
	seq          int
}

func NewFeed(now func() time.Time) *Feed {
	if now == nil {
		now = time.Now
	}
	return &Feed{now: now}
}

// BuildEvent renders a firing into a dispatchable event, resolving the
// variable bindings from the symbol snapshot.
func BuildEvent(firing alert.Firing, snap *domain.CoinSnapshot, primaryTF domain.Timeframe) domain.AlertEvent {
	vars := map[string]string{
		"symbol": firing.Signal.Symbol,
		"tf":     string(primaryTF),
		"price":  fmt.Sprintf("%.4f", firing.Signal.Price),
	}
	if snap != nil {
		if st, ok := snap.Technical[primaryTF]; ok {
			vars["rsi"] = fmt.Sprintf("%.1f", st.RSI.Value)
			vars["macd"] = string(st.MACD.Trend)
		}
		vars["exec"] = string(snap.Execution.Tier)
		vars["vwap_state"] = string(snap.VWAP.State)
		vars["level"] = string(snap.Levels.Proximity)
		vars["confidence"] = fmt.Sprintf("%.0f", snap.Confidence)
	}
	return domain.AlertEvent{
		Timestamp:  firing.Signal.Timestamp,
		Symbol:     firing.Signal.Symbol,
		StrategyID: firing.Strategy.ID,
		Direction:  firing.Signal.Direction,
		Severity:   firing.Strategy.Severity,
		Title:      fmt.Sprintf("%s %s", firing.Strategy.Name, firing.Signal.Direction),
		Body:       strings.Join(firing.Signal.Reasons, "; "),
		Vars:       vars,
	}
}

// Publish adds the event to the feed, merging into a recent unread event
// for the same symbol when one exists. The merge seeds the older event's
// reason list with its own title the first time, appends the new strategy
// name, and bumps the timestamp. Returns the stored event and whether it
// was merged.
func (f *Feed) Publish(ev domain.AlertEvent, strategyName string) (domain.AlertEvent, bool) {
	now := f.now()
	for i := 0; i < f.unreadEvents && i < len(f.events); i++ {
		existing := &f.events[i]
		if existing.Symbol != ev.Symbol {
			continue
		}
		if now.Sub(existing.Timestamp) > mergeWindow {
			continue
		}
		f.unread++
		if existing.StrategyID == ev.StrategyID || containsReason(existing.MergedReasons, strategyName) {
			// Same strategy already represented; absorb without duplicating.
			return *existing, true
		}
		if len(existing.MergedReasons) == 0 {
			existing.MergedReasons = []string{existing.Title}
		}
		existing.MergedReasons = append(existing.MergedReasons, strategyName)
		existing.Timestamp = now
		return *existing, true
	}

	f.seq++
	ev.ID = fmt.Sprintf("evt_%d", f.seq)
	f.events = append([]domain.AlertEvent{ev}, f.events...)
	if len(f.events) > feedCap {
		f.events = f.events[:feedCap]
	}
	f.unread++
	f.unreadEvents++
	if f.unreadEvents > len(f.events) {
		f.unreadEvents = len(f.events)
	}
	return ev, false
}

// Events returns the feed, most recent first.
func (f *Feed) Events() []domain.AlertEvent {
	out := make([]domain.AlertEvent, len(f.events))
	for i, ev := range f.events {
		out[i] = ev
		out[i].Vars = copyVars(ev.Vars)
		out[i].MergedReasons = append([]string(nil), ev.MergedReasons...)
	}
	return out
}

// Unread reports how many firings arrived since the last acknowledgment,
// counting firings that merged into an existing event.
func (f *Feed) Unread() int { return f.unread }

// Ack resets the unread counters. Acknowledged events no longer absorb
// new firings.
func (f *Feed) Ack() {
	f.unread = 0
	f.unreadEvents = 0
}

func containsReason(reasons []string, name string) bool {
	for _, r := range reasons {
		if r == name || strings.HasPrefix(r, name+" ") {
			return true
		}
	}
	return false
}

func copyVars(vars map[string]string) map[string]string {
	if vars == nil {
		return nil
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}
