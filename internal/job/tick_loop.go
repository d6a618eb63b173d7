package job

import (
	"context"
	"log"
	"time"

	"fluxterm/internal/domain"
	"fluxterm/internal/engine"

	"go.opentelemetry.io/otel/trace"
)

type TickEngine interface {
	Tick() engine.TickResult
	Snapshots(view engine.SnapshotView, sortKey engine.SnapshotSort) []domain.CoinSnapshot
}

type SignalWriter interface {
	InsertSignals(ctx context.Context, signals []domain.Signal) error
}

type TradeWriter interface {
	InsertClosedTrades(ctx context.Context, trades []domain.SimTrade) error
}

type Notifier interface {
	NotifyEvent(ctx context.Context, ev domain.AlertEvent) error
}

type SnapshotWriter interface {
	SaveAll(ctx context.Context, snapshots []domain.CoinSnapshot) error
}

// TickLoop drives the engine on a fixed interval and fans each tick's
// output to persistence and notification. Writers and the notifier are
// optional; nil means that side runs disabled.
type TickLoop struct {
	tracer    trace.Tracer
	engine    TickEngine
	signals   SignalWriter
	trades    TradeWriter
	notifier  Notifier
	snapshots SnapshotWriter
	interval  time.Duration
}

func NewTickLoop(tracer trace.Tracer, eng TickEngine, signals SignalWriter, trades TradeWriter, notifier Notifier, snapshots SnapshotWriter, intervalSecs int) *TickLoop {
	if intervalSecs <= 0 {
		intervalSecs = 1
	}
	return &TickLoop{
		tracer:    tracer,
		engine:    eng,
		signals:   signals,
		trades:    trades,
		notifier:  notifier,
		snapshots: snapshots,
		interval:  time.Duration(intervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *TickLoop) Start(ctx context.Context) {
	log.Println("Tick loop starting...")

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Tick loop stopped")
			return
		case <-ticker.C:
			l.runTick(ctx)
		}
	}
}

func (l *TickLoop) runTick(ctx context.Context) {
	ctx, span := l.tracer.Start(ctx, "tick-loop.tick")
	defer span.End()

	res := l.engine.Tick()

	if l.signals != nil && len(res.NewSignals) > 0 {
		if err := l.signals.InsertSignals(ctx, res.NewSignals); err != nil {
			log.Printf("signal persistence error: %v", err)
		}
	}
	if l.trades != nil && len(res.ClosedTrades) > 0 {
		if err := l.trades.InsertClosedTrades(ctx, res.ClosedTrades); err != nil {
			log.Printf("trade persistence error: %v", err)
		}
	}
	if l.notifier != nil {
		for _, ev := range res.NewEvents {
			if err := l.notifier.NotifyEvent(ctx, ev); err != nil {
				log.Printf("event dispatch error for %s: %v", ev.Symbol, err)
			}
		}
	}
	if l.snapshots != nil {
		if err := l.snapshots.SaveAll(ctx, l.engine.Snapshots(engine.ViewAll, engine.SortBySymbol)); err != nil {
			log.Printf("snapshot cache error: %v", err)
		}
	}
}
