package repository

import (
	"context"
	"time"

	"fluxterm/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const createTradesTable = `
CREATE TABLE IF NOT EXISTS sim_trades (
    id           TEXT        PRIMARY KEY,
    symbol       TEXT        NOT NULL,
    strategy_id  TEXT        NOT NULL,
    direction    TEXT        NOT NULL,
    entry_time   TIMESTAMPTZ NOT NULL,
    entry_price  NUMERIC     NOT NULL,
    exit_time    TIMESTAMPTZ NOT NULL,
    exit_price   NUMERIC     NOT NULL,
    exit_reason  TEXT        NOT NULL,
    hold_seconds INT         NOT NULL,
    result       TEXT        NOT NULL,
    gross_return NUMERIC     NOT NULL,
    net_return   NUMERIC     NOT NULL,
    fee          NUMERIC     NOT NULL,
    mfe          NUMERIC     NOT NULL,
    mae          NUMERIC     NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sim_trades_strategy_time
    ON sim_trades (strategy_id, exit_time DESC);
`

// TradeRepository persists closed trades only; open trades live in memory
// until they close.
type TradeRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewTradeRepository(pool PgxPool, tracer trace.Tracer) *TradeRepository {
	return &TradeRepository{pool: pool, tracer: tracer}
}

func (r *TradeRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "trade-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createTradesTable)
	return err
}

func (r *TradeRepository) InsertClosedTrades(ctx context.Context, trades []domain.SimTrade) error {
	if len(trades) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "trade-repo.insert-closed-trades")
	defer span.End()

	batch := &pgx.Batch{}
	for _, t := range trades {
		if t.Result == domain.ResultOpen || t.ExitTime == nil || t.ExitPrice == nil {
			continue
		}
		batch.Queue(
			`INSERT INTO sim_trades (id, symbol, strategy_id, direction, entry_time, entry_price,
			                         exit_time, exit_price, exit_reason, hold_seconds, result,
			                         gross_return, net_return, fee, mfe, mae)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			 ON CONFLICT (id) DO NOTHING`,
			t.ID, t.Symbol, t.StrategyID, string(t.Direction), t.EntryTime, t.EntryPrice,
			*t.ExitTime, *t.ExitPrice, string(t.ExitReason), t.HoldSeconds, string(t.Result),
			t.GrossReturnPct, t.NetReturnPct, t.FeePct, t.MFEPct, t.MAEPct,
		)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *TradeRepository) GetRecentTrades(ctx context.Context, strategyID string, limit int) ([]domain.SimTrade, error) {
	_, span := r.tracer.Start(ctx, "trade-repo.get-recent-trades")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, strategy_id, direction, entry_time, entry_price,
		        exit_time, exit_price, exit_reason, hold_seconds, result,
		        gross_return, net_return, fee, mfe, mae
		 FROM sim_trades
		 WHERE ($1 = '' OR strategy_id = $1)
		 ORDER BY exit_time DESC
		 LIMIT $2`,
		strategyID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.SimTrade
	for rows.Next() {
		var t domain.SimTrade
		var direction, reason, result string
		t.ExitTime = new(time.Time)
		t.ExitPrice = new(float64)
		if err := rows.Scan(&t.ID, &t.Symbol, &t.StrategyID, &direction, &t.EntryTime, &t.EntryPrice,
			t.ExitTime, t.ExitPrice, &reason, &t.HoldSeconds, &result,
			&t.GrossReturnPct, &t.NetReturnPct, &t.FeePct, &t.MFEPct, &t.MAEPct); err != nil {
			return nil, err
		}
		t.Direction = domain.SignalDirection(direction)
		t.ExitReason = domain.ExitReason(reason)
		t.Result = domain.TradeResult(result)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
