package repository

import (
	"context"

	"fluxterm/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createSignalsTable = `
CREATE TABLE IF NOT EXISTS signals (
    id          TEXT        PRIMARY KEY,
    fired_at    TIMESTAMPTZ NOT NULL,
    symbol      TEXT        NOT NULL,
    strategy_id TEXT        NOT NULL,
    direction   TEXT        NOT NULL,
    price       NUMERIC     NOT NULL,
    reasons     TEXT[]      NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_signals_symbol_time
    ON signals (symbol, fired_at DESC);

CREATE INDEX IF NOT EXISTS idx_signals_strategy_time
    ON signals (strategy_id, fired_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type SignalRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSignalRepository(pool PgxPool, tracer trace.Tracer) *SignalRepository {
	return &SignalRepository{pool: pool, tracer: tracer}
}

func (r *SignalRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "signal-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createSignalsTable)
	return err
}

func (r *SignalRepository) InsertSignals(ctx context.Context, signals []domain.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "signal-repo.insert-signals")
	defer span.End()

	batch := &pgx.Batch{}
	for _, s := range signals {
		batch.Queue(
			`INSERT INTO signals (id, fired_at, symbol, strategy_id, direction, price, reasons)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			s.ID, s.Timestamp, s.Symbol, s.StrategyID, string(s.Direction), s.Price, s.Reasons,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range signals {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SignalRepository) GetRecentSignals(ctx context.Context, symbol string, limit int) ([]domain.Signal, error) {
	_, span := r.tracer.Start(ctx, "signal-repo.get-recent-signals")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, fired_at, symbol, strategy_id, direction, price, reasons
		 FROM signals
		 WHERE ($1 = '' OR symbol = $1)
		 ORDER BY fired_at DESC
		 LIMIT $2`,
		symbol, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var s domain.Signal
		var direction string
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.Symbol, &s.StrategyID, &direction, &s.Price, &s.Reasons); err != nil {
			return nil, err
		}
		s.Direction = domain.SignalDirection(direction)
		signals = append(signals, s)
	}
	return signals, rows.Err()
}
