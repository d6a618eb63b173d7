package main

import (
	"context"
	"log"

	"fluxterm/internal/db"
	"fluxterm/internal/repository"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

// Standalone schema migration tool. Runs every repository migration against
// DATABASE_URL and exits.
func main() {
	godotenv.Load()

	ctx := context.Background()
	db.InitPostgres(ctx)
	if db.Pool == nil {
		log.Fatal("DATABASE_URL must be set to run migrations")
	}

	tracer := trace.NewNoopTracerProvider().Tracer("migrate")

	signalRepo := repository.NewSignalRepository(db.Pool, tracer)
	if err := signalRepo.RunMigrations(ctx); err != nil {
		log.Fatalf("signal migrations failed: %v", err)
	}
	tradeRepo := repository.NewTradeRepository(db.Pool, tracer)
	if err := tradeRepo.RunMigrations(ctx); err != nil {
		log.Fatalf("trade migrations failed: %v", err)
	}

	log.Println("Migrations complete")
}
