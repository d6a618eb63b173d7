package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fluxterm/internal/bot"
	"fluxterm/internal/cache"
	"fluxterm/internal/config"
	"fluxterm/internal/db"
	"fluxterm/internal/engine"
	"fluxterm/internal/handler"
	"fluxterm/internal/job"
	"fluxterm/internal/repository"
	"fluxterm/internal/service"
	"fluxterm/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "fluxterm/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newEngineFunc          = engine.New
	startTickLoopFunc      = func(l *job.TickLoop, ctx context.Context) { go l.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           FluxTerm API
// @version         1.0
// @description     Streaming market screener with simulated trade analytics.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Build the screener engine
	eng := newEngineFunc(engine.Config{
		PrimaryTF: cfg.PrimaryTF,
		ContextTF: cfg.ContextTF,
	})
	settings := eng.AnalyticsSettings()
	settings.HoldSeconds = cfg.HoldSecs
	eng.SetAnalyticsSettings(settings)

	// Restore persisted preferences and set up the snapshot mirror
	var prefService *service.PrefService
	var snapshotCache job.SnapshotWriter
	if cache.Client != nil {
		prefService = service.NewPrefService(tracer, cache.NewPrefStore(tracer, cache.Client), eng)
		if err := prefService.Restore(ctx); err != nil {
			log.Printf("preference restore error: %v", err)
		}
		snapshotCache = cache.NewSnapshotCache(tracer, cache.Client)
	}

	// Create repositories and run migrations
	var signalWriter job.SignalWriter
	var tradeWriter job.TradeWriter
	if db.Pool != nil {
		signalRepo := repository.NewSignalRepository(db.Pool, tracer)
		tradeRepo := repository.NewTradeRepository(db.Pool, tracer)
		if err := signalRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		if err := tradeRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		signalWriter = signalRepo
		tradeWriter = tradeRepo
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	var notifier job.Notifier
	if n := startTelegramBotFunc(eng, cfg.TelegramChatID); n != nil {
		notifier = n
	}

	// Start the tick loop (stopped by ctx cancel)
	loop := job.NewTickLoop(tracer, eng, signalWriter, tradeWriter, notifier, snapshotCache, cfg.TickSecs)
	startTickLoopFunc(loop, ctx)

	// Create handlers and routes
	h := handler.New(tracer, eng, prefService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("fluxterm"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
