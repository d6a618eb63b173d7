package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"fluxterm/internal/domain"
)

type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	DatabaseURL      string
	RedisURL         string

	HTTPAddr string
	APIKey   string

	TickSecs  int
	HoldSecs  int
	PrimaryTF domain.Timeframe
	ContextTF domain.Timeframe
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           os.Getenv("API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, alert dispatch disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, signal history will not persist")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		} else {
			log.Printf("Warning: invalid TELEGRAM_CHAT_ID=%q", v)
		}
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.TickSecs = 1
	if v := os.Getenv("TICK_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TickSecs = n
		}
	}

	cfg.HoldSecs = 30
	if v := os.Getenv("HOLD_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HoldSecs = n
		}
	}

	cfg.PrimaryTF = domain.TF15m
	if v := domain.Timeframe(strings.TrimSpace(os.Getenv("PRIMARY_TF"))); v != "" {
		if v.IsValid() {
			cfg.PrimaryTF = v
		} else {
			log.Printf("Warning: unsupported PRIMARY_TF=%q, defaulting to 15m", v)
		}
	}

	cfg.ContextTF = domain.TF1h
	if v := domain.Timeframe(strings.TrimSpace(os.Getenv("CONTEXT_TF"))); v != "" {
		if v.IsValid() {
			cfg.ContextTF = v
		} else {
			log.Printf("Warning: unsupported CONTEXT_TF=%q, defaulting to 1h", v)
		}
	}

	return cfg
}
