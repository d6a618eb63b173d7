package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fluxterm/internal/analytics"
	"fluxterm/internal/domain"
	"fluxterm/internal/engine"

	tele "gopkg.in/telebot.v3"
)

// AlertNotifier pushes merged alert events to a fixed Telegram chat.
// A zero chat id disables dispatch while keeping commands available.
type AlertNotifier struct {
	bot    *tele.Bot
	chatID int64
}

func (n *AlertNotifier) NotifyEvent(ctx context.Context, ev domain.AlertEvent) error {
	if n == nil || n.bot == nil || n.chatID == 0 {
		return nil
	}
	msg := fmt.Sprintf("%s\n%s", ev.Title, ev.Body)
	if len(ev.MergedReasons) > 0 {
		msg += "\nMerged: " + strings.Join(ev.MergedReasons, ", ")
	}
	_, err := n.bot.Send(&tele.Chat{ID: n.chatID}, msg)
	return err
}

// StartTelegramBot wires commands against the engine and starts long polling.
// Returns a notifier for alert dispatch, or nil when TELEGRAM_BOT_TOKEN is unset.
func StartTelegramBot(eng *engine.Engine, chatID int64) *AlertNotifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTC\nSupported: %s", strings.Join(domain.SupportedSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		snap, ok := eng.Snapshot(symbol)
		if !ok {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(domain.SupportedSymbols, ", ")))
		}
		msg := fmt.Sprintf(
			"%s\nPrice: $%.4f\n5m Change: %.2f%%\nScore: %.0f\nConfidence: %.0f",
			symbol, snap.Price, snap.PriceChange5m, snap.Score, snap.Confidence,
		)
		return c.Send(msg)
	})

	b.Handle("/signals", func(c tele.Context) error {
		signals := eng.SignalLog()
		if len(signals) == 0 {
			return c.Send("No signals yet")
		}
		if len(signals) > 5 {
			signals = signals[:5]
		}
		var sb strings.Builder
		sb.WriteString("Latest signals:\n")
		for _, s := range signals {
			fmt.Fprintf(&sb, "%s %s %s @ $%.4f (%s)\n",
				s.Timestamp.Format("15:04:05"), s.Symbol, s.Direction, s.Price, s.StrategyID)
		}
		return c.Send(sb.String())
	})

	b.Handle("/trades", func(c tele.Context) error {
		trades := eng.TradeHistory()
		if len(trades) == 0 {
			return c.Send("No closed trades yet")
		}
		if len(trades) > 5 {
			trades = trades[:5]
		}
		var sb strings.Builder
		sb.WriteString("Latest trades:\n")
		for _, t := range trades {
			fmt.Fprintf(&sb, "%s %s %s net %.2f%% (%s)\n",
				t.Symbol, t.Direction, t.Result, t.NetReturnPct, t.ExitReason)
		}
		return c.Send(sb.String())
	})

	b.Handle("/stats", func(c tele.Context) error {
		stats, global := eng.Stats(analytics.SortByReturn, true)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Signals: %d, Closed: %d, Win rate: %.1f%%\n",
			global.TotalSignals, global.TotalClosed, global.WinRatePct)
		if global.BestStrategyID != "" {
			fmt.Fprintf(&sb, "Best strategy: %s\n", global.BestStrategyID)
		}
		for _, st := range stats {
			if st.TradesClosed == 0 {
				continue
			}
			fmt.Fprintf(&sb, "%s: %d trades, %.1f%% win, %.2f%% avg\n",
				st.StrategyID, st.TradesClosed, st.WinRatePct, st.AvgReturnPct)
		}
		return c.Send(sb.String())
	})

	log.Println("Telegram bot started")
	go b.Start()
	return &AlertNotifier{bot: b, chatID: chatID}
}
