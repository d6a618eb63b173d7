package feed

import (
	"math/rand"
	"time"

	"fluxterm/internal/domain"
)

// SyntheticSource simulates a market-data feed with a per-symbol random
// walk plus occasional impulse moves, trade prints, and book revisions.
// It stands in for a live exchange connection.
type SyntheticSource struct {
	rng    *rand.Rand
	now    func() time.Time
	prices map[string]float64
}

// NewSyntheticSource seeds the walk with a base price per symbol. A nil rng
// falls back to a time-seeded one.
func NewSyntheticSource(symbols []string, basePrices map[string]float64, rng *rand.Rand, now func() time.Time) *SyntheticSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	prices := make(map[string]float64, len(symbols))
	for i, sym := range symbols {
		if p, ok := basePrices[sym]; ok && p > 0 {
			prices[sym] = p
		} else {
			prices[sym] = 10 + float64(i)*7.3
		}
	}
	return &SyntheticSource{rng: rng, now: now, prices: prices}
}

// Step advances every symbol one tick and pushes the resulting updates onto
// the queue. Roughly one step in 400 per symbol is an impulse of about 0.5%
// instead of the usual walk step.
func (s *SyntheticSource) Step(q *Queue) {
	now := s.now()
	for sym, price := range s.prices {
		var next float64
		if s.rng.Float64() < 1.0/400 {
			direction := 1.0
			if s.rng.Float64() < 0.5 {
				direction = -1
			}
			next = price * (1 + direction*0.005)
		} else {
			vol := price * 0.0008
			next = price + (s.rng.Float64()*2-1)*vol
		}
		if next <= 0 {
			next = price
		}
		s.prices[sym] = next
		q.Push(PriceUpdate{Symbol: sym, Price: next, Timestamp: now})

		if s.rng.Float64() < 0.3 {
			q.Push(TradeTick{
				Symbol:   sym,
				IsSell:   s.rng.Float64() < 0.5,
				Quantity: s.rng.Float64() * 5,
			})
		}
		if s.rng.Float64() < 0.2 {
			spread := next * 0.0002 * (s.rng.Float64() + 0.5)
			q.Push(BookTick{Symbol: sym, BestBid: next - spread/2, BestAsk: next + spread/2})
		}
	}
}

// Price returns the current walk price for a symbol.
func (s *SyntheticSource) Price(symbol string) float64 {
	return s.prices[symbol]
}

// SetPrice re-anchors the walk to an externally delivered price. Unknown
// symbols are ignored.
func (s *SyntheticSource) SetPrice(symbol string, price float64) {
	if price <= 0 {
		return
	}
	if _, ok := s.prices[symbol]; ok {
		s.prices[symbol] = price
	}
}

// GenerateCandles backfills a candle series for one symbol and timeframe so
// indicators have history at startup. The walk ends at the symbol's current
// price.
func (s *SyntheticSource) GenerateCandles(symbol string, tf domain.Timeframe, count int) []domain.Candle {
	endPrice := s.prices[symbol]
	if endPrice <= 0 {
		endPrice = 100
	}
	step := tf.Duration()
	end := s.now().Truncate(step)

	out := make([]domain.Candle, count)
	price := endPrice
	// Walk backwards from the current price, then emit in forward order.
	for i := count - 1; i >= 0; i-- {
		vol := price * 0.005 * (s.rng.Float64() + 0.5)
		open := price + (s.rng.Float64()*2-1)*vol
		if open <= 0 {
			open = price
		}
		high := maxFloat(open, price) + s.rng.Float64()*vol
		low := minFloat(open, price) - s.rng.Float64()*vol
		if low <= 0 {
			low = minFloat(open, price) * 0.99
		}
		out[i] = domain.Candle{
			OpenTime: end.Add(time.Duration(i-count+1) * step),
			Open:     open,
			High:     high,
			Low:      low,
			Close:    price,
			Volume:   s.rng.Float64() * 1000,
		}
		price = open
	}
	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
