package ta

import (
	"math"
	"testing"
	"time"

	"fluxterm/internal/domain"
)

func candlesFromCloses(closes []float64) []domain.Candle {
	out := make([]domain.Candle, len(closes))
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = domain.Candle{
			OpenTime: start.Add(time.Duration(i) * time.Minute),
			Open:     c,
			High:     c + 1,
			Low:      c - 1,
			Close:    c,
			Volume:   100,
		}
	}
	return out
}

func TestStateFromCandles_Empty(t *testing.T) {
	t.Parallel()

	st := StateFromCandles(nil)
	if st.RSI.Value != 50 || st.RSI.State != domain.RSINeutral {
		t.Fatalf("empty series must be neutral, got %+v", st.RSI)
	}
	if st.Trend.State != domain.TrendChop {
		t.Fatalf("empty series trend = %v, want chop", st.Trend.State)
	}
}

func TestStateFromCandles_UptrendBias(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	st := StateFromCandles(candlesFromCloses(closes))

	if st.RSI.State != domain.RSIOverbought {
		t.Fatalf("rsi state = %v, want overbought on a pure uptrend", st.RSI.State)
	}
	if st.Trend.State != domain.TrendUp {
		t.Fatalf("trend = %v, want up (ema20 above ema50)", st.Trend.State)
	}
	if st.MACD.Histogram == 0 && st.MACD.Line == 0 {
		t.Fatal("macd not computed")
	}
}

func TestStateFromCandles_DowntrendBias(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 200 - float64(i)*0.5
	}
	st := StateFromCandles(candlesFromCloses(closes))

	if st.RSI.State != domain.RSIOversold {
		t.Fatalf("rsi state = %v, want oversold on a pure downtrend", st.RSI.State)
	}
	if st.Trend.State != domain.TrendDown {
		t.Fatalf("trend = %v, want down", st.Trend.State)
	}
}

func TestStateFromCandles_CrossDetection(t *testing.T) {
	t.Parallel()

	// Long decline then a sharp rally so the histogram flips sign. Walk the
	// series forward and assert a bullish cross fires on exactly the flip bar.
	closes := make([]float64, 0, 140)
	for i := 0; i < 100; i++ {
		closes = append(closes, 200-float64(i))
	}
	for i := 0; i < 40; i++ {
		closes = append(closes, 100+float64(i)*3)
	}

	sawBullish := false
	for n := 60; n <= len(closes); n++ {
		st := StateFromCandles(candlesFromCloses(closes[:n]))
		if st.MACD.Cross == domain.CrossBullish {
			if st.MACD.Histogram <= 0 {
				t.Fatalf("bullish cross with non-positive histogram %v", st.MACD.Histogram)
			}
			sawBullish = true
		}
	}
	if !sawBullish {
		t.Fatal("expected a bullish macd cross during the rally")
	}
}

func TestStateFromCandles_WindowBounded(t *testing.T) {
	t.Parallel()

	// Values beyond the lookback window must not influence the result.
	long := make([]float64, maxLookback+500)
	for i := range long {
		long[i] = 100 + math.Sin(float64(i)/7)*5
	}
	full := StateFromCandles(candlesFromCloses(long))
	tail := StateFromCandles(candlesFromCloses(long[len(long)-maxLookback:]))
	if full.RSI.Value != tail.RSI.Value {
		t.Fatalf("rsi differs with history beyond the window: %v vs %v", full.RSI.Value, tail.RSI.Value)
	}
	if full.MACD.Histogram != tail.MACD.Histogram {
		t.Fatalf("macd differs with history beyond the window: %v vs %v", full.MACD.Histogram, tail.MACD.Histogram)
	}
}

func TestATRFromCandles(t *testing.T) {
	t.Parallel()

	candles := []domain.Candle{
		{High: 12, Low: 8, Close: 10},
		{High: 15, Low: 9, Close: 14},
		{High: 14, Low: 11, Close: 12},
	}
	got := ATRFromCandles(candles, 3)
	want := (4.0 + 6.0 + 3.0) / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("atr = %v, want %v", got, want)
	}
}

func TestATRFromCandles_ShortSeriesIsZero(t *testing.T) {
	t.Parallel()

	candles := []domain.Candle{{High: 12, Low: 8, Close: 10}}
	if got := ATRFromCandles(candles, 14); got != 0 {
		t.Fatalf("atr = %v, want 0 before the smoothing period fills", got)
	}
	if got := ATRFromCandles(nil, 14); got != 0 {
		t.Fatalf("atr = %v, want 0 for empty series", got)
	}
}

func TestRSIStateBuckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value float64
		want  domain.RSIState
	}{
		{10, domain.RSIOversold},
		{29.99, domain.RSIOversold},
		{30, domain.RSINeutral},
		{50, domain.RSINeutral},
		{70, domain.RSINeutral},
		{70.01, domain.RSIOverbought},
		{95, domain.RSIOverbought},
	}
	for _, tc := range cases {
		if got := RSIState(tc.value); got != tc.want {
			t.Fatalf("RSIState(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
