package ta

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRSISeries_WilderSeedAndRecurrence(t *testing.T) {
	t.Parallel()

	closes := []float64{100, 98, 96, 95, 97, 99, 102}
	got := RSISeries(closes, 3)

	// Seed window holds only losses, so the seeded value is 0.
	if !almostEqual(got[3], 0) {
		t.Fatalf("seed rsi = %v, want 0", got[3])
	}
	// avgGain=2/3 avgLoss=10/9 -> rs=0.6 -> 37.5
	if !almostEqual(got[4], 37.5) {
		t.Fatalf("rsi[4] = %v, want 37.5", got[4])
	}
	// avgGain=10/9 avgLoss=20/27 -> rs=1.5 -> 60
	if !almostEqual(got[5], 60) {
		t.Fatalf("rsi[5] = %v, want 60", got[5])
	}
	// avgGain=47/27 avgLoss=40/81 -> rs=3.525
	want := 100 - 100/(1+3.525)
	if !almostEqual(got[6], want) {
		t.Fatalf("rsi[6] = %v, want %v", got[6], want)
	}
}

func TestRSISeries_ShortSeriesIsNeutral(t *testing.T) {
	t.Parallel()

	got := RSISeries([]float64{100, 101, 102}, 14)
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %d", len(got))
	}
	for i, v := range got {
		if v != 50 {
			t.Fatalf("rsi[%d] = %v, want neutral 50", i, v)
		}
	}
}

func TestRSISeries_AllGainsSaturatesAt100(t *testing.T) {
	t.Parallel()

	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	got := RSISeries(closes, 3)
	for i := 3; i < len(got); i++ {
		if got[i] != 100 {
			t.Fatalf("rsi[%d] = %v, want 100 on a pure uptrend", i, got[i])
		}
	}
}

func TestRSISeries_Bounds(t *testing.T) {
	t.Parallel()

	closes := []float64{50, 53, 47, 60, 41, 75, 30, 88, 22, 90, 15, 95, 10, 99, 5, 100}
	got := RSISeries(closes, 4)
	for i := 4; i < len(got); i++ {
		if got[i] < 0 || got[i] > 100 {
			t.Fatalf("rsi[%d] = %v out of [0,100]", i, got[i])
		}
	}
}

func TestEMASeries_SeedAndRecurrence(t *testing.T) {
	t.Parallel()

	values := []float64{10, 20, 30, 40, 50}
	got := EMASeries(values, 3)

	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("positions before the seed must be zero, got %v %v", got[0], got[1])
	}
	if !almostEqual(got[2], 20) {
		t.Fatalf("seed = %v, want SMA 20", got[2])
	}
	k := 2.0 / 4.0
	want := 40*k + 20*(1-k)
	if !almostEqual(got[3], want) {
		t.Fatalf("ema[3] = %v, want %v", got[3], want)
	}
	want = 50*k + want*(1-k)
	if !almostEqual(got[4], want) {
		t.Fatalf("ema[4] = %v, want %v", got[4], want)
	}
}

func TestEMASeries_Deterministic(t *testing.T) {
	t.Parallel()

	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7}
	a := EMASeries(values, 5)
	b := EMASeries(values, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ema recomputation diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEMASeries_TooShort(t *testing.T) {
	t.Parallel()

	got := EMASeries([]float64{1, 2}, 5)
	for i, v := range got {
		if v != 0 {
			t.Fatalf("ema[%d] = %v, want 0 for series shorter than period", i, v)
		}
	}
}

func TestSMASeries_PrefixNaN(t *testing.T) {
	t.Parallel()

	got := SMASeries([]float64{2, 4, 6, 8}, 3)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Fatalf("positions before period-1 must be NaN, got %v %v", got[0], got[1])
	}
	if !almostEqual(got[2], 4) || !almostEqual(got[3], 6) {
		t.Fatalf("unexpected sma values: %v", got)
	}
}

func TestATRSeries_FirstTrueRangeIsHighLow(t *testing.T) {
	t.Parallel()

	high := []float64{12, 15, 14}
	low := []float64{8, 9, 11}
	closes := []float64{10, 14, 12}
	got := ATRSeries(high, low, closes, 3)

	// tr = [4, 6, 3], so ATR at index 2 is their mean.
	if !almostEqual(got[2], (4.0+6.0+3.0)/3.0) {
		t.Fatalf("atr[2] = %v, want %v", got[2], (4.0+6.0+3.0)/3.0)
	}
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Fatalf("atr prefix must be NaN, got %v %v", got[0], got[1])
	}
}

func TestATRSeries_GapsUsePreviousClose(t *testing.T) {
	t.Parallel()

	// Second bar gaps far above the prior close; true range must span the gap.
	high := []float64{10, 30}
	low := []float64{9, 28}
	closes := []float64{9.5, 29}
	got := ATRSeries(high, low, closes, 1)
	if !almostEqual(got[1], 30-9.5) {
		t.Fatalf("atr[1] = %v, want %v", got[1], 30-9.5)
	}
}

func TestMACDSeries_HistogramIsLineMinusSignal(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.7 + math.Sin(float64(i)/3)*2
	}
	line, signalLine, hist := MACDSeries(closes, 12, 26, 9)
	for i := range closes {
		if !almostEqual(hist[i], line[i]-signalLine[i]) {
			t.Fatalf("hist[%d] = %v, want line-signal %v", i, hist[i], line[i]-signalLine[i])
		}
	}
}

func TestMACDSeries_UptrendGoesPositive(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	line, _, _ := MACDSeries(closes, 12, 26, 9)
	if line[len(line)-1] <= 0 {
		t.Fatalf("macd line = %v, want positive on a steady uptrend", line[len(line)-1])
	}
}
