package ta

import "math"

// SMASeries returns the simple moving average. Positions before period-1
// are NaN.
func SMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if period <= 0 || i < period-1 {
			out[i] = math.NaN()
			continue
		}
		var sum float64
		for j := 0; j < period; j++ {
			sum += values[i-j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMASeries seeds with the SMA of the first period values at index period-1,
// then applies ema[i] = v*k + ema[i-1]*(1-k) with k = 2/(period+1).
// Positions before the seed are zero.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	k := 2.0 / float64(period+1)
	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// ATRSeries smooths the true range with an SMA. The first element's true
// range degenerates to high-low since there is no previous close.
func ATRSeries(high, low, close []float64, period int) []float64 {
	if len(high) == 0 {
		return nil
	}
	tr := make([]float64, len(high))
	tr[0] = high[0] - low[0]
	for i := 1; i < len(high); i++ {
		tr[i] = math.Max(high[i]-low[i],
			math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))
	}
	return SMASeries(tr, period)
}

// RSISeries computes Wilder-smoothed RSI. A series shorter than period+1
// yields the neutral constant 50 for every position.
func RSISeries(closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		out := make([]float64, len(closes))
		for i := range out {
			out[i] = 50
		}
		return out
	}
	out := make([]float64, len(closes))
	var gain, loss float64
	for i := 1; i <= period; i++ {
		diff := closes[i] - closes[i-1]
		if diff >= 0 {
			gain += diff
		} else {
			loss -= diff
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	out[period] = rsiFromAvg(avgGain, avgLoss)
	for i := period + 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		currentGain := math.Max(diff, 0)
		currentLoss := math.Max(-diff, 0)
		avgGain = (avgGain*float64(period-1) + currentGain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + currentLoss) / float64(period)
		out[i] = rsiFromAvg(avgGain, avgLoss)
	}
	return out
}

func rsiFromAvg(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACDSeries returns the MACD line, signal line, and histogram for the
// standard fast/slow/signal EMA construction.
func MACDSeries(closes []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)
	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = EMASeries(line, signal)
	histogram = make([]float64, len(closes))
	for i := range closes {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}
