package ta

import (
	"math"

	"fluxterm/internal/domain"
)

const (
	RSIPeriod     = 14
	EMAFastPeriod = 20
	EMASlowPeriod = 50
	MACDFast      = 12
	MACDSlow      = 26
	MACDSignal    = 9
	ATRPeriod     = 14

	// maxLookback bounds full recomputation after a rolling window trims
	// old candles.
	maxLookback = 250
)

// StateFromCandles derives the full qualitative indicator state for one
// (symbol, timeframe) series. Pure and deterministic for a given series.
func StateFromCandles(candles []domain.Candle) domain.IndicatorState {
	candles = window(candles)
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	var st domain.IndicatorState
	if len(closes) == 0 {
		st.RSI = domain.RSIData{Value: 50, State: domain.RSINeutral, Slope: domain.SlopeDown}
		st.MACD.Trend = domain.MACDBearish
		st.Trend.State = domain.TrendChop
		return st
	}

	idx := len(closes) - 1
	rsiArr := RSISeries(closes, RSIPeriod)
	rsiVal := rsiArr[idx]
	prevRSI := rsiVal
	if idx > 0 {
		prevRSI = rsiArr[idx-1]
	}
	st.RSI = domain.RSIData{
		Value: rsiVal,
		State: RSIState(rsiVal),
		Slope: slope(rsiVal, prevRSI),
	}

	line, signalLine, hist := MACDSeries(closes, MACDFast, MACDSlow, MACDSignal)
	histVal := hist[idx]
	prevHist := histVal
	if idx > 0 {
		prevHist = hist[idx-1]
	}
	st.MACD = domain.MACDData{
		Line:      line[idx],
		Signal:    signalLine[idx],
		Histogram: histVal,
		Cross:     crossOf(histVal, prevHist),
		Trend:     macdTrend(histVal, prevHist),
	}

	emaFast := EMASeries(closes, EMAFastPeriod)
	emaSlow := EMASeries(closes, EMASlowPeriod)
	st.Trend = domain.TrendData{
		EMAFast: emaFast[idx],
		EMASlow: emaSlow[idx],
		State:   trendState(emaFast[idx], emaSlow[idx]),
	}
	return st
}

// ATRFromCandles returns the latest ATR value for the series, or 0 when the
// series is too short for the smoothing period.
func ATRFromCandles(candles []domain.Candle, period int) float64 {
	candles = window(candles)
	if len(candles) == 0 {
		return 0
	}
	high := make([]float64, len(candles))
	low := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	for i, c := range candles {
		high[i] = c.High
		low[i] = c.Low
		closes[i] = c.Close
	}
	arr := ATRSeries(high, low, closes, period)
	v := arr[len(arr)-1]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// RSIState buckets an RSI value: <30 oversold, >70 overbought, else neutral.
func RSIState(v float64) domain.RSIState {
	switch {
	case v < 30:
		return domain.RSIOversold
	case v > 70:
		return domain.RSIOverbought
	default:
		return domain.RSINeutral
	}
}

func slope(current, previous float64) domain.Slope {
	if current > previous {
		return domain.SlopeUp
	}
	return domain.SlopeDown
}

func crossOf(hist, prevHist float64) domain.Cross {
	switch {
	case hist > 0 && prevHist <= 0:
		return domain.CrossBullish
	case hist < 0 && prevHist >= 0:
		return domain.CrossBearish
	default:
		return domain.CrossNone
	}
}

func macdTrend(hist, prevHist float64) domain.MACDTrend {
	if hist > prevHist {
		return domain.MACDBullish
	}
	return domain.MACDBearish
}

func trendState(fast, slow float64) domain.TrendState {
	switch {
	case fast > slow:
		return domain.TrendUp
	case fast < slow:
		return domain.TrendDown
	default:
		return domain.TrendChop
	}
}

func window(candles []domain.Candle) []domain.Candle {
	if len(candles) > maxLookback {
		return candles[len(candles)-maxLookback:]
	}
	return candles
}
