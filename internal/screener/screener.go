package screener

import (
	"fmt"

	"fluxterm/internal/domain"
)

// Outcome is the result of evaluating a single condition. Production callers
// collapse everything but Satisfied to false; tests can distinguish a rule
// that legitimately failed from one that could never match.
type Outcome int

const (
	NotSatisfied Outcome = iota
	Satisfied
	Unsupported
	MissingData
)

func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "satisfied"
	case Unsupported:
		return "unsupported"
	case MissingData:
		return "missing_data"
	default:
		return "not_satisfied"
	}
}

// numericMetrics accept > and < with a number operand.
var numericMetrics = map[domain.FilterMetric]bool{
	domain.MetricRSI:      true,
	domain.MetricMACDHist: true,
	domain.MetricVolDelta: true,
	domain.MetricOIChange: true,
}

// categoricalMetrics accept = and != with a label operand.
var categoricalMetrics = map[domain.FilterMetric]bool{
	domain.MetricRSISlope:   true,
	domain.MetricMACDCross:  true,
	domain.MetricTrendState: true,
	domain.MetricExecTier:   true,
	domain.MetricVWAPState:  true,
	domain.MetricLevelProx:  true,
}

// NewRule builds a condition, rejecting operator/metric combinations that
// could never match. Rules deserialized from older stores bypass this and
// fall through to the permissive default in Evaluate.
func NewRule(id string, metric domain.FilterMetric, op domain.FilterOperator, operand domain.Operand, tf domain.Timeframe) (domain.FilterRule, error) {
	rule := domain.FilterRule{ID: id, Metric: metric, Operator: op, Operand: operand, Timeframe: tf}
	switch {
	case numericMetrics[metric]:
		if op != domain.OpGreater && op != domain.OpLess {
			return domain.FilterRule{}, fmt.Errorf("metric %s supports only > and <, got %s", metric, op)
		}
		if operand.Kind != domain.OperandNumber {
			return domain.FilterRule{}, fmt.Errorf("metric %s requires a numeric operand", metric)
		}
	case categoricalMetrics[metric]:
		if op != domain.OpEqual && op != domain.OpNotEqual {
			return domain.FilterRule{}, fmt.Errorf("metric %s supports only = and !=, got %s", metric, op)
		}
		if operand.Kind != domain.OperandLabel {
			return domain.FilterRule{}, fmt.Errorf("metric %s requires a label operand", metric)
		}
	default:
		return domain.FilterRule{}, fmt.Errorf("unknown metric %s", metric)
	}
	return rule, nil
}

// Evaluate checks one condition against a snapshot. Unknown metrics and
// mismatched operator/operand combinations report Unsupported; a timeframe
// with no computed indicator state reports MissingData. Both read as false
// to Matches.
func Evaluate(snap *domain.CoinSnapshot, rule domain.FilterRule) Outcome {
	if snap == nil {
		return MissingData
	}
	switch {
	case numericMetrics[rule.Metric]:
		if rule.Operand.Kind != domain.OperandNumber {
			return Unsupported
		}
		value, outcome := numericValue(snap, rule)
		if outcome != Satisfied {
			return outcome
		}
		return compareNumeric(value, rule.Operator, rule.Operand.Number)
	case categoricalMetrics[rule.Metric]:
		if rule.Operand.Kind != domain.OperandLabel {
			return Unsupported
		}
		value, outcome := labelValue(snap, rule)
		if outcome != Satisfied {
			return outcome
		}
		return compareLabel(value, rule.Operator, rule.Operand.Label)
	default:
		return Unsupported
	}
}

// Matches evaluates a rule set as a conjunction. An empty set matches.
func Matches(snap *domain.CoinSnapshot, rules []domain.FilterRule) bool {
	for _, rule := range rules {
		if Evaluate(snap, rule) != Satisfied {
			return false
		}
	}
	return true
}

func numericValue(snap *domain.CoinSnapshot, rule domain.FilterRule) (float64, Outcome) {
	switch rule.Metric {
	case domain.MetricVolDelta:
		return snap.VolumeDelta, Satisfied
	case domain.MetricOIChange:
		return snap.OIChange, Satisfied
	}
	st, ok := snap.Technical[rule.Timeframe]
	if !ok {
		return 0, MissingData
	}
	switch rule.Metric {
	case domain.MetricRSI:
		return st.RSI.Value, Satisfied
	case domain.MetricMACDHist:
		return st.MACD.Histogram, Satisfied
	}
	return 0, Unsupported
}

func labelValue(snap *domain.CoinSnapshot, rule domain.FilterRule) (string, Outcome) {
	switch rule.Metric {
	case domain.MetricVWAPState:
		return string(snap.VWAP.State), Satisfied
	case domain.MetricExecTier:
		return string(snap.Execution.Tier), Satisfied
	case domain.MetricLevelProx:
		return string(snap.Levels.Proximity), Satisfied
	}
	st, ok := snap.Technical[rule.Timeframe]
	if !ok {
		return "", MissingData
	}
	switch rule.Metric {
	case domain.MetricRSISlope:
		return string(st.RSI.Slope), Satisfied
	case domain.MetricMACDCross:
		return string(st.MACD.Cross), Satisfied
	case domain.MetricTrendState:
		return string(st.Trend.State), Satisfied
	}
	return "", Unsupported
}

func compareNumeric(value float64, op domain.FilterOperator, operand float64) Outcome {
	switch op {
	case domain.OpGreater:
		if value > operand {
			return Satisfied
		}
		return NotSatisfied
	case domain.OpLess:
		if value < operand {
			return Satisfied
		}
		return NotSatisfied
	default:
		return Unsupported
	}
}

func compareLabel(value string, op domain.FilterOperator, operand string) Outcome {
	switch op {
	case domain.OpEqual:
		if value == operand {
			return Satisfied
		}
		return NotSatisfied
	case domain.OpNotEqual:
		if value != operand {
			return Satisfied
		}
		return NotSatisfied
	default:
		return Unsupported
	}
}
