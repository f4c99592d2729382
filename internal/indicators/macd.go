package indicators

import "errors"

// MACD computes the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with specified fast, slow, and signal periods
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate computes the latest MACD line, signal line, and histogram
func (m *MACD) Calculate(prices []float64) (macdLine, signalLine, histogram float64, err error) {
	if len(prices) < m.slowPeriod+m.signalPeriod {
		return 0, 0, 0, errors.New("insufficient data for MACD calculation")
	}

	fast := emaSeries(prices, m.fastPeriod)
	slow := emaSeries(prices, m.slowPeriod)

	macdHistory := make([]float64, 0, len(prices)-m.slowPeriod+1)
	for i := m.slowPeriod - 1; i < len(prices); i++ {
		macdHistory = append(macdHistory, fast[i]-slow[i])
	}

	signal := emaSeries(macdHistory, m.signalPeriod)

	macdLine = macdHistory[len(macdHistory)-1]
	signalLine = signal[len(signal)-1]
	histogram = macdLine - signalLine

	return macdLine, signalLine, histogram, nil
}

// IsBullishCrossover returns true when the MACD line crosses the signal
// line from below
func (m *MACD) IsBullishCrossover(macdLine, signalLine, prevMACD, prevSignal float64) bool {
	return prevMACD <= prevSignal && macdLine > signalLine
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (m *MACD) GetRequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod
}

// emaSeries rolls an EMA over values, seeding with the SMA of the first
// window. Entries before the seed hold the running mean so callers can
// index the result in lockstep with the input.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / float64(period+1)
	sum := 0.0
	for i, v := range values {
		if i < period {
			sum += v
			out[i] = sum / float64(i+1)
			continue
		}
		out[i] = (v * alpha) + (out[i-1] * (1 - alpha))
	}
	return out
}
