package indicators

import (
	"errors"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// EMA represents the Exponential Moving Average technical indicator
type EMA struct {
	period      int
	alpha       float64
	lastValue   float64
	initialized bool
}

// NewEMA creates a new EMA indicator
func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

// Calculate calculates the EMA value over the full history
func (e *EMA) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < e.period {
		return 0, errors.New("insufficient data for EMA calculation")
	}

	// Seed with the SMA of the first window, then roll forward.
	sum := 0.0
	for i := 0; i < e.period; i++ {
		sum += data[i].Close
	}
	value := sum / float64(e.period)
	for i := e.period; i < len(data); i++ {
		value = (data[i].Close * e.alpha) + (value * (1 - e.alpha))
	}

	e.lastValue = value
	e.initialized = true
	return e.lastValue, nil
}

// UpdateSingle updates the EMA with a single data point
func (e *EMA) UpdateSingle(value float64) float64 {
	if !e.initialized {
		e.lastValue = value
		e.initialized = true
	} else {
		e.lastValue = (value * e.alpha) + (e.lastValue * (1 - e.alpha))
	}

	return e.lastValue
}

// IsInitialized returns whether the EMA has been initialized
func (e *EMA) IsInitialized() bool {
	return e.initialized
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}

// GetLastValue returns the last calculated EMA value
func (e *EMA) GetLastValue() float64 {
	return e.lastValue
}

// ResetState resets the EMA internal state for new data periods
func (e *EMA) ResetState() {
	e.lastValue = 0.0
	e.initialized = false
}
