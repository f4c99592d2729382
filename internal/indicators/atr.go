package indicators

import (
	"errors"
	"math"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// ATR represents the Average True Range technical indicator.
// ATR measures volatility by smoothing the true range of each daily bar.
type ATR struct {
	period int
	ema    *EMA
}

// NewATR creates a new ATR indicator
func NewATR(period int) *ATR {
	return &ATR{
		period: period,
		ema:    NewEMA(period),
	}
}

// Calculate calculates the ATR value over the full history
func (a *ATR) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < a.period {
		return 0, errors.New("insufficient data points for ATR calculation")
	}

	a.ema.ResetState()
	lastClose := 0.0
	for i, candle := range data {
		var trueRange float64
		if i > 0 {
			trueRange = a.trueRange(candle, lastClose)
		} else {
			trueRange = candle.High - candle.Low
		}
		a.ema.UpdateSingle(trueRange)
		lastClose = candle.Close
	}

	return a.ema.GetLastValue(), nil
}

// trueRange is the greatest of the bar range and the gaps from the
// previous close
func (a *ATR) trueRange(candle types.OHLCV, prevClose float64) float64 {
	highLow := candle.High - candle.Low
	highClose := math.Abs(candle.High - prevClose)
	lowClose := math.Abs(candle.Low - prevClose)
	return math.Max(highLow, math.Max(highClose, lowClose))
}

// GetName returns the indicator name
func (a *ATR) GetName() string {
	return "ATR"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (a *ATR) GetRequiredPeriods() int {
	return a.period
}
