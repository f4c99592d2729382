package indicators

import (
	"errors"
	"math"
)

// BollingerBands represents the Bollinger Bands indicator
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands instance with the given period and standard deviation multiplier
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Calculate computes the upper, middle, and lower Bollinger Bands, and the BB% (price position within the bands)
func (bb *BollingerBands) Calculate(prices []float64) (upper, middle, lower, bbPercent float64, err error) {
	if len(prices) < bb.period {
		return 0, 0, 0, 0, errors.New("insufficient data for Bollinger Bands calculation")
	}

	recent := prices[len(prices)-bb.period:]
	middle = mean(recent)
	stdDev := standardDeviation(recent, middle)

	upper = middle + (bb.stdDevMultiple * stdDev)
	lower = middle - (bb.stdDevMultiple * stdDev)

	currentPrice := prices[len(prices)-1]
	if upper == lower {
		bbPercent = 50
	} else {
		bbPercent = ((currentPrice - lower) / (upper - lower)) * 100
	}

	return upper, middle, lower, bbPercent, nil
}

// IsNearLowerBand returns true if the price sits close to the lower band
func (bb *BollingerBands) IsNearLowerBand(bbPercent float64) bool {
	return bbPercent < 20
}

// GetName returns the indicator name
func (bb *BollingerBands) GetName() string {
	return "BollingerBands"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (bb *BollingerBands) GetRequiredPeriods() int {
	return bb.period
}

func standardDeviation(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
