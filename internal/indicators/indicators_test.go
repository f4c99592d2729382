package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

func generateTestData(n int) []types.OHLCV {
	data := make([]types.OHLCV, n)
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range data {
		price := 100.0 + float64(i)
		data[i] = types.OHLCV{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
		}
	}
	return data
}

func closesOf(data []types.OHLCV) []float64 {
	out := make([]float64, len(data))
	for i, d := range data {
		out[i] = d.Close
	}
	return out
}

func TestSMA_Calculate(t *testing.T) {
	sma := NewSMA(5)
	data := generateTestData(10)

	value, err := sma.Calculate(data)
	require.NoError(t, err)

	// Last five closes are 105..109.
	assert.InDelta(t, 107.0, value, 1e-9)
	assert.Equal(t, value, sma.GetLastValue())
}

func TestSMA_InsufficientData(t *testing.T) {
	sma := NewSMA(20)
	_, err := sma.Calculate(generateTestData(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient data")
}

func TestSMA_Series(t *testing.T) {
	sma := NewSMA(3)
	out := sma.Series(generateTestData(5))
	require.Len(t, out, 5)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 101.0, out[2], 1e-9)
	assert.InDelta(t, 103.0, out[4], 1e-9)
}

func TestEMA_Calculate(t *testing.T) {
	ema := NewEMA(5)
	data := generateTestData(20)

	value, err := ema.Calculate(data)
	require.NoError(t, err)

	// A steadily rising series keeps the EMA below the last close but
	// above the SMA seed.
	assert.Greater(t, value, 100.0)
	assert.Less(t, value, data[len(data)-1].Close)
	assert.True(t, ema.IsInitialized())
}

func TestEMA_UpdateSingle(t *testing.T) {
	ema := NewEMA(9)

	first := ema.UpdateSingle(10)
	assert.Equal(t, 10.0, first)

	second := ema.UpdateSingle(20)
	assert.Greater(t, second, 10.0)
	assert.Less(t, second, 20.0)

	ema.ResetState()
	assert.False(t, ema.IsInitialized())
}

func TestRSI_AllGains(t *testing.T) {
	rsi := NewRSI(14)
	value, err := rsi.Calculate(closesOf(generateTestData(30)))
	require.NoError(t, err)
	assert.Equal(t, 100.0, value)
}

func TestRSI_InsufficientData(t *testing.T) {
	rsi := NewRSI(14)
	_, err := rsi.Calculate([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestRSI_Bounds(t *testing.T) {
	rsi := NewRSI(14)

	// Alternating gains and losses must land strictly inside (0, 100).
	prices := make([]float64, 40)
	for i := range prices {
		if i%2 == 0 {
			prices[i] = 100
		} else {
			prices[i] = 102
		}
	}
	value, err := rsi.Calculate(prices)
	require.NoError(t, err)
	assert.Greater(t, value, 0.0)
	assert.Less(t, value, 100.0)
}

func TestMACD_Calculate(t *testing.T) {
	macd := NewMACD(12, 26, 9)
	prices := closesOf(generateTestData(60))

	macdLine, signalLine, histogram, err := macd.Calculate(prices)
	require.NoError(t, err)

	// Rising series: fast EMA sits above slow EMA.
	assert.Greater(t, macdLine, 0.0)
	assert.InDelta(t, macdLine-signalLine, histogram, 1e-9)
}

func TestMACD_InsufficientData(t *testing.T) {
	macd := NewMACD(12, 26, 9)
	_, _, _, err := macd.Calculate(closesOf(generateTestData(10)))
	assert.Error(t, err)
}

func TestBollingerBands_Calculate(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)
	prices := closesOf(generateTestData(30))

	upper, middle, lower, bbPercent, err := bb.Calculate(prices)
	require.NoError(t, err)

	assert.Greater(t, upper, middle)
	assert.Less(t, lower, middle)
	assert.GreaterOrEqual(t, bbPercent, 0.0)
	assert.LessOrEqual(t, bbPercent, 100.0)
}

func TestBollingerBands_FlatSeries(t *testing.T) {
	bb := NewBollingerBands(5, 2.0)
	prices := []float64{100, 100, 100, 100, 100}

	upper, middle, lower, bbPercent, err := bb.Calculate(prices)
	require.NoError(t, err)
	assert.Equal(t, middle, upper)
	assert.Equal(t, middle, lower)
	assert.Equal(t, 50.0, bbPercent)
}

func TestATR_Calculate(t *testing.T) {
	atr := NewATR(14)
	value, err := atr.Calculate(generateTestData(30))
	require.NoError(t, err)

	// Every bar has a 2-point range and a 1-point gap; ATR must sit near 2.
	assert.Greater(t, value, 1.5)
	assert.Less(t, value, 3.5)
}

func TestATR_InsufficientData(t *testing.T) {
	atr := NewATR(14)
	_, err := atr.Calculate(generateTestData(5))
	assert.Error(t, err)
}
