package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

func flatBar(date string, close float64) types.OHLCV {
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return types.OHLCV{
		Timestamp: ts,
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1000,
	}
}

func TestNew_EmptySeries(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "series", intErr.Field)
}

func TestNew_NonPositivePrice(t *testing.T) {
	bars := []types.OHLCV{
		flatBar("2023-01-02", 100),
		{Timestamp: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: -5, Close: 100},
	}

	_, err := New(bars)
	require.Error(t, err)

	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, 1, intErr.Index)
	assert.Equal(t, "low", intErr.Field)
	assert.Contains(t, err.Error(), "2023-01-03")
}

func TestNew_NaNPrice(t *testing.T) {
	bars := []types.OHLCV{
		{Timestamp: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 100, Low: 100, Close: math.NaN()},
	}

	_, err := New(bars)
	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "close", intErr.Field)
}

func TestNew_OutOfOrderTimestamps(t *testing.T) {
	bars := []types.OHLCV{
		flatBar("2023-01-03", 100),
		flatBar("2023-01-02", 101),
	}

	_, err := New(bars)
	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, 1, intErr.Index)
	assert.Equal(t, "timestamp", intErr.Field)
}

func TestNew_DuplicateTimestamps(t *testing.T) {
	bars := []types.OHLCV{
		flatBar("2023-01-02", 100),
		flatBar("2023-01-02", 101),
	}

	_, err := New(bars)
	var intErr *IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "timestamp", intErr.Field)
}

func TestDailyReturns(t *testing.T) {
	s, err := New([]types.OHLCV{
		flatBar("2023-01-02", 100),
		flatBar("2023-01-03", 110),
		flatBar("2023-01-04", 121),
	})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(s.DailyReturnPct(0)))
	assert.InDelta(t, 10.0, s.DailyReturnPct(1), 1e-9)
	assert.InDelta(t, 10.0, s.DailyReturnPct(2), 1e-9)
}

func TestNew_CopiesInput(t *testing.T) {
	bars := []types.OHLCV{
		flatBar("2023-01-02", 100),
		flatBar("2023-01-03", 110),
	}
	s, err := New(bars)
	require.NoError(t, err)

	bars[0].Close = 1
	assert.Equal(t, 100.0, s.Bar(0).Close)
}

func TestMonths_Partition(t *testing.T) {
	s, err := New([]types.OHLCV{
		flatBar("2023-01-30", 100),
		flatBar("2023-01-31", 101),
		flatBar("2023-02-01", 102),
		flatBar("2023-02-02", 103),
		flatBar("2023-04-03", 104),
	})
	require.NoError(t, err)

	months := s.Months()
	require.Len(t, months, 3)

	assert.Equal(t, MonthKey{2023, time.January}, months[0].Key)
	assert.Equal(t, MonthKey{2023, time.February}, months[1].Key)
	assert.Equal(t, MonthKey{2023, time.April}, months[2].Key)

	assert.Equal(t, 2, months[0].Len())
	assert.Equal(t, 2, months[1].Len())
	assert.Equal(t, 1, months[2].Len())

	total := 0
	for _, m := range months {
		total += m.Len()
	}
	assert.Equal(t, s.Len(), total)
}

func TestMonthView_SharesParentReturns(t *testing.T) {
	s, err := New([]types.OHLCV{
		flatBar("2023-01-31", 100),
		flatBar("2023-02-01", 105),
	})
	require.NoError(t, err)

	months := s.Months()
	require.Len(t, months, 2)

	// The February view's first bar keeps its return against the January
	// close instead of going NaN.
	feb := months[1]
	assert.InDelta(t, 5.0, feb.DailyReturnPct(0), 1e-9)
}

func TestMonthKey_String(t *testing.T) {
	k := MonthKey{Year: 2023, Month: time.September}
	assert.Equal(t, "2023-09", k.String())
}

func TestMonthKey_Before(t *testing.T) {
	a := MonthKey{2022, time.December}
	b := MonthKey{2023, time.January}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
