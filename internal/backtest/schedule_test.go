package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePurchaseIndex_SkipsToNextTradingDay(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-03", 100),
		flatBar("2023-01-04", 100),
		flatBar("2023-01-05", 100),
		flatBar("2023-01-08", 100),
		flatBar("2023-01-09", 100),
	)
	months := s.Months()
	require.Len(t, months, 1)

	// Day 7 does not trade; the earliest date on or after it is the 8th.
	idx, ok := ResolvePurchaseIndex(months[0], 7)
	require.True(t, ok)
	assert.Equal(t, 8, months[0].Bar(idx).Timestamp.Day())
}

func TestResolvePurchaseIndex_ExactDay(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-03", 100),
		flatBar("2023-01-04", 100),
		flatBar("2023-01-05", 100),
	)
	months := s.Months()

	idx, ok := ResolvePurchaseIndex(months[0], 4)
	require.True(t, ok)
	assert.Equal(t, 4, months[0].Bar(idx).Timestamp.Day())
}

func TestResolvePurchaseIndex_FallsBackToLastDay(t *testing.T) {
	s := mustSeries(
		flatBar("2023-02-01", 100),
		flatBar("2023-02-15", 100),
		flatBar("2023-02-28", 100),
	)
	months := s.Months()

	// Day 31 lies past every February date; the month's last bar wins.
	idx, ok := ResolvePurchaseIndex(months[0], 31)
	require.True(t, ok)
	assert.Equal(t, 28, months[0].Bar(idx).Timestamp.Day())
}

func TestResolvePurchaseIndex_FirstDayTarget(t *testing.T) {
	s := mustSeries(
		flatBar("2023-03-02", 100),
		flatBar("2023-03-03", 100),
	)
	months := s.Months()

	idx, ok := ResolvePurchaseIndex(months[0], 1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}
