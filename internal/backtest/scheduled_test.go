package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

func TestScheduledInvestor_EndToEnd(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-15", 100),
		flatBar("2023-02-15", 120),
		flatBar("2023-03-15", 80),
	)

	result, err := NewScheduledInvestor(1000, 15).Run(s)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, StrategySimpleDCA, result.Strategy)
	assert.Equal(t, 3, result.PurchaseCount())
	assert.InDelta(t, 3000.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, 10.0+1000.0/120+12.5, result.TotalUnits, 1e-9)
	assert.InDelta(t, 97.2973, result.AverageCost, 1e-3)
	assert.InDelta(t, 80.0, result.FinalPrice, 1e-9)
	assert.InDelta(t, 2466.67, result.HoldingsValue, 1e-2)
	assert.InDelta(t, -17.7778, result.ReturnPct, 1e-3)
	assert.Zero(t, result.LeftoverCash)
}

func TestScheduledInvestor_OnePurchasePerMonth(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-02", 100),
		flatBar("2023-01-16", 110),
		flatBar("2023-01-30", 120),
		flatBar("2023-02-01", 130),
		flatBar("2023-02-27", 140),
	)

	result, err := NewScheduledInvestor(500, 15).Run(s)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Equal(t, 2, result.PurchaseCount())
	assert.Equal(t, 16, result.Purchases[0].Date.Day())
	assert.Equal(t, 27, result.Purchases[1].Date.Day())
}

func TestScheduledInvestor_CashConservation(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-10", 100),
		flatBar("2023-02-10", 90),
		flatBar("2023-03-10", 95),
		flatBar("2023-04-10", 105),
	)

	result, err := NewScheduledInvestor(250, 10).Run(s)
	require.NoError(t, err)
	require.NotNil(t, result)

	var spent, units float64
	for _, p := range result.Purchases {
		spent += p.CashSpent
		units += p.UnitsAcquired
	}
	assert.InDelta(t, result.TotalInvested, spent, 1e-9)
	assert.InDelta(t, result.TotalUnits, units, 1e-9)
	assert.InDelta(t, result.TotalInvested, result.TotalShouldSave, 1e-9)
}

func TestScheduledInvestor_MonotonicCumulatives(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-05", 100),
		flatBar("2023-02-05", 50),
		flatBar("2023-03-05", 200),
	)

	result, err := NewScheduledInvestor(100, 5).Run(s)
	require.NoError(t, err)
	require.NotNil(t, result)

	for i := 1; i < len(result.Purchases); i++ {
		assert.Greater(t, result.Purchases[i].CumulativeCash, result.Purchases[i-1].CumulativeCash)
		assert.Greater(t, result.Purchases[i].CumulativeUnits, result.Purchases[i-1].CumulativeUnits)
	}
}

func TestScheduledInvestor_Deterministic(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-15", 123.456),
		flatBar("2023-02-15", 234.567),
		flatBar("2023-03-15", 198.765),
	)

	inv := NewScheduledInvestor(777, 15)
	first, err := inv.Run(s)
	require.NoError(t, err)
	second, err := inv.Run(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScheduledInvestor_NilSeries(t *testing.T) {
	_, err := NewScheduledInvestor(1000, 15).Run(nil)
	require.Error(t, err)

	var intErr *series.IntegrityError
	assert.ErrorAs(t, err, &intErr)
}
