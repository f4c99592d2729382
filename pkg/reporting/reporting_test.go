package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
)

func sampleResult() *backtest.Result {
	return &backtest.Result{
		Strategy:        backtest.StrategySimpleDCA,
		TotalInvested:   3000,
		TotalUnits:      30.8333,
		AverageCost:     97.2973,
		FinalPrice:      80,
		HoldingsValue:   2466.67,
		TotalShouldSave: 3000,
		TotalReturn:     -533.33,
		ReturnPct:       -17.7778,
		Purchases: []backtest.Purchase{
			{
				Date:            time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
				Price:           100,
				CashSpent:       1000,
				UnitsAcquired:   10,
				CumulativeCash:  1000,
				CumulativeUnits: 10,
				AverageCost:     100,
			},
			{
				Date:            time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
				Price:           120,
				CashSpent:       1000,
				UnitsAcquired:   8.3333,
				CumulativeCash:  2000,
				CumulativeUnits: 18.3333,
				AverageCost:     109.0911,
			},
		},
	}
}

func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "BTCUSDT_d"), DefaultOutputDir("btcusdt", "D"))
	assert.Equal(t, filepath.Join("results", "UNKNOWN_unknown"), DefaultOutputDir("", ""))
	assert.Equal(t, "ETHUSDT_1h", runSlug(" ethusdt ", " 1H "))
}

func TestWritePurchasesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "purchases.csv")

	require.NoError(t, WritePurchasesCSV(sampleResult(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	// Header, two purchases, summary.
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Cumulative_Units")
	assert.Contains(t, lines[1], "2023-01-15")
	assert.Contains(t, lines[3], "SUMMARY")
}

func TestWritePurchasesCSV_NilResult(t *testing.T) {
	err := WritePurchasesCSV(nil, filepath.Join(t.TempDir(), "purchases.csv"))
	assert.Error(t, err)
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")

	require.NoError(t, WriteResultJSON(sampleResult(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, backtest.StrategySimpleDCA, decoded["strategy"])
	assert.InDelta(t, 3000.0, decoded["total_invested"].(float64), 1e-9)

	log, ok := decoded["purchase_log"].([]interface{})
	require.True(t, ok)
	assert.Len(t, log, 2)
}

func TestWriteComparisonXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.xlsx")

	cmp := &backtest.Comparison{
		Scheduled: sampleResult(),
		Rows: []backtest.MetricRow{
			{Name: backtest.MetricUnits, Scheduled: 30.8333, ScheduledValid: true, Winner: backtest.StrategySimpleDCA},
		},
		Scores: map[string]int{backtest.StrategySimpleDCA: 1, backtest.StrategyBuyTheDip: 0},
		Winner: backtest.StrategySimpleDCA,
	}

	require.NoError(t, WriteComparisonXLSX(cmp, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "N/A", formatMetric(backtest.MetricUnits, 0, false))
	assert.Equal(t, "30.833300", formatMetric(backtest.MetricUnits, 30.8333, true))
	assert.Equal(t, "$97.2973", formatMetric(backtest.MetricAverageCost, 97.2973, true))
	assert.Equal(t, "-17.78%", formatMetric(backtest.MetricReturnPct, -17.7778, true))
}

func TestWinnerLabel(t *testing.T) {
	assert.Equal(t, "tie", winnerLabel(""))
	assert.Equal(t, backtest.StrategyBuyTheDip, winnerLabel(backtest.StrategyBuyTheDip))
}
