// Package seasonal reduces a price series into per-period aggregates:
// month-by-month returns and drawdowns, cross-year seasonality tables and
// single-month deep dives. It only reads the series; all purchase simulation
// lives in the backtest package.
package seasonal

import (
	"sort"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// MonthStats summarizes one calendar month of trading.
type MonthStats struct {
	Key             series.MonthKey
	Open            float64 // first bar's open
	Close           float64 // last bar's close
	ReturnPct       float64
	MaxDrawdownPct  float64 // worst low against the running intra-month high, <= 0
	MaxDailyDropPct float64 // worst single-bar open-to-close return
	Bars            int
}

// MonthlyBreakdown computes return and drawdown per calendar month. Months
// with fewer than two bars cannot produce a meaningful return and are
// skipped entirely rather than reported as zero.
//
// The drawdown is the rolling-high/low formula: the running maximum of highs
// restarts at each month boundary and every bar's low is measured against it.
func MonthlyBreakdown(s *series.PriceSeries) []MonthStats {
	var out []MonthStats
	for _, month := range s.Months() {
		if month.Len() < 2 {
			continue
		}

		first := month.FirstBar()
		last := month.LastBar()

		runningHigh := 0.0
		maxDrawdown := 0.0
		maxDailyDrop := 0.0
		for i := 0; i < month.Len(); i++ {
			bar := month.Bar(i)
			if bar.High > runningHigh {
				runningHigh = bar.High
			}
			if dd := (bar.Low - runningHigh) / runningHigh * 100; dd < maxDrawdown {
				maxDrawdown = dd
			}
			if drop := bar.IntradayReturnPct(); drop < maxDailyDrop {
				maxDailyDrop = drop
			}
		}

		out = append(out, MonthStats{
			Key:             month.Key,
			Open:            first.Open,
			Close:           last.Close,
			ReturnPct:       (last.Close - first.Open) / first.Open * 100,
			MaxDrawdownPct:  maxDrawdown,
			MaxDailyDropPct: maxDailyDrop,
			Bars:            month.Len(),
		})
	}
	return out
}

// WorstReturns returns the n months with the lowest return, worst first.
func WorstReturns(stats []MonthStats, n int) []MonthStats {
	return worstBy(stats, n, func(m MonthStats) float64 { return m.ReturnPct })
}

// DeepestDrawdowns returns the n months with the deepest drawdown, worst first.
func DeepestDrawdowns(stats []MonthStats, n int) []MonthStats {
	return worstBy(stats, n, func(m MonthStats) float64 { return m.MaxDrawdownPct })
}

func worstBy(stats []MonthStats, n int, key func(MonthStats) float64) []MonthStats {
	sorted := make([]MonthStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
