package seasonal

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// SeasonalStat aggregates month-over-month returns for one calendar month
// across every observed year.
type SeasonalStat struct {
	Month           time.Month
	Samples         int
	WinRatePct      float64
	MeanReturnPct   float64
	MedianReturnPct float64
}

// MonthlySeasonality resamples the series to month-end closes, computes the
// month-over-month return, and pivots it by calendar month so each month
// contributes one sample per elapsed year. The first month has no previous
// close and contributes nothing.
func MonthlySeasonality(s *series.PriceSeries) []SeasonalStat {
	months := s.Months()
	if len(months) < 2 {
		return nil
	}

	samples := make(map[time.Month][]float64)
	prevKey := months[0].Key
	prevClose := months[0].LastBar().Close
	for _, month := range months[1:] {
		close := month.LastBar().Close
		// A month-over-month return only makes sense against the immediately
		// preceding calendar month; after a gap in the data the first observed
		// month contributes no sample.
		if month.Key == prevKey.Next() {
			ret := (close - prevClose) / prevClose * 100
			samples[month.Key.Month] = append(samples[month.Key.Month], ret)
		}
		prevKey = month.Key
		prevClose = close
	}

	var out []SeasonalStat
	for m := time.January; m <= time.December; m++ {
		returns := samples[m]
		if len(returns) == 0 {
			continue
		}

		wins := 0
		for _, r := range returns {
			if r > 0 {
				wins++
			}
		}

		sorted := make([]float64, len(returns))
		copy(sorted, returns)
		sort.Float64s(sorted)

		out = append(out, SeasonalStat{
			Month:           m,
			Samples:         len(returns),
			WinRatePct:      float64(wins) / float64(len(returns)) * 100,
			MeanReturnPct:   stat.Mean(returns, nil),
			MedianReturnPct: median(sorted),
		})
	}
	return out
}

// median of an already sorted slice, interpolating the two middle values
// when the count is even.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
