package seasonal

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// YearReturn is the compounded month-to-date return of the focus month in one
// year.
type YearReturn struct {
	Year      int
	ReturnPct float64
	Bars      int
}

// DayAverage is the mean cross-bar daily return of one day-of-month, pooled
// across years.
type DayAverage struct {
	Day           int
	MeanReturnPct float64
	Samples       int
}

// MonthProfile is a deep dive into how one calendar month trades compared to
// the rest of the series.
type MonthProfile struct {
	Month time.Month

	FocusMeanReturnPct float64
	FocusVolatilityPct float64
	RestMeanReturnPct  float64
	RestVolatilityPct  float64

	YearlyReturns []YearReturn
	DailyAverages []DayAverage
	WorstDay      DayAverage
}

// ProfileMonth compares the focus month's daily behaviour against the rest of
// the series. All daily returns are the cross-bar kind and come from the full
// series, so the first bar of each focus month is measured against the prior
// month's close rather than dropped.
func ProfileMonth(s *series.PriceSeries, focus time.Month) *MonthProfile {
	var focusReturns, restReturns []float64
	byYear := make(map[int][]float64)
	byDay := make(map[int][]float64)

	for i := 0; i < s.Len(); i++ {
		r := s.DailyReturnPct(i)
		if math.IsNaN(r) {
			continue
		}
		ts := s.Bar(i).Timestamp
		if ts.Month() == focus {
			focusReturns = append(focusReturns, r)
			byYear[ts.Year()] = append(byYear[ts.Year()], r)
			byDay[ts.Day()] = append(byDay[ts.Day()], r)
		} else {
			restReturns = append(restReturns, r)
		}
	}

	if len(focusReturns) == 0 {
		return nil
	}

	p := &MonthProfile{
		Month:              focus,
		FocusMeanReturnPct: stat.Mean(focusReturns, nil),
		FocusVolatilityPct: stat.StdDev(focusReturns, nil),
	}
	if len(restReturns) > 0 {
		p.RestMeanReturnPct = stat.Mean(restReturns, nil)
		p.RestVolatilityPct = stat.StdDev(restReturns, nil)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		compounded := 1.0
		for _, r := range byYear[y] {
			compounded *= 1 + r/100
		}
		p.YearlyReturns = append(p.YearlyReturns, YearReturn{
			Year:      y,
			ReturnPct: (compounded - 1) * 100,
			Bars:      len(byYear[y]),
		})
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)
	for _, d := range days {
		avg := DayAverage{
			Day:           d,
			MeanReturnPct: stat.Mean(byDay[d], nil),
			Samples:       len(byDay[d]),
		}
		p.DailyAverages = append(p.DailyAverages, avg)
		if p.WorstDay.Samples == 0 || avg.MeanReturnPct < p.WorstDay.MeanReturnPct {
			p.WorstDay = avg
		}
	}

	return p
}
