package seasonal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySeasonality_PivotsByCalendarMonth(t *testing.T) {
	s := mustSeries(
		flatBar("2022-01-31", 100),
		flatBar("2022-02-28", 110), // Feb 2022: +10%
		flatBar("2022-03-31", 99),  // Mar 2022: -10%
		flatBar("2023-01-31", 99),  // Jan 2023: 0%
		flatBar("2023-02-28", 118.8), // Feb 2023: +20%
	)

	stats := MonthlySeasonality(s)
	byMonth := map[time.Month]SeasonalStat{}
	for _, st := range stats {
		byMonth[st.Month] = st
	}

	feb, ok := byMonth[time.February]
	require.True(t, ok)
	assert.Equal(t, 2, feb.Samples)
	assert.InDelta(t, 100.0, feb.WinRatePct, 1e-9)
	assert.InDelta(t, 15.0, feb.MeanReturnPct, 1e-6)

	mar, ok := byMonth[time.March]
	require.True(t, ok)
	assert.Equal(t, 1, mar.Samples)
	assert.Zero(t, mar.WinRatePct)
	assert.InDelta(t, -10.0, mar.MeanReturnPct, 1e-6)

	// Jan 2023 sits after a gap in the data (no Apr-Dec 2022 bars) so it
	// yields no month-over-month sample.
	_, ok = byMonth[time.January]
	assert.False(t, ok)
}

func TestMonthlySeasonality_MedianInterpolatesEvenSamples(t *testing.T) {
	s := mustSeries(
		flatBar("2022-01-31", 100),
		flatBar("2022-02-28", 110), // Feb 2022: +10%
		flatBar("2022-03-31", 110),
		flatBar("2022-04-29", 110),
		flatBar("2022-05-31", 110),
		flatBar("2022-06-30", 110),
		flatBar("2022-07-29", 110),
		flatBar("2022-08-31", 110),
		flatBar("2022-09-30", 110),
		flatBar("2022-10-31", 110),
		flatBar("2022-11-30", 110),
		flatBar("2022-12-30", 110),
		flatBar("2023-01-31", 110),
		flatBar("2023-02-28", 132), // Feb 2023: +20%
	)

	stats := MonthlySeasonality(s)
	byMonth := map[time.Month]SeasonalStat{}
	for _, st := range stats {
		byMonth[st.Month] = st
	}

	feb, ok := byMonth[time.February]
	require.True(t, ok)
	require.Equal(t, 2, feb.Samples)
	// Two samples, +10 and +20: the median is their midpoint, not either
	// sample point.
	assert.InDelta(t, 15.0, feb.MedianReturnPct, 1e-6)

	jan, ok := byMonth[time.January]
	require.True(t, ok)
	assert.Equal(t, 1, jan.Samples)
	assert.InDelta(t, 0.0, jan.MedianReturnPct, 1e-9)
}

func TestMonthlySeasonality_SkipsAcrossDataGaps(t *testing.T) {
	s := mustSeries(
		flatBar("2022-04-29", 100),
		flatBar("2022-05-31", 110), // May 2022: +10%
		flatBar("2022-08-31", 99),  // after a Jun-Jul gap: no sample
		flatBar("2022-09-30", 108.9), // Sep 2022: +10% vs August's close
	)

	stats := MonthlySeasonality(s)
	byMonth := map[time.Month]SeasonalStat{}
	for _, st := range stats {
		byMonth[st.Month] = st
	}

	_, ok := byMonth[time.August]
	assert.False(t, ok)

	may, ok := byMonth[time.May]
	require.True(t, ok)
	assert.InDelta(t, 10.0, may.MeanReturnPct, 1e-6)

	// The month after the gap measures against the gap month's close, not
	// across the gap.
	sep, ok := byMonth[time.September]
	require.True(t, ok)
	assert.InDelta(t, 10.0, sep.MeanReturnPct, 1e-6)
}

func TestMonthlySeasonality_FirstMonthContributesNothing(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-31", 100),
		flatBar("2023-02-28", 120),
	)

	stats := MonthlySeasonality(s)
	require.Len(t, stats, 1)
	assert.Equal(t, time.February, stats[0].Month)
}

func TestMonthlySeasonality_TooShort(t *testing.T) {
	s := mustSeries(flatBar("2023-01-31", 100))
	assert.Nil(t, MonthlySeasonality(s))
}

func TestProfileMonth_SeparatesFocusFromRest(t *testing.T) {
	s := mustSeries(
		flatBar("2022-08-30", 100),
		flatBar("2022-08-31", 100),
		flatBar("2022-09-01", 90), // -10% September day
		flatBar("2022-09-02", 81), // -10% September day
		flatBar("2022-10-03", 81),
		flatBar("2023-09-01", 81),
		flatBar("2023-09-04", 85.05), // +5% September day
	)

	p := ProfileMonth(s, time.September)
	require.NotNil(t, p)

	assert.Equal(t, time.September, p.Month)
	// Sep 2022 bars: -10, -10. Sep 2023: the 2023-09-01 bar follows
	// 2022-10-03's close of 81 so it is 0, then +5.
	assert.InDelta(t, (-10-10+0+5.0)/4.0, p.FocusMeanReturnPct, 1e-6)

	require.Len(t, p.YearlyReturns, 2)
	assert.Equal(t, 2022, p.YearlyReturns[0].Year)
	assert.InDelta(t, -19.0, p.YearlyReturns[0].ReturnPct, 1e-6)
	assert.Equal(t, 2023, p.YearlyReturns[1].Year)
	assert.InDelta(t, 5.0, p.YearlyReturns[1].ReturnPct, 1e-6)

	// Day 1 pooled across years: (-10 + 0) / 2.
	var day1 *DayAverage
	for i := range p.DailyAverages {
		if p.DailyAverages[i].Day == 1 {
			day1 = &p.DailyAverages[i]
		}
	}
	require.NotNil(t, day1)
	assert.Equal(t, 2, day1.Samples)
	assert.InDelta(t, -5.0, day1.MeanReturnPct, 1e-6)

	assert.Equal(t, 2, p.WorstDay.Day)
	assert.InDelta(t, -10.0, p.WorstDay.MeanReturnPct, 1e-6)
}

func TestProfileMonth_NoFocusBars(t *testing.T) {
	s := mustSeries(
		flatBar("2023-01-02", 100),
		flatBar("2023-01-03", 101),
	)

	assert.Nil(t, ProfileMonth(s, time.June))
}
