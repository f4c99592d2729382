package backtest

import (
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// Metric names used in comparison rows.
const (
	MetricUnits              = "Total Units"
	MetricAverageCost        = "Average Cost"
	MetricReturnPct          = "Return %"
	MetricCapitalUtilization = "Capital Utilization %"
)

// MetricRow is one line of the side-by-side comparison. A side with no result
// (a dip run with zero purchases) has Valid=false and loses by default.
type MetricRow struct {
	Name           string
	Scheduled      float64
	ScheduledValid bool
	Dip            float64
	DipValid       bool
	Winner         string
}

// Comparison is the joint output of running both engines over one series.
// The point tally is an unweighted count across the four metrics and is
// advisory only; read the rows, not just the headline.
type Comparison struct {
	Scheduled *Result
	Dip       *Result
	Rows      []MetricRow
	Scores    map[string]int
	Winner    string
}

// Compare runs the scheduled and dip engines over the same series with the
// same monthly budget and scores them pointwise.
func Compare(s *series.PriceSeries, monthlyAmount float64, dayOfMonth int, dipThresholdPct, minPurchase float64) (*Comparison, error) {
	scheduled, err := NewScheduledInvestor(monthlyAmount, dayOfMonth).Run(s)
	if err != nil {
		return nil, err
	}

	dipInv := NewDipInvestor(monthlyAmount, dipThresholdPct)
	if minPurchase > 0 {
		dipInv.MinPurchase = minPurchase
	}
	dip, err := dipInv.Run(s)
	if err != nil {
		return nil, err
	}

	c := &Comparison{
		Scheduled: scheduled,
		Dip:       dip,
		Scores:    map[string]int{StrategySimpleDCA: 0, StrategyBuyTheDip: 0},
	}

	c.addRow(MetricUnits, metric(scheduled, (*Result).units), metric(dip, (*Result).units), higherWins)
	c.addRow(MetricAverageCost, metric(scheduled, (*Result).avgCost), metric(dip, (*Result).avgCost), lowerWins)
	c.addRow(MetricReturnPct, metric(scheduled, (*Result).returnPct), metric(dip, (*Result).returnPct), higherWins)
	c.addRow(MetricCapitalUtilization, metric(scheduled, (*Result).CapitalUtilizationPct), metric(dip, (*Result).CapitalUtilizationPct), higherWins)

	switch {
	case c.Scores[StrategySimpleDCA] > c.Scores[StrategyBuyTheDip]:
		c.Winner = StrategySimpleDCA
	case c.Scores[StrategyBuyTheDip] > c.Scores[StrategySimpleDCA]:
		c.Winner = StrategyBuyTheDip
	}

	return c, nil
}

type metricValue struct {
	value float64
	valid bool
}

func metric(r *Result, f func(*Result) float64) metricValue {
	if r == nil {
		return metricValue{}
	}
	return metricValue{value: f(r), valid: true}
}

func (r *Result) units() float64     { return r.TotalUnits }
func (r *Result) avgCost() float64   { return r.AverageCost }
func (r *Result) returnPct() float64 { return r.ReturnPct }

type direction int

const (
	higherWins direction = iota
	lowerWins
)

func (c *Comparison) addRow(name string, scheduled, dip metricValue, dir direction) {
	row := MetricRow{
		Name:           name,
		Scheduled:      scheduled.value,
		ScheduledValid: scheduled.valid,
		Dip:            dip.value,
		DipValid:       dip.valid,
	}

	switch {
	case scheduled.valid && !dip.valid:
		row.Winner = StrategySimpleDCA
	case !scheduled.valid && dip.valid:
		row.Winner = StrategyBuyTheDip
	case scheduled.valid && dip.valid:
		better := scheduled.value > dip.value
		if dir == lowerWins {
			better = scheduled.value < dip.value
		}
		if better {
			row.Winner = StrategySimpleDCA
		} else if scheduled.value != dip.value {
			row.Winner = StrategyBuyTheDip
		}
	}

	if row.Winner != "" {
		c.Scores[row.Winner]++
	}
	c.Rows = append(c.Rows, row)
}
