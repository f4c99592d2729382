package backtest

import (
	"time"
)

// Purchase is one executed buy. It is appended to the owning engine's log and
// never mutated afterwards; cumulative fields are snapshots taken at append
// time, recomputed from the running totals rather than averaged incrementally.
type Purchase struct {
	Date            time.Time
	Price           float64 // execution price, the bar's close
	CashSpent       float64
	UnitsAcquired   float64
	CumulativeCash  float64
	CumulativeUnits float64
	AverageCost     float64 // CumulativeCash / CumulativeUnits
}

// Result is the outcome of one completed simulation run. It is built once at
// the end of Run and immutable thereafter. Engines that detect zero purchases
// return a nil Result (with nil error) instead of a Result full of NaNs.
type Result struct {
	Strategy string

	TotalInvested   float64
	TotalUnits      float64
	AverageCost     float64
	FinalPrice      float64
	HoldingsValue   float64 // units at final price, plus leftover cash where the strategy holds cash
	LeftoverCash    float64
	TotalShouldSave float64 // months elapsed x stipend (or bars x daily accrual)
	TotalReturn     float64 // HoldingsValue - TotalShouldSave
	ReturnPct       float64 // TotalReturn / TotalShouldSave x 100

	Purchases []Purchase

	// Dip-strategy counters; zero for schedule-driven strategies.
	DipDays             int
	MissedOpportunities int
}

func (r *Result) PurchaseCount() int { return len(r.Purchases) }

// CapitalUtilizationPct is how much of the money that should have been saved
// actually made it into the asset. Always measured against TotalShouldSave;
// anything else degenerates to a meaningless 100%.
func (r *Result) CapitalUtilizationPct() float64 {
	if r.TotalShouldSave == 0 {
		return 0
	}
	return r.TotalInvested / r.TotalShouldSave * 100
}

func (r *Result) FirstPurchase() time.Time { return r.Purchases[0].Date }

func (r *Result) LastPurchase() time.Time { return r.Purchases[len(r.Purchases)-1].Date }

// appendPurchase records a buy against the running totals and returns the
// updated totals. Keeping the arithmetic in one place is what guarantees
// sum(CashSpent) == TotalInvested holds exactly for every log.
func appendPurchase(log []Purchase, date time.Time, price, cash, totalCash, totalUnits float64) ([]Purchase, float64, float64) {
	units := cash / price
	totalCash += cash
	totalUnits += units
	return append(log, Purchase{
		Date:            date,
		Price:           price,
		CashSpent:       cash,
		UnitsAcquired:   units,
		CumulativeCash:  totalCash,
		CumulativeUnits: totalUnits,
		AverageCost:     totalCash / totalUnits,
	}), totalCash, totalUnits
}
