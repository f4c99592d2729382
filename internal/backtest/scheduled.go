package backtest

import (
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// StrategySimpleDCA and friends name the engines in reports.
const (
	StrategySimpleDCA   = "Simple DCA"
	StrategyBuyTheDip   = "Buy the Dip"
	StrategyTargetMonth = "Target Month DCA"
)

// ScheduledInvestor buys a fixed amount once per calendar month, on the day
// of month resolved by ResolvePurchaseIndex.
type ScheduledInvestor struct {
	MonthlyAmount float64
	DayOfMonth    int
}

func NewScheduledInvestor(monthlyAmount float64, dayOfMonth int) *ScheduledInvestor {
	return &ScheduledInvestor{MonthlyAmount: monthlyAmount, DayOfMonth: dayOfMonth}
}

// Run simulates the schedule over the whole series. Exactly one purchase is
// made for every month that has data, so the purchase log grows monotonically
// in both cash and units. The run is a pure function of (series, parameters).
func (inv *ScheduledInvestor) Run(s *series.PriceSeries) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, &series.IntegrityError{Field: "series", Msg: "empty series"}
	}

	var (
		log        []Purchase
		totalCash  float64
		totalUnits float64
	)

	months := s.Months()
	for _, month := range months {
		idx, ok := ResolvePurchaseIndex(month, inv.DayOfMonth)
		if !ok {
			continue
		}
		bar := month.Bar(idx)
		log, totalCash, totalUnits = appendPurchase(
			log, bar.Timestamp, bar.Close, inv.MonthlyAmount, totalCash, totalUnits)
	}

	if len(log) == 0 {
		return nil, nil
	}

	finalPrice := s.LastClose()
	holdings := totalUnits * finalPrice

	// One stipend per month, always spent: should-save equals invested.
	return &Result{
		Strategy:        StrategySimpleDCA,
		TotalInvested:   totalCash,
		TotalUnits:      totalUnits,
		AverageCost:     totalCash / totalUnits,
		FinalPrice:      finalPrice,
		HoldingsValue:   holdings,
		LeftoverCash:    0,
		TotalShouldSave: totalCash,
		TotalReturn:     holdings - totalCash,
		ReturnPct:       (holdings - totalCash) / totalCash * 100,
		Purchases:       log,
	}, nil
}
