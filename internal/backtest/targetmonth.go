package backtest

import (
	"fmt"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// TargetMonthInvestor saves the stipend every month and deploys the whole pot
// only in one calendar month of the year, at the close of that month's first
// bar. Good for asking "is a January lump sum better than a September one".
type TargetMonthInvestor struct {
	MonthlyAmount float64
	TargetMonth   time.Month
}

func NewTargetMonthInvestor(monthlyAmount float64, target time.Month) *TargetMonthInvestor {
	return &TargetMonthInvestor{MonthlyAmount: monthlyAmount, TargetMonth: target}
}

func (inv *TargetMonthInvestor) Run(s *series.PriceSeries) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, &series.IntegrityError{Field: "series", Msg: "empty series"}
	}

	var (
		log        []Purchase
		totalCash  float64
		totalUnits float64
		cash       float64
	)

	months := s.Months()
	for _, month := range months {
		cash += inv.MonthlyAmount
		if month.Key.Month != inv.TargetMonth {
			continue
		}
		bar := month.FirstBar()
		log, totalCash, totalUnits = appendPurchase(
			log, bar.Timestamp, bar.Close, cash, totalCash, totalUnits)
		cash = 0
	}

	if len(log) == 0 {
		return nil, nil
	}

	finalPrice := s.LastClose()
	shouldSave := float64(len(months)) * inv.MonthlyAmount
	holdings := totalUnits*finalPrice + cash

	return &Result{
		Strategy:        fmt.Sprintf("%s (%s)", StrategyTargetMonth, inv.TargetMonth.String()[:3]),
		TotalInvested:   totalCash,
		TotalUnits:      totalUnits,
		AverageCost:     totalCash / totalUnits,
		FinalPrice:      finalPrice,
		HoldingsValue:   holdings,
		LeftoverCash:    cash,
		TotalShouldSave: shouldSave,
		TotalReturn:     holdings - shouldSave,
		ReturnPct:       (holdings - shouldSave) / shouldSave * 100,
		Purchases:       log,
	}, nil
}
