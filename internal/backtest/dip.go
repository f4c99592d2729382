package backtest

import (
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// DefaultMinPurchase is the smallest amount worth sending to an exchange.
const DefaultMinPurchase = 100.0

// daysPerMonth converts the monthly stipend into a flat daily accrual. The
// approximation is deliberate: the accrual is not calendar-month-aware.
const daysPerMonth = 30.0

// DipInvestor accrues a daily share of the monthly stipend and spends the
// whole accumulated pot whenever a bar's open-to-close return breaches the
// threshold and the pot clears MinPurchase.
//
// The trigger uses the intrabar return, not the cross-bar daily return the
// seasonal code works with. The two disagree on gap days and both are kept on
// purpose; see the package tests.
type DipInvestor struct {
	MonthlyStipend float64
	ThresholdPct   float64 // e.g. -5 buys on a 5% intraday drop
	MinPurchase    float64
}

func NewDipInvestor(monthlyStipend, thresholdPct float64) *DipInvestor {
	return &DipInvestor{
		MonthlyStipend: monthlyStipend,
		ThresholdPct:   thresholdPct,
		MinPurchase:    DefaultMinPurchase,
	}
}

// Run simulates the dip strategy bar by bar. A series without a single deep
// enough dip produces no purchases; that is reported as a nil Result with nil
// error, never as a division by zero.
func (inv *DipInvestor) Run(s *series.PriceSeries) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, &series.IntegrityError{Field: "series", Msg: "empty series"}
	}

	minPurchase := inv.MinPurchase
	if minPurchase <= 0 {
		minPurchase = DefaultMinPurchase
	}
	dailySavings := inv.MonthlyStipend / daysPerMonth

	var (
		log        []Purchase
		totalCash  float64
		totalUnits float64
		cash       float64
		dipDays    int
		missed     int
	)

	for i := 0; i < s.Len(); i++ {
		bar := s.Bar(i)
		cash += dailySavings

		if bar.IntradayReturnPct() > inv.ThresholdPct {
			continue
		}
		dipDays++

		if cash < minPurchase {
			// Dip seen but the pot is too small; keep accruing.
			missed++
			continue
		}
		log, totalCash, totalUnits = appendPurchase(
			log, bar.Timestamp, bar.Close, cash, totalCash, totalUnits)
		cash = 0
	}

	if len(log) == 0 {
		return nil, nil
	}

	finalPrice := s.LastClose()
	shouldSave := float64(s.Len()) * dailySavings
	holdings := totalUnits*finalPrice + cash

	// Measuring against should-save, not invested, lets idle cash drag the
	// return down; a strategy that rarely buys should look like one.
	return &Result{
		Strategy:            StrategyBuyTheDip,
		TotalInvested:       totalCash,
		TotalUnits:          totalUnits,
		AverageCost:         totalCash / totalUnits,
		FinalPrice:          finalPrice,
		HoldingsValue:       holdings,
		LeftoverCash:        cash,
		TotalShouldSave:     shouldSave,
		TotalReturn:         holdings - shouldSave,
		ReturnPct:           (holdings - shouldSave) / shouldSave * 100,
		Purchases:           log,
		DipDays:             dipDays,
		MissedOpportunities: missed,
	}, nil
}
