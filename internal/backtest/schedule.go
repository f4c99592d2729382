package backtest

import (
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// ResolvePurchaseIndex picks the bar within one calendar month to buy on,
// given the wanted day of month. Markets skip days, so the exact date may not
// exist; the policy is the earliest trading date on or after the target, and
// the month's last trading date when the target lies past all of them (day 31
// in a month whose data ends on the 28th). The fallback is normal operation,
// not an error.
//
// Returns false only for a month with no bars at all, which Months() never
// produces; callers treat it as a skipped month.
func ResolvePurchaseIndex(month series.MonthView, dayOfMonth int) (int, bool) {
	n := month.Len()
	if n == 0 {
		return 0, false
	}
	for i := 0; i < n; i++ {
		if month.Bar(i).Timestamp.Day() >= dayOfMonth {
			return i, true
		}
	}
	return n - 1, true
}
