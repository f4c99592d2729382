package types

import "time"

// OHLCV is a single daily candle as delivered by an exchange or a CSV export.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// IntradayReturnPct is the open-to-close return of this bar in percent.
// This is the dip-trigger return; it is intentionally distinct from the
// day-over-day close return computed by series.PriceSeries.
func (b OHLCV) IntradayReturnPct() float64 {
	return (b.Close - b.Open) / b.Open * 100
}
