package backtest

import (
	"time"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

func day(date string) time.Time {
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return ts
}

func flatBar(date string, close float64) types.OHLCV {
	return types.OHLCV{
		Timestamp: day(date),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1000,
	}
}

func rangeBar(date string, open, close float64) types.OHLCV {
	high := open
	if close > high {
		high = close
	}
	low := open
	if close < low {
		low = close
	}
	return types.OHLCV{
		Timestamp: day(date),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1000,
	}
}

func mustSeries(bars ...types.OHLCV) *series.PriceSeries {
	s, err := series.New(bars)
	if err != nil {
		panic(err)
	}
	return s
}
