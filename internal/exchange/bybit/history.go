package bybit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// HistoryFetcher downloads a full candle history for a symbol by
// paginating the kline endpoint backwards from the end of the range.
type HistoryFetcher struct {
	client *Client
	retry  RetryConfig

	// OnPage, when set, is invoked after every successful page with
	// the number of candles it carried.
	OnPage func(count int)
}

// NewHistoryFetcher creates a fetcher with the default retry policy
func NewHistoryFetcher(client *Client) *HistoryFetcher {
	return &HistoryFetcher{
		client: client,
		retry:  DefaultRetryConfig(),
	}
}

// FetchRange downloads all candles for [start, end] at the given
// interval and returns them oldest-first with duplicate timestamps
// collapsed.
func (f *HistoryFetcher) FetchRange(ctx context.Context, category, symbol string, interval KlineInterval, start, end time.Time) ([]types.OHLCV, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("invalid range: start %s is not before end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	seen := make(map[int64]struct{})
	var candles []types.OHLCV

	cursor := end
	for cursor.After(start) {
		params := KlineParams{
			Category: category,
			Symbol:   symbol,
			Interval: interval,
			Start:    &start,
			End:      &cursor,
			Limit:    1000,
		}

		var page []Kline
		err := f.client.RetryWithConfig(ctx, func() error {
			var err error
			page, err = f.client.GetKlines(ctx, params)
			return err
		}, f.retry)
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s: %w", symbol, interval, err)
		}
		if len(page) == 0 {
			break
		}

		oldest := page[0].StartTime
		for _, k := range page {
			if k.StartTime.Before(oldest) {
				oldest = k.StartTime
			}
			if k.StartTime.Before(start) || k.StartTime.After(end) {
				continue
			}
			key := k.StartTime.UnixMilli()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			candles = append(candles, types.OHLCV{
				Timestamp: k.StartTime,
				Open:      k.OpenPrice,
				High:      k.HighPrice,
				Low:       k.LowPrice,
				Close:     k.ClosePrice,
				Volume:    k.Volume,
			})
		}

		if f.OnPage != nil {
			f.OnPage(len(page))
		}

		// Move the window past the oldest bar of this page.
		next := oldest.Add(-time.Millisecond)
		if !next.Before(cursor) {
			break
		}
		cursor = next
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	return candles, nil
}
