package data

import (
	"fmt"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// DefaultDataFilter implements DataFilter for common filtering operations.
type DefaultDataFilter struct{}

func NewDefaultDataFilter() *DefaultDataFilter {
	return &DefaultDataFilter{}
}

// FilterByDateRange narrows data to [start, end], inclusive on both ends.
func (f *DefaultDataFilter) FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	if len(data) == 0 {
		return data
	}

	var filtered []types.OHLCV
	for _, candle := range data {
		if (candle.Timestamp.After(start) || candle.Timestamp.Equal(start)) &&
			(candle.Timestamp.Before(end) || candle.Timestamp.Equal(end)) {
			filtered = append(filtered, candle)
		}
	}
	return filtered
}

// ValidateTimeSequence ensures data is in strictly increasing chronological
// order with no duplicate dates.
func (f *DefaultDataFilter) ValidateTimeSequence(data []types.OHLCV) error {
	if len(data) <= 1 {
		return nil
	}

	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}
		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// RemoveDuplicates removes duplicate timestamps, keeping the first occurrence.
func (f *DefaultDataFilter) RemoveDuplicates(data []types.OHLCV) []types.OHLCV {
	if len(data) <= 1 {
		return data
	}

	var filtered []types.OHLCV
	seen := make(map[int64]bool)
	for _, candle := range data {
		ts := candle.Timestamp.Unix()
		if !seen[ts] {
			seen[ts] = true
			filtered = append(filtered, candle)
		}
	}
	return filtered
}
