package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

func dayBar(date string) types.OHLCV {
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return types.OHLCV{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1}
}

func TestFilterByDateRange_Inclusive(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := []types.OHLCV{
		dayBar("2023-01-01"),
		dayBar("2023-01-02"),
		dayBar("2023-01-03"),
		dayBar("2023-01-04"),
	}

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)

	filtered := filter.FilterByDateRange(data, start, end)
	require.Len(t, filtered, 2)
	assert.Equal(t, 2, filtered[0].Timestamp.Day())
	assert.Equal(t, 3, filtered[1].Timestamp.Day())
}

func TestValidateTimeSequence(t *testing.T) {
	filter := NewDefaultDataFilter()

	assert.NoError(t, filter.ValidateTimeSequence([]types.OHLCV{
		dayBar("2023-01-01"),
		dayBar("2023-01-02"),
	}))

	err := filter.ValidateTimeSequence([]types.OHLCV{
		dayBar("2023-01-02"),
		dayBar("2023-01-01"),
	})
	assert.Error(t, err)

	err = filter.ValidateTimeSequence([]types.OHLCV{
		dayBar("2023-01-01"),
		dayBar("2023-01-01"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestRemoveDuplicates_KeepsFirst(t *testing.T) {
	filter := NewDefaultDataFilter()

	first := dayBar("2023-01-01")
	first.Close = 111
	second := dayBar("2023-01-01")
	second.Close = 222

	out := filter.RemoveDuplicates([]types.OHLCV{first, second, dayBar("2023-01-02")})
	require.Len(t, out, 2)
	assert.Equal(t, 111.0, out[0].Close)
}

func TestMemoryCache_CopiesData(t *testing.T) {
	cache := NewMemoryCache()
	data := []types.OHLCV{dayBar("2023-01-01")}

	cache.Set("k", data)
	data[0].Close = 999

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 100.0, got[0].Close)

	got[0].Close = 888
	again, _ := cache.Get("k")
	assert.Equal(t, 100.0, again[0].Close)

	assert.Equal(t, 1, cache.Size())
	cache.Clear()
	assert.Zero(t, cache.Size())
}

func TestCachedProvider_LoadsOnce(t *testing.T) {
	path := writeTempCSV(t, `timestamp,open,high,low,close,volume
2023-01-02,100,110,95,105,1234
`)

	provider := NewCachedProvider(NewCSVProvider())

	first, err := provider.LoadData(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := provider.LoadData(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
