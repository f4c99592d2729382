package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVProvider_LoadData(t *testing.T) {
	path := writeTempCSV(t, `timestamp,open,high,low,close,volume
2023-01-02 00:00:00,100,110,95,105,1234
2023-01-03 00:00:00,105,112,101,108,2345
`)

	provider := NewCSVProvider()
	candles, err := provider.LoadData(path)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 108.0, candles[1].Close)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), candles[0].Timestamp)
}

func TestCSVProvider_BareDateFormat(t *testing.T) {
	path := writeTempCSV(t, `timestamp,open,high,low,close,volume
2023-01-02,100,110,95,105,1234
`)

	provider := NewCSVProvider()
	candles, err := provider.LoadData(path)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), candles[0].Timestamp)
}

func TestCSVProvider_SortsOnLoad(t *testing.T) {
	path := writeTempCSV(t, `timestamp,open,high,low,close,volume
2023-01-03,105,112,101,108,2345
2023-01-02,100,110,95,105,1234
`)

	provider := NewCSVProvider()
	candles, err := provider.LoadData(path)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.True(t, candles[0].Timestamp.Before(candles[1].Timestamp))
}

func TestCSVProvider_SkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, `timestamp,open,high,low,close,volume
2023-01-02,100,110,95,105,1234
not-a-date,1,2,3,4,5
2023-01-04,108,115,107,112,3456
`)

	provider := NewCSVProvider()
	candles, err := provider.LoadData(path)
	require.NoError(t, err)
	assert.Len(t, candles, 2)
}

func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider()
	_, err := provider.LoadData(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCSVProvider_ValidateData(t *testing.T) {
	provider := NewCSVProvider()

	good := []types.OHLCV{
		{Timestamp: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 110, Low: 95, Close: 105},
	}
	assert.NoError(t, provider.ValidateData(good))

	bad := []types.OHLCV{
		{Timestamp: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 110, Low: 95, Close: -1},
	}
	err := provider.ValidateData(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2023-01-02")
}
