package data

import (
	"time"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// DataProvider loads historical daily bars from some source.
type DataProvider interface {
	// LoadData loads bars from the specified source, sorted ascending by
	// timestamp regardless of the order on disk.
	LoadData(source string) ([]types.OHLCV, error)

	// ValidateData checks the integrity of loaded bars.
	ValidateData(data []types.OHLCV) error

	// GetName returns the name of the provider.
	GetName() string
}

// DataCache caches loaded bar slices by source key.
type DataCache interface {
	Get(key string) ([]types.OHLCV, bool)
	Set(key string, data []types.OHLCV)
	Clear()
	Size() int
}

// DataFilter narrows and sanitizes bar slices.
type DataFilter interface {
	FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV
	ValidateTimeSequence(data []types.OHLCV) error
}

// CSVColumnMapping describes where each field lives in a CSV row.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormats  []string // tried in order
}

// Known CSV layouts. Exchange exports carry a full timestamp; hand-curated
// daily files often carry a bare date.
var (
	DefaultCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    5,
		MinColumns:   6,
		DateFormats:  []string{"2006-01-02 15:04:05", "2006-01-02"},
	}

	DailyCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    5,
		MinColumns:   6,
		DateFormats:  []string{"2006-01-02"},
	}
)

// FileLocator finds bar files under the conventional data layout.
type FileLocator interface {
	FindDataFile(dataRoot, exchange, symbol, interval string) string
}
