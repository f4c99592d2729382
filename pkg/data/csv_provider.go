package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// CSVProvider implements DataProvider for CSV files of daily bars.
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV data provider with the default format.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV data provider with a custom format.
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData reads bars from a CSV file. Rows that fail to parse are skipped
// with a warning; the result is sorted ascending by timestamp so unordered
// exports load cleanly.
func (p *CSVProvider) LoadData(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var bars []types.OHLCV

	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, p.format.MinColumns, len(record))
			continue
		}

		timestamp, err := p.parseTimestamp(record[p.format.TimestampCol])
		if err != nil {
			log.Printf("⚠️ Invalid timestamp '%s' at line %d, skipping: %v", record[p.format.TimestampCol], lineNum, err)
			continue
		}

		open, err := strconv.ParseFloat(record[p.format.OpenCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid open price '%s' at line %d, skipping: %v", record[p.format.OpenCol], lineNum, err)
			continue
		}

		high, err := strconv.ParseFloat(record[p.format.HighCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid high price '%s' at line %d, skipping: %v", record[p.format.HighCol], lineNum, err)
			continue
		}

		low, err := strconv.ParseFloat(record[p.format.LowCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid low price '%s' at line %d, skipping: %v", record[p.format.LowCol], lineNum, err)
			continue
		}

		close, err := strconv.ParseFloat(record[p.format.CloseCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid close price '%s' at line %d, skipping: %v", record[p.format.CloseCol], lineNum, err)
			continue
		}

		volume, err := strconv.ParseFloat(record[p.format.VolumeCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid volume '%s' at line %d, skipping: %v", record[p.format.VolumeCol], lineNum, err)
			continue
		}

		bars = append(bars, types.OHLCV{
			Timestamp: timestamp,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, nil
}

func (p *CSVProvider) parseTimestamp(field string) (time.Time, error) {
	var lastErr error
	for _, layout := range p.format.DateFormats {
		t, err := time.Parse(layout, field)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ValidateData checks loaded bars for the problems that break simulations:
// non-positive prices, inverted high/low, out-of-order or duplicate dates.
// The error names the first offending row.
func (p *CSVProvider) ValidateData(data []types.OHLCV) error {
	if len(data) == 0 {
		return fmt.Errorf("no data provided")
	}

	for i, candle := range data {
		if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 {
			return fmt.Errorf("invalid price data at %s (row %d): prices must be positive",
				candle.Timestamp.Format("2006-01-02"), i)
		}

		if candle.High < candle.Low {
			return fmt.Errorf("invalid price data at %s (row %d): high (%.4f) cannot be less than low (%.4f)",
				candle.Timestamp.Format("2006-01-02"), i, candle.High, candle.Low)
		}

		if i > 0 && !data[i-1].Timestamp.Before(candle.Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at %s (row %d): dates must be strictly increasing",
				candle.Timestamp.Format("2006-01-02"), i)
		}
	}

	return nil
}
