package data

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileLocator finds candle files under the conventional layout
// data/{exchange}/{category}/{symbol}/{interval}/candles.csv.
type DefaultFileLocator struct{}

func NewDefaultFileLocator() *DefaultFileLocator {
	return &DefaultFileLocator{}
}

// FindDataFile returns the first existing candle file for the exchange and
// symbol, or "" when none exists.
func (f *DefaultFileLocator) FindDataFile(dataRoot, exchange, symbol, interval string) string {
	symbol = strings.ToUpper(symbol)
	if interval == "" {
		interval = "D"
	}

	var categories []string
	switch strings.ToLower(exchange) {
	case "bybit":
		categories = []string{"spot", "linear", "inverse"}
	case "binance":
		categories = []string{"spot", "futures"}
	default:
		categories = []string{"spot", "futures", "linear", "inverse"}
	}

	var attemptedPaths []string
	for _, category := range categories {
		path := filepath.Join(dataRoot, exchange, category, symbol, interval, "candles.csv")
		attemptedPaths = append(attemptedPaths, path)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	log.Printf("⚠️ No data file found for %s %s %s in:", exchange, symbol, interval)
	for _, path := range attemptedPaths {
		log.Printf("   - %s", path)
	}
	return ""
}
