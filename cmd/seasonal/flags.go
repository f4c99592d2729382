package main

import (
	"flag"
	"fmt"
)

// SeasonalFlags holds all command line flags for the seasonal command
type SeasonalFlags struct {
	// Data selection
	DataFile *string
	Symbol   *string
	Interval *string
	Exchange *string
	DataRoot *string

	// Analysis options
	FocusMonth *int
	WorstCount *int

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewSeasonalFlags creates and registers all command line flags
func NewSeasonalFlags() *SeasonalFlags {
	return &SeasonalFlags{
		// Data selection
		DataFile: flag.String("data", "", "Path to daily candle CSV (overrides -symbol lookup)"),
		Symbol:   flag.String("symbol", "BTCUSDT", "Trading symbol"),
		Interval: flag.String("interval", "D", "Data interval (daily candles expected)"),
		Exchange: flag.String("exchange", DefaultExchange, "Exchange (bybit, binance)"),
		DataRoot: flag.String("data-root", DefaultDataRoot, "Root directory of candle files"),

		// Analysis options
		FocusMonth: flag.Int("focus-month", 0, "Calendar month to profile in depth (1-12, 0 = skip)"),
		WorstCount: flag.Int("worst", DefaultWorstCount, "How many worst months to show"),

		// Output options
		OutputDir:   flag.String("output", "", "Output directory (default results/<SYMBOL>_<interval>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip file output, print to console only"),
		EnvFile:     flag.String("env", ".env", "Environment file to load"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateSeasonalFlags validates flag combinations before running
func ValidateSeasonalFlags(flags *SeasonalFlags) error {
	if *flags.FocusMonth < 0 || *flags.FocusMonth > 12 {
		return fmt.Errorf("focus month must be between 1 and 12, got: %d", *flags.FocusMonth)
	}

	if *flags.WorstCount < 1 {
		return fmt.Errorf("worst count must be at least 1, got: %d", *flags.WorstCount)
	}

	return nil
}
