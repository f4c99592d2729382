package main

import (
	"flag"
	"fmt"
)

// DCAFlags holds all command line flags for the DCA backtest command
type DCAFlags struct {
	// Data selection
	DataFile *string
	Symbol   *string
	Interval *string
	Exchange *string
	DataRoot *string
	Start    *string
	End      *string

	// Strategy parameters
	MonthlyAmount *float64
	PurchaseDay   *int
	DipThreshold  *float64
	MinPurchase   *float64

	// Target month sweep
	SweepMonths *bool
	Workers     *int

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	JSONOutput  *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewDCAFlags creates and registers all command line flags
func NewDCAFlags() *DCAFlags {
	return &DCAFlags{
		// Data selection
		DataFile: flag.String("data", "", "Path to daily candle CSV (overrides -symbol lookup)"),
		Symbol:   flag.String("symbol", "BTCUSDT", "Trading symbol"),
		Interval: flag.String("interval", "D", "Data interval (daily candles expected)"),
		Exchange: flag.String("exchange", DefaultExchange, "Exchange (bybit, binance)"),
		DataRoot: flag.String("data-root", DefaultDataRoot, "Root directory of candle files"),
		Start:    flag.String("start", "", "Start date filter (YYYY-MM-DD)"),
		End:      flag.String("end", "", "End date filter (YYYY-MM-DD)"),

		// Strategy parameters
		MonthlyAmount: flag.Float64("monthly", DefaultMonthlyAmount, "Monthly budget in quote currency"),
		PurchaseDay:   flag.Int("day", DefaultPurchaseDay, "Target day of month for scheduled purchases (1-31)"),
		DipThreshold:  flag.Float64("dip-threshold", DefaultDipThreshold, "Intraday drop that counts as a dip, in percent (negative)"),
		MinPurchase:   flag.Float64("min-purchase", DefaultMinPurchase, "Minimum accrued cash before a dip buy fires"),

		// Target month sweep
		SweepMonths: flag.Bool("sweep-months", false, "Also run the target-month strategy for all 12 months"),
		Workers:     flag.Int("workers", 4, "Worker count for the target-month sweep"),

		// Output options
		OutputDir:   flag.String("output", "", "Output directory (default results/<SYMBOL>_<interval>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip file output, print to console only"),
		JSONOutput:  flag.Bool("json", false, "Also print results as JSON"),
		EnvFile:     flag.String("env", ".env", "Environment file to load"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateDCAFlags validates flag combinations before running
func ValidateDCAFlags(flags *DCAFlags) error {
	if *flags.MonthlyAmount <= 0 {
		return fmt.Errorf("monthly amount must be positive, got: %.2f", *flags.MonthlyAmount)
	}

	if *flags.PurchaseDay < 1 || *flags.PurchaseDay > 31 {
		return fmt.Errorf("purchase day must be between 1 and 31, got: %d", *flags.PurchaseDay)
	}

	if *flags.DipThreshold >= 0 {
		return fmt.Errorf("dip threshold must be negative, got: %.2f", *flags.DipThreshold)
	}

	if *flags.MinPurchase < 0 {
		return fmt.Errorf("minimum purchase must not be negative, got: %.2f", *flags.MinPurchase)
	}

	if *flags.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got: %d", *flags.Workers)
	}

	return nil
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  dca-backtest -symbol BTCUSDT -monthly 1000 -day 15")
	fmt.Println("  dca-backtest -data data/bybit/spot/BTCUSDT/D/candles.csv -dip-threshold -3")
	fmt.Println("  dca-backtest -symbol ETHUSDT -start 2020-01-01 -end 2023-12-31 -sweep-months")
	fmt.Println()
}
