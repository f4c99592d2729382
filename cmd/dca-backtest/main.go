package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
	datamanager "github.com/coinmetrics-lab/dca-backtest/pkg/data"
	"github.com/coinmetrics-lab/dca-backtest/pkg/reporting"
)

const (
	AppName    = "DCA Backtest"
	AppVersion = "1.2.0"

	DefaultMonthlyAmount = 1000.0
	DefaultPurchaseDay   = 15
	DefaultDipThreshold  = -3.0
	DefaultMinPurchase   = 100.0
	DefaultDataRoot      = "data"
	DefaultExchange      = "bybit"
)

func main() {
	flags := NewDCAFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidateDCAFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	s, err := loadSeries(flags)
	if err != nil {
		log.Fatalf("❌ Data error: %v", err)
	}

	fmt.Printf("📅 Loaded %d daily bars: %s → %s\n\n",
		s.Len(),
		s.FirstBar().Timestamp.Format("2006-01-02"),
		s.LastBar().Timestamp.Format("2006-01-02"))

	cmp, err := backtest.Compare(s, *flags.MonthlyAmount, *flags.PurchaseDay, *flags.DipThreshold, *flags.MinPurchase)
	if err != nil {
		log.Fatalf("❌ Backtest error: %v", err)
	}

	console := reporting.NewDefaultConsoleReporter()
	console.PrintBacktestSummary(cmp.Scheduled)
	console.PrintBacktestSummary(cmp.Dip)
	console.PrintComparison(cmp)

	if *flags.JSONOutput {
		formatter := reporting.NewDefaultJSONFormatter()
		formatter.PrintResult(cmp.Scheduled)
		if cmp.Dip != nil {
			formatter.PrintResult(cmp.Dip)
		}
	}

	if *flags.SweepMonths {
		results := backtest.SweepTargetMonths(s, *flags.MonthlyAmount, *flags.Workers)
		console.PrintSweep(results)
	}

	if !*flags.ConsoleOnly {
		if err := writeReports(flags, cmp); err != nil {
			log.Fatalf("❌ Report error: %v", err)
		}
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - DCA vs Buy-the-Dip Backtesting\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))
	PrintUsageExamples()
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// loadSeries resolves the data file, loads and filters the candles, and
// builds the validated series.
func loadSeries(flags *DCAFlags) (*series.PriceSeries, error) {
	dataFile := *flags.DataFile
	if dataFile == "" {
		locator := datamanager.NewDefaultFileLocator()
		dataFile = locator.FindDataFile(*flags.DataRoot, *flags.Exchange, *flags.Symbol, *flags.Interval)
		if dataFile == "" {
			return nil, fmt.Errorf("no candle file found for %s %s under %s", *flags.Symbol, *flags.Interval, *flags.DataRoot)
		}
	}

	provider := datamanager.NewCachedProvider(datamanager.NewCSVProvider())
	candles, err := provider.LoadData(dataFile)
	if err != nil {
		return nil, err
	}

	filter := datamanager.NewDefaultDataFilter()
	candles = filter.RemoveDuplicates(candles)

	start, end, err := parseDateRange(*flags.Start, *flags.End)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() || !end.IsZero() {
		if end.IsZero() {
			end = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		candles = filter.FilterByDateRange(candles, start, end)
	}

	return series.New(candles)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
	}
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
		// Make the end date inclusive of its whole day.
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, fmt.Errorf("end date %s is before start date %s", endStr, startStr)
	}

	return start, end, nil
}

func writeReports(flags *DCAFlags, cmp *backtest.Comparison) error {
	outDir := *flags.OutputDir
	if outDir == "" {
		outDir = reporting.DefaultOutputDir(*flags.Symbol, *flags.Interval)
	}

	if cmp.Scheduled != nil {
		path := filepath.Join(outDir, "scheduled_purchases.csv")
		if err := reporting.WritePurchasesCSV(cmp.Scheduled, path); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %s\n", path)
	}
	if cmp.Dip != nil {
		path := filepath.Join(outDir, "dip_purchases.csv")
		if err := reporting.WritePurchasesCSV(cmp.Dip, path); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %s\n", path)
	}

	xlsxPath := filepath.Join(outDir, "comparison.xlsx")
	if err := reporting.WriteComparisonXLSX(cmp, xlsxPath); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote %s\n", xlsxPath)

	if cmp.Scheduled != nil {
		jsonPath := filepath.Join(outDir, "scheduled_result.json")
		if err := reporting.WriteResultJSON(cmp.Scheduled, jsonPath); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %s\n", jsonPath)
	}

	return nil
}
