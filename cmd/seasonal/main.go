package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinmetrics-lab/dca-backtest/internal/indicators"
	"github.com/coinmetrics-lab/dca-backtest/internal/seasonal"
	"github.com/coinmetrics-lab/dca-backtest/internal/series"
	datamanager "github.com/coinmetrics-lab/dca-backtest/pkg/data"
	"github.com/coinmetrics-lab/dca-backtest/pkg/reporting"
)

const (
	AppName    = "Seasonal Analyzer"
	AppVersion = "1.1.0"

	DefaultWorstCount = 10
	DefaultDataRoot   = "data"
	DefaultExchange   = "bybit"
)

func main() {
	flags := NewSeasonalFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidateSeasonalFlags(flags); err != nil {
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

	console := reporting.NewDefaultConsoleReporter()

	monthly := seasonal.MonthlyBreakdown(s)
	worstReturns := seasonal.WorstReturns(monthly, *flags.WorstCount)
	deepestDrawdowns := seasonal.DeepestDrawdowns(monthly, *flags.WorstCount)
	console.PrintWorstMonths(worstReturns, deepestDrawdowns)

	stats := seasonal.MonthlySeasonality(s)
	console.PrintSeasonality(stats)

	if *flags.FocusMonth > 0 {
		profile := seasonal.ProfileMonth(s, time.Month(*flags.FocusMonth))
		console.PrintMonthProfile(profile)
	}

	printTrendContext(s)

	if !*flags.ConsoleOnly {
		if err := writeReports(flags, monthly, stats); err != nil {
			log.Fatalf("❌ Report error: %v", err)
		}
	}
}

// printTrendContext prints where the latest close sits against trend and
// volatility measures.
func printTrendContext(s *series.PriceSeries) {
	bars := s.Bars()
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	fmt.Println("📊 CURRENT TREND CONTEXT")

	last := s.LastClose()
	if ma7, err := indicators.NewSMA(7).Calculate(bars); err == nil {
		fmt.Printf("  MA7:  $%.4f (close %+.2f%%)\n", ma7, (last/ma7-1)*100)
	}
	if ma30, err := indicators.NewSMA(30).Calculate(bars); err == nil {
		fmt.Printf("  MA30: $%.4f (close %+.2f%%)\n", ma30, (last/ma30-1)*100)
	}
	if rsi, err := indicators.NewRSI(14).Calculate(closes); err == nil {
		fmt.Printf("  RSI14: %.1f\n", rsi)
	}
	if atr, err := indicators.NewATR(14).Calculate(bars); err == nil {
		fmt.Printf("  ATR14: $%.4f (%.2f%% of close)\n", atr, atr/last*100)
	}
	if _, _, _, bbPct, err := indicators.NewBollingerBands(20, 2.0).Calculate(closes); err == nil {
		fmt.Printf("  BB%%:   %.1f\n", bbPct)
	}
	if macd, signal, hist, err := indicators.NewMACD(12, 26, 9).Calculate(closes); err == nil {
		fmt.Printf("  MACD:  %.4f signal %.4f hist %+.4f\n", macd, signal, hist)
	}
	fmt.Println()
}

func printHeader() {
	fmt.Printf("🗓️  %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Monthly seasonality and drawdown analysis\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))
	fmt.Println("EXAMPLES:")
	fmt.Println("  seasonal -symbol BTCUSDT")
	fmt.Println("  seasonal -data data/bybit/spot/BTCUSDT/D/candles.csv -focus-month 9")
	fmt.Println()
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func loadSeries(flags *SeasonalFlags) (*series.PriceSeries, error) {
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

	return series.New(candles)
}

func writeReports(flags *SeasonalFlags, monthly []seasonal.MonthStats, stats []seasonal.SeasonalStat) error {
	outDir := *flags.OutputDir
	if outDir == "" {
		outDir = reporting.DefaultOutputDir(*flags.Symbol, *flags.Interval)
	}

	monthlyPath := filepath.Join(outDir, "monthly_stats.csv")
	if err := reporting.WriteMonthlyStatsCSV(monthly, monthlyPath); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote %s\n", monthlyPath)

	seasonalityPath := filepath.Join(outDir, "seasonality.csv")
	if err := reporting.WriteSeasonalityCSV(stats, seasonalityPath); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote %s\n", seasonalityPath)

	return nil
}
