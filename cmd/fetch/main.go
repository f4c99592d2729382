package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinmetrics-lab/dca-backtest/internal/exchange/bybit"
	"github.com/coinmetrics-lab/dca-backtest/internal/monitoring"
	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

const (
	AppName    = "Candle Fetcher"
	AppVersion = "1.0.1"

	DefaultDataRoot = "data"
)

func main() {
	var (
		symbol      = flag.String("symbol", "BTCUSDT", "Trading symbol (e.g. BTCUSDT)")
		interval    = flag.String("interval", "D", "Kline interval (60, 240, D, W, M)")
		category    = flag.String("category", "spot", "Market category (spot, linear, inverse)")
		startDate   = flag.String("start", "", "Start date (YYYY-MM-DD, default 5 years ago)")
		endDate     = flag.String("end", "", "End date (YYYY-MM-DD, default today)")
		dataRoot    = flag.String("data-root", DefaultDataRoot, "Root directory for candle files")
		output      = flag.String("output", "", "Explicit output file path")
		metricsAddr = flag.String("metrics-addr", "", "Address for Prometheus metrics endpoint (e.g. :9090)")
		testnet     = flag.Bool("testnet", false, "Use the Bybit testnet")
		envFile     = flag.String("env", ".env", "Environment file to load")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	fmt.Printf("📡 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *envFile, err)
	}

	if *metricsAddr != "" {
		startMetricsServer(*metricsAddr)
	}

	start, end, err := resolveDateRange(*startDate, *endDate)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	sym := strings.ToUpper(strings.TrimSpace(*symbol))
	cat := strings.ToLower(strings.TrimSpace(*category))

	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   *testnet,
	})
	fmt.Printf("🔧 Environment: %s\n", client.GetEnvironment())
	fmt.Printf("📥 Downloading %s %s (%s) %s → %s\n\n",
		sym, *interval, cat,
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	fetcher := bybit.NewHistoryFetcher(client)
	fetcher.OnPage = func(count int) {
		monitoring.RecordRequest(sym, *interval)
		monitoring.RecordCandles(sym, *interval, count)
	}

	fetchStart := time.Now()
	candles, err := fetcher.FetchRange(context.Background(), cat, sym, bybit.KlineInterval(*interval), start, end)
	if err != nil {
		monitoring.RecordError("fetch")
		log.Fatalf("❌ Download error: %v", err)
	}
	monitoring.ObserveFetchDuration(sym, time.Since(fetchStart).Seconds())

	if len(candles) == 0 {
		log.Fatalf("❌ No candles returned for %s %s", sym, *interval)
	}
	monitoring.UpdateLatestClose(sym, candles[len(candles)-1].Close)

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(*dataRoot, "bybit", cat, sym, *interval, "candles.csv")
	}
	if err := writeCandlesCSV(candles, outPath); err != nil {
		monitoring.RecordError("write")
		log.Fatalf("❌ Write error: %v", err)
	}

	fmt.Printf("✅ Wrote %d candles to %s (%s → %s)\n",
		len(candles), outPath,
		candles[0].Timestamp.Format("2006-01-02"),
		candles[len(candles)-1].Timestamp.Format("2006-01-02"))
}

func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		log.Printf("📈 Metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}

func resolveDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-5, 0, 0)

	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date format: %v", err)
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date format: %v", err)
		}
		end = parsed
	}
	if !start.Before(end) {
		return start, end, fmt.Errorf("start date must be before end date")
	}

	return start, end, nil
}

func writeCandlesCSV(candles []types.OHLCV, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	for _, c := range candles {
		row := []string{
			c.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%g", c.Open),
			fmt.Sprintf("%g", c.High),
			fmt.Sprintf("%g", c.Low),
			fmt.Sprintf("%g", c.Close),
			fmt.Sprintf("%g", c.Volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
