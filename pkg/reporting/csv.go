package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
	"github.com/coinmetrics-lab/dca-backtest/internal/seasonal"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WritePurchasesCSV writes the purchase log of one strategy run
func (r *DefaultCSVReporter) WritePurchasesCSV(result *backtest.Result, path string) error {
	if result == nil {
		return fmt.Errorf("no result to write")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// An .xlsx destination gets the workbook writer instead.
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteResultXLSX(result, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Date",
		"Price",
		"Cash_Spent",
		"Units",
		"Cumulative_Cash",
		"Cumulative_Units",
		"Average_Cost",
	}); err != nil {
		return err
	}

	for _, p := range result.Purchases {
		row := []string{
			p.Date.Format("2006-01-02"),
			fmt.Sprintf("%.8f", p.Price),
			fmt.Sprintf("%.2f", p.CashSpent),
			fmt.Sprintf("%.8f", p.UnitsAcquired),
			fmt.Sprintf("%.2f", p.CumulativeCash),
			fmt.Sprintf("%.8f", p.CumulativeUnits),
			fmt.Sprintf("%.8f", p.AverageCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: strategy=%s; invested=$%.2f; units=%.8f; return=%.2f%%; purchases=%d",
		result.Strategy, result.TotalInvested, result.TotalUnits, result.ReturnPct, result.PurchaseCount())
	summaryRow := make([]string, 7)
	summaryRow[6] = summary
	return w.Write(summaryRow)
}

// WriteMonthlyStatsCSV writes the per-month breakdown
func (r *DefaultCSVReporter) WriteMonthlyStatsCSV(stats []seasonal.MonthStats, path string) error {
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

	if err := w.Write([]string{
		"Month",
		"Bars",
		"Open",
		"Close",
		"Return_%",
		"Max_Drawdown_%",
		"Max_Daily_Drop_%",
	}); err != nil {
		return err
	}

	for _, m := range stats {
		row := []string{
			m.Key.String(),
			strconv.Itoa(m.Bars),
			fmt.Sprintf("%.8f", m.Open),
			fmt.Sprintf("%.8f", m.Close),
			fmt.Sprintf("%.4f", m.ReturnPct),
			fmt.Sprintf("%.4f", m.MaxDrawdownPct),
			fmt.Sprintf("%.4f", m.MaxDailyDropPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// WriteSeasonalityCSV writes the cross-year seasonality pivot
func (r *DefaultCSVReporter) WriteSeasonalityCSV(stats []seasonal.SeasonalStat, path string) error {
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

	if err := w.Write([]string{
		"Month",
		"Samples",
		"Win_Rate_%",
		"Mean_Return_%",
		"Median_Return_%",
	}); err != nil {
		return err
	}

	for _, s := range stats {
		row := []string{
			s.Month.String(),
			strconv.Itoa(s.Samples),
			fmt.Sprintf("%.2f", s.WinRatePct),
			fmt.Sprintf("%.4f", s.MeanReturnPct),
			fmt.Sprintf("%.4f", s.MedianReturnPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Package-level convenience functions

func WritePurchasesCSV(result *backtest.Result, path string) error {
	return NewDefaultCSVReporter().WritePurchasesCSV(result, path)
}

func WriteMonthlyStatsCSV(stats []seasonal.MonthStats, path string) error {
	return NewDefaultCSVReporter().WriteMonthlyStatsCSV(stats, path)
}

func WriteSeasonalityCSV(stats []seasonal.SeasonalStat, path string) error {
	return NewDefaultCSVReporter().WriteSeasonalityCSV(stats, path)
}
