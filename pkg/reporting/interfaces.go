package reporting

import (
	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
	"github.com/coinmetrics-lab/dca-backtest/internal/seasonal"
)

// Package reporting provides output generation for backtest and
// seasonal analysis results.

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	PrintBacktestSummary(result *backtest.Result)
	PrintComparison(cmp *backtest.Comparison)
	PrintSeasonality(stats []seasonal.SeasonalStat)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WritePurchasesCSV(result *backtest.Result, path string) error
	WriteComparisonXLSX(cmp *backtest.Comparison, path string) error
	WriteResultJSON(result *backtest.Result, path string) error
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle       int
	CurrencyStyle     int
	PercentStyle      int
	RedPercentStyle   int
	GreenPercentStyle int
	BaseStyle         int
	SummaryStyle      int
}
