package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteResultXLSX writes one strategy run to a workbook with a summary
// sheet and the full purchase log.
func (r *DefaultExcelReporter) WriteResultXLSX(result *backtest.Result, path string) error {
	if result == nil {
		return fmt.Errorf("no result to write")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const purchasesSheet = "Purchases"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(purchasesSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, result, styles); err != nil {
		return err
	}
	if err := r.writePurchasesSheet(fx, purchasesSheet, result, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// WriteComparisonXLSX writes both strategy runs plus the metric table
func (r *DefaultExcelReporter) WriteComparisonXLSX(cmp *backtest.Comparison, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const comparisonSheet = "Comparison"

	fx.SetSheetName(fx.GetSheetName(0), comparisonSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeComparisonSheet(fx, comparisonSheet, cmp, styles); err != nil {
		return err
	}

	if cmp.Scheduled != nil {
		fx.NewSheet("Simple DCA")
		if err := r.writePurchasesSheet(fx, "Simple DCA", cmp.Scheduled, styles); err != nil {
			return err
		}
	}
	if cmp.Dip != nil {
		fx.NewSheet("Buy the Dip")
		if err := r.writePurchasesSheet(fx, "Buy the Dip", cmp.Dip, styles); err != nil {
			return err
		}
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 177, // $#,##0.00
		Font:   &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font:   &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.RedPercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font:   &excelize.Font{Size: 10, Family: "Calibri", Color: "CC0000"},
	})
	if err != nil {
		return styles, err
	}

	styles.GreenPercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font:   &excelize.Font{Size: 10, Family: "Calibri", Color: "006600"},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Family: "Calibri"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F0F0F0"},
			Pattern: 1,
		},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, result *backtest.Result, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 18)

	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Strategy", result.Strategy, styles.BaseStyle},
		{"Total Invested", result.TotalInvested, styles.CurrencyStyle},
		{"Units Acquired", result.TotalUnits, styles.BaseStyle},
		{"Average Cost", result.AverageCost, styles.CurrencyStyle},
		{"Final Price", result.FinalPrice, styles.CurrencyStyle},
		{"Holdings Value", result.HoldingsValue, styles.CurrencyStyle},
		{"Leftover Cash", result.LeftoverCash, styles.CurrencyStyle},
		{"Total Return", result.TotalReturn, styles.CurrencyStyle},
		{"Return %", result.ReturnPct, percentStyle(result.ReturnPct, styles)},
		{"Purchases", result.PurchaseCount(), styles.BaseStyle},
	}
	if result.DipDays > 0 {
		rows = append(rows,
			struct {
				label string
				value interface{}
				style int
			}{"Dip Days", result.DipDays, styles.BaseStyle},
			struct {
				label string
				value interface{}
				style int
			}{"Missed Opportunities", result.MissedOpportunities, styles.BaseStyle},
			struct {
				label string
				value interface{}
				style int
			}{"Capital Utilization %", result.CapitalUtilizationPct(), styles.PercentStyle},
		)
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		fx.SetCellValue(sheet, labelCell, row.label)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.SummaryStyle)
		fx.SetCellValue(sheet, valueCell, row.value)
		fx.SetCellStyle(sheet, valueCell, valueCell, row.style)
	}

	return nil
}

func (r *DefaultExcelReporter) writePurchasesSheet(fx *excelize.File, sheet string, result *backtest.Result, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 14)
	fx.SetColWidth(sheet, "B", "G", 16)

	headers := []string{"Date", "Price", "Cash Spent", "Units", "Cumulative Cash", "Cumulative Units", "Average Cost"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, p := range result.Purchases {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Date.Format("2006-01-02"))
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Price)
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.CashSpent)
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.UnitsAcquired)
		fx.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.CumulativeCash)
		fx.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.CumulativeUnits)
		fx.SetCellValue(sheet, fmt.Sprintf("G%d", row), p.AverageCost)

		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.BaseStyle)
		fx.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("C%d", row), styles.CurrencyStyle)
		fx.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("F%d", row), styles.BaseStyle)
		fx.SetCellStyle(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), styles.CurrencyStyle)
	}

	return nil
}

func (r *DefaultExcelReporter) writeComparisonSheet(fx *excelize.File, sheet string, cmp *backtest.Comparison, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "D", 18)

	headers := []string{"Metric", "Simple DCA", "Buy the Dip", "Winner"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, mr := range cmp.Rows {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), mr.Name)
		if mr.ScheduledValid {
			fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), mr.Scheduled)
		} else {
			fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), "N/A")
		}
		if mr.DipValid {
			fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), mr.Dip)
		} else {
			fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), "N/A")
		}
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), winnerLabel(mr.Winner))
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.BaseStyle)
	}

	scoreRow := len(cmp.Rows) + 2
	fx.SetCellValue(sheet, fmt.Sprintf("A%d", scoreRow), "Score")
	fx.SetCellValue(sheet, fmt.Sprintf("B%d", scoreRow), cmp.Scores[backtest.StrategySimpleDCA])
	fx.SetCellValue(sheet, fmt.Sprintf("C%d", scoreRow), cmp.Scores[backtest.StrategyBuyTheDip])
	fx.SetCellValue(sheet, fmt.Sprintf("D%d", scoreRow), winnerLabel(cmp.Winner))
	fx.SetCellStyle(sheet, fmt.Sprintf("A%d", scoreRow), fmt.Sprintf("D%d", scoreRow), styles.SummaryStyle)

	return nil
}

func percentStyle(value float64, styles ExcelStyles) int {
	if value < 0 {
		return styles.RedPercentStyle
	}
	return styles.GreenPercentStyle
}

// Package-level convenience functions

func WriteResultXLSX(result *backtest.Result, path string) error {
	return NewDefaultExcelReporter().WriteResultXLSX(result, path)
}

func WriteComparisonXLSX(cmp *backtest.Comparison, path string) error {
	return NewDefaultExcelReporter().WriteComparisonXLSX(cmp, path)
}
