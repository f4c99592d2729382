package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
	"github.com/coinmetrics-lab/dca-backtest/internal/seasonal"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// PrintBacktestSummary prints a single strategy result to console
func (r *DefaultConsoleReporter) PrintBacktestSummary(result *backtest.Result) {
	if result == nil {
		fmt.Println("⚠️  No purchases were made, nothing to report")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(result.Strategy)
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💰 Total Invested", fmt.Sprintf("$%.2f", result.TotalInvested)},
		{"📦 Units Acquired", fmt.Sprintf("%.6f", result.TotalUnits)},
		{"⚖️  Average Cost", fmt.Sprintf("$%.4f", result.AverageCost)},
		{"🏷️  Final Price", fmt.Sprintf("$%.4f", result.FinalPrice)},
		{"💎 Holdings Value", fmt.Sprintf("$%.2f", result.HoldingsValue)},
		{"📈 Total Return", fmt.Sprintf("$%.2f (%.2f%%)", result.TotalReturn, result.ReturnPct)},
		{"🔄 Purchases", fmt.Sprintf("%d", result.PurchaseCount())},
	})

	if result.LeftoverCash > 0 {
		t.AppendRow(table.Row{"💵 Leftover Cash", fmt.Sprintf("$%.2f", result.LeftoverCash)})
	}
	if result.DipDays > 0 {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"📉 Dip Days", fmt.Sprintf("%d", result.DipDays)},
			{"😞 Missed Dips", fmt.Sprintf("%d", result.MissedOpportunities)},
			{"🎯 Capital Used", fmt.Sprintf("%.1f%%", result.CapitalUtilizationPct())},
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 22, WidthMax: 30, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// PrintComparison prints the strategy comparison table and verdict
func (r *DefaultConsoleReporter) PrintComparison(cmp *backtest.Comparison) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("STRATEGY COMPARISON")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Metric", scheduledLabel(cmp), dipLabel(cmp), "Winner"})
	for _, row := range cmp.Rows {
		t.AppendRow(table.Row{
			row.Name,
			formatMetric(row.Name, row.Scheduled, row.ScheduledValid),
			formatMetric(row.Name, row.Dip, row.DipValid),
			winnerLabel(row.Winner),
		})
	}

	t.AppendSeparator()
	scoreLine := make(table.Row, 0, 4)
	scoreLine = append(scoreLine, "Score")
	scoreLine = append(scoreLine, fmt.Sprintf("%d", cmp.Scores[backtest.StrategySimpleDCA]))
	scoreLine = append(scoreLine, fmt.Sprintf("%d", cmp.Scores[backtest.StrategyBuyTheDip]))
	scoreLine = append(scoreLine, winnerLabel(cmp.Winner))
	t.AppendRow(scoreLine)

	t.Render()

	if cmp.Winner == "" {
		fmt.Println("🤝 Verdict: dead heat, keep it simple")
	} else {
		fmt.Printf("🏆 Verdict: %s comes out ahead\n", cmp.Winner)
	}
	fmt.Println()
}

// PrintSeasonality prints the cross-year monthly seasonality table
func (r *DefaultConsoleReporter) PrintSeasonality(stats []seasonal.SeasonalStat) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MONTHLY SEASONALITY")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Month", "Samples", "Win Rate", "Mean Return", "Median Return"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Month.String(),
			s.Samples,
			fmt.Sprintf("%.1f%%", s.WinRatePct),
			fmt.Sprintf("%.2f%%", s.MeanReturnPct),
			fmt.Sprintf("%.2f%%", s.MedianReturnPct),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}

// PrintWorstMonths prints the months with the worst returns and deepest drawdowns
func (r *DefaultConsoleReporter) PrintWorstMonths(byReturn, byDrawdown []seasonal.MonthStats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("WORST MONTHS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Month", "Return", "Max Drawdown", "Worst Day"})
	for _, m := range byReturn {
		t.AppendRow(table.Row{
			m.Key.String(),
			fmt.Sprintf("%.2f%%", m.ReturnPct),
			fmt.Sprintf("%.2f%%", m.MaxDrawdownPct),
			fmt.Sprintf("%.2f%%", m.MaxDailyDropPct),
		})
	}

	t.AppendSeparator()
	for _, m := range byDrawdown {
		t.AppendRow(table.Row{
			m.Key.String(),
			fmt.Sprintf("%.2f%%", m.ReturnPct),
			fmt.Sprintf("%.2f%%", m.MaxDrawdownPct),
			fmt.Sprintf("%.2f%%", m.MaxDailyDropPct),
		})
	}

	t.Render()
	fmt.Println()
}

// PrintMonthProfile prints the focus-month deep dive
func (r *DefaultConsoleReporter) PrintMonthProfile(p *seasonal.MonthProfile) {
	if p == nil {
		fmt.Println("⚠️  No bars fall in the requested month")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s PROFILE", p.Month.String()))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Mean Daily Return", fmt.Sprintf("%.3f%% (rest of year %.3f%%)", p.FocusMeanReturnPct, p.RestMeanReturnPct)},
		{"🌡️  Daily Volatility", fmt.Sprintf("%.3f%% (rest of year %.3f%%)", p.FocusVolatilityPct, p.RestVolatilityPct)},
		{"📉 Worst Day of Month", fmt.Sprintf("day %d, %.3f%% avg over %d samples", p.WorstDay.Day, p.WorstDay.MeanReturnPct, p.WorstDay.Samples)},
	})
	t.Render()

	y := table.NewWriter()
	y.SetOutputMirror(os.Stdout)
	y.SetStyle(table.StyleRounded)
	y.AppendHeader(table.Row{"Year", "Return", "Bars"})
	for _, yr := range p.YearlyReturns {
		y.AppendRow(table.Row{yr.Year, fmt.Sprintf("%.2f%%", yr.ReturnPct), yr.Bars})
	}
	y.Render()
	fmt.Println()
}

// PrintSweep prints the target-month sweep result
func (r *DefaultConsoleReporter) PrintSweep(results []backtest.SweepResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TARGET MONTH SWEEP")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Month", "Invested", "Units", "Return", "Runtime"})
	for _, sr := range results {
		if sr.Err != nil {
			t.AppendRow(table.Row{sr.Month.String(), "-", "-", fmt.Sprintf("error: %v", sr.Err), sr.Duration.String()})
			continue
		}
		if sr.Result == nil {
			t.AppendRow(table.Row{sr.Month.String(), "-", "-", "no purchases", sr.Duration.String()})
			continue
		}
		t.AppendRow(table.Row{
			sr.Month.String(),
			fmt.Sprintf("$%.2f", sr.Result.TotalInvested),
			fmt.Sprintf("%.6f", sr.Result.TotalUnits),
			fmt.Sprintf("%.2f%%", sr.Result.ReturnPct),
			sr.Duration.String(),
		})
	}

	t.Render()
	fmt.Println()
}

func scheduledLabel(cmp *backtest.Comparison) string {
	if cmp.Scheduled != nil {
		return cmp.Scheduled.Strategy
	}
	return backtest.StrategySimpleDCA
}

func dipLabel(cmp *backtest.Comparison) string {
	if cmp.Dip != nil {
		return cmp.Dip.Strategy
	}
	return backtest.StrategyBuyTheDip
}

func formatMetric(name string, value float64, valid bool) string {
	if !valid {
		return "N/A"
	}
	switch name {
	case backtest.MetricUnits:
		return fmt.Sprintf("%.6f", value)
	case backtest.MetricAverageCost:
		return fmt.Sprintf("$%.4f", value)
	default:
		return fmt.Sprintf("%.2f%%", value)
	}
}

func winnerLabel(winner string) string {
	if winner == "" {
		return "tie"
	}
	return winner
}
