package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coinmetrics-lab/dca-backtest/internal/backtest"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// resultJSON is the flat on-disk shape of a strategy run
type resultJSON struct {
	Strategy            string         `json:"strategy"`
	TotalInvested       float64        `json:"total_invested"`
	TotalUnits          float64        `json:"total_units"`
	AverageCost         float64        `json:"average_cost"`
	FinalPrice          float64        `json:"final_price"`
	HoldingsValue       float64        `json:"holdings_value"`
	LeftoverCash        float64        `json:"leftover_cash"`
	TotalReturn         float64        `json:"total_return"`
	ReturnPct           float64        `json:"return_pct"`
	Purchases           int            `json:"purchases"`
	DipDays             int            `json:"dip_days,omitempty"`
	MissedOpportunities int            `json:"missed_opportunities,omitempty"`
	PurchaseLog         []purchaseJSON `json:"purchase_log,omitempty"`
}

type purchaseJSON struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	CashSpent   float64 `json:"cash_spent"`
	Units       float64 `json:"units"`
	AverageCost float64 `json:"average_cost"`
}

// FormatResult formats a strategy run as indented JSON bytes
func (f *DefaultJSONFormatter) FormatResult(result *backtest.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	out := resultJSON{
		Strategy:            result.Strategy,
		TotalInvested:       result.TotalInvested,
		TotalUnits:          result.TotalUnits,
		AverageCost:         result.AverageCost,
		FinalPrice:          result.FinalPrice,
		HoldingsValue:       result.HoldingsValue,
		LeftoverCash:        result.LeftoverCash,
		TotalReturn:         result.TotalReturn,
		ReturnPct:           result.ReturnPct,
		Purchases:           result.PurchaseCount(),
		DipDays:             result.DipDays,
		MissedOpportunities: result.MissedOpportunities,
	}
	for _, p := range result.Purchases {
		out.PurchaseLog = append(out.PurchaseLog, purchaseJSON{
			Date:        p.Date.Format("2006-01-02"),
			Price:       p.Price,
			CashSpent:   p.CashSpent,
			Units:       p.UnitsAcquired,
			AverageCost: p.AverageCost,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

// PrintResult prints a strategy run as JSON to console
func (f *DefaultJSONFormatter) PrintResult(result *backtest.Result) {
	data, err := f.FormatResult(result)
	if err != nil {
		fmt.Printf("⚠️  Could not format result: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// WriteResultJSON writes a strategy run to a JSON file
func WriteResultJSON(result *backtest.Result, path string) error {
	formatter := NewDefaultJSONFormatter()

	data, err := formatter.FormatResult(result)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
