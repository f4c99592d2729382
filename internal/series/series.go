package series

import (
	"fmt"
	"math"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// IntegrityError reports a bar that breaks the assumptions every simulation
// relies on: positive prices and strictly increasing unique dates. It names
// the offending row so a bad CSV can be fixed instead of guessed at.
type IntegrityError struct {
	Index int
	Date  time.Time
	Field string
	Msg   string
}

func (e *IntegrityError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("data integrity: %s (row %d, field %s)", e.Msg, e.Index, e.Field)
	}
	return fmt.Sprintf("data integrity: %s (row %d, date %s, field %s)",
		e.Msg, e.Index, e.Date.Format("2006-01-02"), e.Field)
}

// PriceSeries is an ordered, gap-tolerant daily candle series. Once built it
// is immutable and safe for concurrent reads.
//
// Day-over-day close returns are computed once, against the full series; any
// month view handed out later shares them, so the first bar of a sliced month
// still carries its return against the previous month's last close.
type PriceSeries struct {
	bars    []types.OHLCV
	returns []float64
}

// New validates bars and builds a series. The bars slice is copied; callers
// may reuse their buffer.
func New(bars []types.OHLCV) (*PriceSeries, error) {
	if len(bars) == 0 {
		return nil, &IntegrityError{Field: "series", Msg: "empty series"}
	}

	for i, b := range bars {
		for _, p := range []struct {
			field string
			value float64
		}{
			{"open", b.Open},
			{"high", b.High},
			{"low", b.Low},
			{"close", b.Close},
		} {
			if p.value <= 0 || math.IsNaN(p.value) || math.IsInf(p.value, 0) {
				return nil, &IntegrityError{
					Index: i,
					Date:  b.Timestamp,
					Field: p.field,
					Msg:   fmt.Sprintf("non-positive price %v", p.value),
				}
			}
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return nil, &IntegrityError{
				Index: i,
				Date:  b.Timestamp,
				Field: "timestamp",
				Msg:   fmt.Sprintf("not after previous bar %s", bars[i-1].Timestamp.Format("2006-01-02")),
			}
		}
	}

	s := &PriceSeries{
		bars:    make([]types.OHLCV, len(bars)),
		returns: make([]float64, len(bars)),
	}
	copy(s.bars, bars)

	s.returns[0] = math.NaN()
	for i := 1; i < len(bars); i++ {
		s.returns[i] = (bars[i].Close - bars[i-1].Close) / bars[i-1].Close * 100
	}

	return s, nil
}

func (s *PriceSeries) Len() int { return len(s.bars) }

func (s *PriceSeries) Bar(i int) types.OHLCV { return s.bars[i] }

// Bars returns the underlying bars. The slice must not be modified.
func (s *PriceSeries) Bars() []types.OHLCV { return s.bars }

// DailyReturnPct is the close-over-previous-close return of bar i in percent.
// NaN for the first bar of the series.
func (s *PriceSeries) DailyReturnPct(i int) float64 { return s.returns[i] }

func (s *PriceSeries) FirstBar() types.OHLCV { return s.bars[0] }

func (s *PriceSeries) LastBar() types.OHLCV { return s.bars[len(s.bars)-1] }

func (s *PriceSeries) LastClose() float64 { return s.LastBar().Close }

// MonthKey identifies one calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Next returns the calendar month immediately after k.
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// MonthView is a window over one calendar month of a parent series. It
// borrows the parent's bars and full-series returns rather than recomputing
// anything over the truncated range.
type MonthView struct {
	Key    MonthKey
	parent *PriceSeries
	start  int // inclusive parent index
	end    int // exclusive parent index
}

func (v MonthView) Len() int { return v.end - v.start }

func (v MonthView) Bar(i int) types.OHLCV { return v.parent.bars[v.start+i] }

// DailyReturnPct is the full-series return for bar i of this month; the first
// bar still references the previous month's close.
func (v MonthView) DailyReturnPct(i int) float64 { return v.parent.returns[v.start+i] }

func (v MonthView) FirstBar() types.OHLCV { return v.parent.bars[v.start] }

func (v MonthView) LastBar() types.OHLCV { return v.parent.bars[v.end-1] }

// Months partitions the series into calendar months, chronological order.
// A month appears only if it has at least one bar.
func (s *PriceSeries) Months() []MonthView {
	var views []MonthView
	start := 0
	key := monthOf(s.bars[0].Timestamp)

	for i := 1; i <= len(s.bars); i++ {
		if i == len(s.bars) || monthOf(s.bars[i].Timestamp) != key {
			views = append(views, MonthView{Key: key, parent: s, start: start, end: i})
			if i < len(s.bars) {
				start = i
				key = monthOf(s.bars[i].Timestamp)
			}
		}
	}
	return views
}

func monthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}
