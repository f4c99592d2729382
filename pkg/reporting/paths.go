package reporting

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultOutputDir derives the conventional results directory for one run,
// results/<SYMBOL>_<interval>. Symbols normalize upper-case and intervals
// lower-case so btcusdt/D and BTCUSDT/d land in the same place.
func DefaultOutputDir(symbol, interval string) string {
	return filepath.Join("results", runSlug(symbol, interval))
}

func runSlug(symbol, interval string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		sym = "UNKNOWN"
	}
	ivl := strings.ToLower(strings.TrimSpace(interval))
	if ivl == "" {
		ivl = "unknown"
	}
	return fmt.Sprintf("%s_%s", sym, ivl)
}
