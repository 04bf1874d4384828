// Package aggregate computes derived totals for a show from its current act
// and expense collections. Nothing here is cached or persisted: callers fetch
// the authoritative rows and recompute, so there is no invalidation problem.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/bigtop/showrunner/internal/model"
)

// TotalDuration returns the program length in minutes, the sum of every act's
// duration. An empty program has duration 0.
func TotalDuration(acts []model.Act) int {
	total := 0
	for _, a := range acts {
		total += a.Duration
	}
	return total
}

// TotalExpenses returns the sum of every expense amount. Accumulation is
// decimal, never floating point, so currency values do not drift. An empty
// ledger totals zero.
func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
