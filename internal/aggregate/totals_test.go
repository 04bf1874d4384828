package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bigtop/showrunner/internal/model"
)

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 0, TotalDuration(nil))
	assert.Equal(t, 0, TotalDuration([]model.Act{}))

	acts := []model.Act{
		{Name: "Opening Parade", Duration: 15, SequenceOrder: 1},
		{Name: "Trapeze", Duration: 20, SequenceOrder: 2},
	}
	assert.Equal(t, 35, TotalDuration(acts))

	// Removing an act of duration d lowers the total by exactly d.
	assert.Equal(t, 20, TotalDuration(acts[1:]))
}

func TestTotalExpenses(t *testing.T) {
	assert.True(t, TotalExpenses(nil).IsZero())

	expenses := []model.Expense{
		{Category: model.CategoryVenue, Amount: decimal.RequireFromString("500.00")},
		{Category: model.CategoryTravel, Amount: decimal.RequireFromString("0.10")},
		{Category: model.CategoryOther, Amount: decimal.RequireFromString("0.20")},
	}
	total := TotalExpenses(expenses)
	assert.Equal(t, "500.30", total.StringFixed(2), "decimal accumulation must not drift")

	assert.Equal(t, "500.00", TotalExpenses(expenses[:1]).StringFixed(2))
}
