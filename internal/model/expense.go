package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Category classifies an expense on a show's ledger.
type Category string

// Expense categories accepted by the API.
const (
	CategoryPerformerFee Category = "performer_fee"
	CategoryEquipment    Category = "equipment"
	CategoryVenue        Category = "venue"
	CategoryTravel       Category = "travel"
	CategoryMarketing    Category = "marketing"
	CategoryOther        Category = "other"
)

// Categories lists every valid expense category.
var Categories = []Category{
	CategoryPerformerFee,
	CategoryEquipment,
	CategoryVenue,
	CategoryTravel,
	CategoryMarketing,
	CategoryOther,
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is a cost record attributed to a show and optionally to one of its
// acts. Amount is a currency value held as a decimal to avoid floating-point
// drift. An empty ActID means the expense is not linked to any act; when the
// referenced act is deleted the link is cleared, never the expense itself.
type Expense struct {
	ID          string          `json:"id"`
	ShowID      string          `json:"show_id"`
	ActID       string          `json:"act_id,omitempty"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// MarshalJSON renders Amount as a JSON number with exactly two decimal places.
// decimal.Decimal would otherwise marshal as a quoted string and drop trailing
// zeros ("500" instead of 500.00).
func (e Expense) MarshalJSON() ([]byte, error) {
	type alias Expense
	return json.Marshal(struct {
		alias
		Amount json.Number `json:"amount"`
	}{alias(e), json.Number(e.Amount.StringFixed(2))})
}

// ExpenseCreate is the payload for POST /api/expenses. Amount is a pointer so
// an absent amount is distinguishable from an explicit zero; negative amounts
// are rejected separately since validator tags cannot compare decimals.
type ExpenseCreate struct {
	ShowID      string           `json:"show_id" validate:"required"`
	ActID       string           `json:"act_id"`
	Category    Category         `json:"category" validate:"required,oneof=performer_fee equipment venue travel marketing other"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Date        string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseUpdate is the payload for PUT /api/expenses/:id. Nil fields are left
// unchanged; setting ActID to the empty string clears the act link.
type ExpenseUpdate struct {
	ActID       *string          `json:"act_id"`
	Category    *Category        `json:"category" validate:"omitempty,oneof=performer_fee equipment venue travel marketing other"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
