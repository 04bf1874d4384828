// Package queue defines message payloads exchanged over the message broker.
package queue

// ExpenseRecordedEvent is published when an expense is added to a show's
// ledger. It carries enough information for downstream consumers to log or
// feed accounting without querying the primary database.
type ExpenseRecordedEvent struct {
	ExpenseID   string `json:"expense_id"`
	ShowID      string `json:"show_id"`
	ShowTitle   string `json:"show_title"`
	ActID       string `json:"act_id,omitempty"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	RecordedAt  string `json:"recorded_at"`
}
