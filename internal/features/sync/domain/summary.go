package domain

import "time"

// PassSummary is the result of one sync pass over a date range.
type PassSummary struct {
	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the pass completed.
	FinishedAt time.Time `json:"finished_at"`
	// From and To bound the order creation-date range processed.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	// TotalOrders is how many orders the commerce source returned.
	TotalOrders int `json:"total_orders"`
	// Tracked is how many orders went through tracking analysis.
	Tracked int `json:"tracked"`
	// Appended is the number of new ledger rows created.
	Appended int `json:"appended"`
	// Updated is the number of ledger rows rewritten.
	Updated int `json:"updated"`
	// Skipped is the number of orders that required no mutation.
	Skipped int `json:"skipped"`
	// Errors lists per-order failures; these orders are retried on
	// the next pass.
	Errors []string `json:"errors,omitempty"`
}
