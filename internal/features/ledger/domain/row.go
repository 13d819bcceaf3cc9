package domain

import (
	trackingdomain "ledger-sync/internal/features/tracking/domain"
)

// Row is the persisted per-order ledger record. Rows are created when
// an order is first seen and mutated in place afterwards; this core
// never deletes a row (cancellation is a stage value, not a removal).
type Row struct {
	// Index is the 1-based sheet row index, stable once assigned.
	Index int `json:"index"`
	// OrderID is the unique order identifier keying this row.
	OrderID int64 `json:"order_id"`
	// OrderName is the order display name (e.g., "#1001").
	OrderName string `json:"order_name"`
	// Stage is the current lifecycle stage label.
	Stage string `json:"stage"`
	// ContactStatus is the WhatsApp-contact status label.
	ContactStatus string `json:"contact_status"`
	// DeliveryStatus is the delivery status label.
	DeliveryStatus string `json:"delivery_status"`
	// Alert is the last AI alert text written for this order.
	Alert string `json:"alert"`
	// Customer is the customer display name.
	Customer string `json:"customer"`
	// Phone is the customer contact phone.
	Phone string `json:"phone"`
	// City is the shipping city.
	City string `json:"city"`
}

// MutationKind distinguishes append and update mutations.
type MutationKind int

const (
	// MutationAppend adds a new row at the end of the ledger.
	MutationAppend MutationKind = iota
	// MutationUpdate rewrites an existing row addressed by its index.
	MutationUpdate
)

// Mutation is one full-row ledger write. Partial field updates are
// never emitted: each mutation carries the complete row so a stale
// cell can never survive a reconcile.
type Mutation struct {
	// Kind is append or update.
	Kind MutationKind `json:"kind"`
	// Row is the full row payload. For appends, Index is the row the
	// reconciler assigned; for updates, the existing stable index.
	Row Row `json:"row"`
	// Color is the background color hint for the row.
	Color trackingdomain.Color `json:"color"`
}
