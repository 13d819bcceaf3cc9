package domain

import (
	"time"
)

// FulfillmentStatus represents the shipping state of an order.
type FulfillmentStatus string

const (
	// FulfillmentUnfulfilled indicates no shipment has been created yet.
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	// FulfillmentFulfilled indicates the order has been handed to a courier.
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	// FulfillmentPartial indicates only part of the order has shipped.
	FulfillmentPartial FulfillmentStatus = "partial"
)

// Fulfillment represents a single shipment attached to an order.
type Fulfillment struct {
	// TrackingURL is the courier tracking page for this shipment, if any.
	TrackingURL string `json:"tracking_url,omitempty"`
	// TrackingNumber is the courier tracking identifier, if any.
	TrackingNumber string `json:"tracking_number,omitempty"`
	// Company is the courier company name as reported by the shop.
	Company string `json:"company,omitempty"`
}

// NoteAttribute is a key/value pair attached to an order at checkout.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Order represents a commerce order as seen during one sync pass.
// The core treats it as a read-only view; it is never mutated or
// cached across passes.
type Order struct {
	// ID is the unique identifier for the order within the shop.
	ID int64 `json:"id"`
	// Name is the display name (e.g., "#1001").
	Name string `json:"name"`
	// CreatedAt is the timestamp when the order was placed.
	CreatedAt time.Time `json:"created_at"`
	// CancelledAt is set when the order was cancelled.
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	// Tags is the free-text, comma-delimited tag field used by the
	// shop staff as an ad-hoc state flag set.
	Tags string `json:"tags"`
	// FulfillmentStatus is the shipping state of the order.
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status"`
	// Fulfillments contains the shipments created for this order.
	Fulfillments []Fulfillment `json:"fulfillments"`
	// FinancialStatus is the payment state (e.g., pending, paid).
	FinancialStatus string `json:"financial_status"`
	// CustomerName is the full name of the customer.
	CustomerName string `json:"customer_name"`
	// Phone is the customer's contact phone, if any.
	Phone string `json:"phone,omitempty"`
	// BillingPhone is the phone from the billing address, if any.
	BillingPhone string `json:"billing_phone,omitempty"`
	// City is the shipping city.
	City string `json:"city,omitempty"`
	// NoteAttributes are checkout key/value pairs (e.g., size, notes).
	NoteAttributes []NoteAttribute `json:"note_attributes,omitempty"`
}

// IsCancelled returns true if the order carries a cancellation timestamp.
func (o *Order) IsCancelled() bool {
	return o.CancelledAt != nil && !o.CancelledAt.IsZero()
}

// IsFulfilled returns true if the order has shipped.
func (o *Order) IsFulfilled() bool {
	return o.FulfillmentStatus == FulfillmentFulfilled
}

// IsUnfulfilled returns true only when no shipment exists at all.
// A partial fulfillment is neither fulfilled nor unfulfilled.
func (o *Order) IsUnfulfilled() bool {
	return o.FulfillmentStatus == FulfillmentUnfulfilled
}

// Age returns the elapsed time since the order was created.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}

// FirstTrackingURL returns the tracking URL of the first fulfillment
// that has one, or "" when none exists.
func (o *Order) FirstTrackingURL() string {
	for _, f := range o.Fulfillments {
		if f.TrackingURL != "" {
			return f.TrackingURL
		}
	}
	return ""
}

// ContactPhone returns the best phone number available for the order,
// preferring the customer phone over the billing phone.
func (o *Order) ContactPhone() string {
	if o.Phone != "" {
		return o.Phone
	}
	return o.BillingPhone
}
