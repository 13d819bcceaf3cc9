package domain

import (
	trackingdomain "ledger-sync/internal/features/tracking/domain"
)

// Scenario is the resolved lifecycle stage assigned to an order for
// one sync pass. Exactly one scenario is assigned per order per pass.
type Scenario string

const (
	ScenarioNewOrder                 Scenario = "NewOrder"
	ScenarioAwaitingWhatsAppConfirm  Scenario = "AwaitingWhatsAppConfirm"
	ScenarioInvalidWhatsApp          Scenario = "InvalidWhatsApp"
	ScenarioAwaitingPhoneCall        Scenario = "AwaitingPhoneCall"
	ScenarioCustomerNotPickingPhone  Scenario = "CustomerNotPickingPhone"
	ScenarioAwaitingSizeConfirmation Scenario = "AwaitingSizeConfirmation"
	ScenarioReadyForCourier          Scenario = "ReadyForCourier"
	ScenarioTrackParcel              Scenario = "TrackParcel"
	ScenarioAlreadyDelivered         Scenario = "AlreadyDelivered"
	ScenarioStaleOrder               Scenario = "StaleOrder"
	ScenarioCancelled                Scenario = "Cancelled"
	ScenarioUpdateOnly               Scenario = "UpdateOnly"
)

// Template defines the ledger representation of a scenario: the stage
// and status labels written to the row, the static alert text, and the
// severity color. Scenarios with computed alerts (TrackParcel,
// AwaitingWhatsAppConfirm, StaleOrder) override AlertText at
// generation time.
type Template struct {
	// Stage is the lifecycle stage label written to the ledger.
	Stage string
	// ContactStatus is the WhatsApp-contact status label.
	ContactStatus string
	// DeliveryStatus is the delivery status label.
	DeliveryStatus string
	// AlertText is the static alert, if the scenario has one.
	AlertText string
	// Color is the severity color for the row background.
	Color trackingdomain.Color
}

// templates maps each scenario to its ledger representation.
var templates = map[Scenario]Template{
	ScenarioNewOrder: {
		Stage:          "New Order",
		ContactStatus:  "Not Contacted",
		DeliveryStatus: "Pending",
		AlertText:      "New order received. Send WhatsApp confirmation.",
		Color:          trackingdomain.ColorYellow,
	},
	ScenarioAwaitingWhatsAppConfirm: {
		Stage:          "WhatsApp Sent",
		ContactStatus:  "Awaiting Reply",
		DeliveryStatus: "Pending",
		Color:          trackingdomain.ColorYellow,
	},
	ScenarioInvalidWhatsApp: {
		Stage:          "Invalid WhatsApp",
		ContactStatus:  "Invalid Number",
		DeliveryStatus: "Pending",
		AlertText:      "WhatsApp number invalid. Call the customer directly.",
		Color:          trackingdomain.ColorOrange,
	},
	ScenarioAwaitingPhoneCall: {
		Stage:          "Awaiting Call",
		ContactStatus:  "Confirmed on WhatsApp",
		DeliveryStatus: "Pending",
		AlertText:      "Customer confirmed on WhatsApp. Call to finalize details.",
		Color:          trackingdomain.ColorYellow,
	},
	ScenarioCustomerNotPickingPhone: {
		Stage:          "Customer Not Picking Phone",
		ContactStatus:  "No Answer",
		DeliveryStatus: "Pending",
		AlertText:      "Customer not answering. Retry call later today.",
		Color:          trackingdomain.ColorOrange,
	},
	ScenarioAwaitingSizeConfirmation: {
		Stage:          "Awaiting Size Confirmation",
		ContactStatus:  "Call Completed",
		DeliveryStatus: "Pending",
		AlertText:      "Call done but size not confirmed. Follow up for size.",
		Color:          trackingdomain.ColorYellow,
	},
	ScenarioReadyForCourier: {
		Stage:          "Ready For Courier",
		ContactStatus:  "Size Confirmed",
		DeliveryStatus: "Pending",
		AlertText:      "Size confirmed. Book courier pickup.",
		Color:          trackingdomain.ColorGreen,
	},
	ScenarioTrackParcel: {
		Stage:          "In Transit",
		ContactStatus:  "Size Confirmed",
		DeliveryStatus: "In-Transit",
		Color:          trackingdomain.ColorYellow,
	},
	ScenarioAlreadyDelivered: {
		Stage:          "Delivered",
		ContactStatus:  "Size Confirmed",
		DeliveryStatus: "Delivered",
		Color:          trackingdomain.ColorGreen,
	},
	ScenarioStaleOrder: {
		Stage:          "Stale",
		ContactStatus:  "Stalled",
		DeliveryStatus: "Pending",
		Color:          trackingdomain.ColorRed,
	},
	ScenarioCancelled: {
		Stage:          "Cancelled",
		ContactStatus:  "-",
		DeliveryStatus: "Cancelled",
		AlertText:      "Order cancelled.",
		Color:          trackingdomain.ColorRed,
	},
	ScenarioUpdateOnly: {
		Stage:          "In Progress",
		ContactStatus:  "In Progress",
		DeliveryStatus: "Pending",
		Color:          trackingdomain.ColorYellow,
	},
}

// TemplateFor returns the ledger template for a scenario. Unknown
// scenarios fall back to the UpdateOnly template.
func TemplateFor(s Scenario) Template {
	if tpl, ok := templates[s]; ok {
		return tpl
	}
	return templates[ScenarioUpdateOnly]
}
