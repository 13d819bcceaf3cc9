package service

import (
	"fmt"
	"time"

	"ledger-sync/internal/features/lifecycle/domain"
	orderdomain "ledger-sync/internal/features/orders/domain"
	trackingdomain "ledger-sync/internal/features/tracking/domain"
)

// transitEscalationAge is the order age past which an in-transit
// shipment gets a follow-up warning instead of a neutral message.
const transitEscalationAge = 5 * 24 * time.Hour

// AlertGenerator maps a scenario (and, for parcel tracking, a
// classifier verdict) to the alert text and severity color written to
// the ledger.
type AlertGenerator struct{}

// NewAlertGenerator creates an AlertGenerator.
func NewAlertGenerator() *AlertGenerator {
	return &AlertGenerator{}
}

// Alert returns the alert text and color for one order's scenario.
// result is only consulted for ScenarioTrackParcel and may be nil for
// every other scenario.
func (g *AlertGenerator) Alert(scenario domain.Scenario, order *orderdomain.Order, result *trackingdomain.AnalysisResult, now time.Time) (string, trackingdomain.Color) {
	tpl := domain.TemplateFor(scenario)

	switch scenario {
	case domain.ScenarioAwaitingWhatsAppConfirm:
		return WhatsAppReminder(order.Age(now)), tpl.Color
	case domain.ScenarioStaleOrder:
		days := int(order.Age(now).Hours() / 24)
		return fmt.Sprintf("URGENT: order stalled for %d day(s) with no size confirmation. Chase the customer now.", days), tpl.Color
	case domain.ScenarioTrackParcel:
		return trackingAlert(order, result, now)
	default:
		return tpl.AlertText, tpl.Color
	}
}

// WhatsAppReminder is a pure state machine over elapsed time since
// order creation, total for any non-negative duration.
func WhatsAppReminder(elapsed time.Duration) string {
	switch {
	case elapsed < 2*time.Hour:
		return ""
	case elapsed < 6*time.Hour:
		return "Reminder: customer has not replied to the WhatsApp message yet."
	case elapsed < 24*time.Hour:
		return "Warning: no WhatsApp reply for over 6 hours. Consider calling."
	default:
		days := int(elapsed.Hours() / 24)
		return fmt.Sprintf("URGENT: no WhatsApp confirmation for %d day(s). Call the customer immediately.", days)
	}
}

// trackingAlert combines the classifier verdict with the order age.
func trackingAlert(order *orderdomain.Order, result *trackingdomain.AnalysisResult, now time.Time) (string, trackingdomain.Color) {
	if result == nil {
		fallback := trackingdomain.Fallback(nil)
		return "Could not analyze parcel tracking. Check the courier page manually.", fallback.Color
	}

	color := trackingdomain.NormalizeColor(string(result.Color))

	switch trackingdomain.NormalizeStatus(result.Status) {
	case trackingdomain.StatusDelivered:
		return "Parcel delivered. Confirm receipt with the customer.", color
	case trackingdomain.StatusInTransit:
		if order.Age(now) > transitEscalationAge {
			return "Parcel still in transit after 5+ days. Follow up with the courier.", color
		}
		return "Parcel on the way.", color
	case trackingdomain.StatusStuck:
		return "URGENT: parcel stuck in transit. Contact the courier today.", color
	case trackingdomain.StatusFailed:
		return "CRITICAL: delivery failed. Call the customer and courier immediately.", color
	case trackingdomain.StatusReturn:
		return "Parcel being returned. Verify the address with the customer.", color
	case trackingdomain.StatusNotPickingPhone:
		return "Courier reports customer unreachable. Call the customer back.", color
	case trackingdomain.StatusUnableToClassify:
		return "Could not analyze parcel tracking. Check the courier page manually.", color
	default:
		return "Tracking note: " + result.Status, color
	}
}
