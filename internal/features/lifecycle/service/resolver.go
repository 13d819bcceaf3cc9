package service

import (
	"strings"
	"time"

	ledgerdomain "ledger-sync/internal/features/ledger/domain"
	"ledger-sync/internal/features/lifecycle/domain"
	orderdomain "ledger-sync/internal/features/orders/domain"
)

// staleAge is the order age past which an unfulfilled, unconfirmed
// order is reported as stale.
const staleAge = 24 * time.Hour

// rule is one entry in the ordered scenario table. The first rule
// whose match function returns true wins.
type rule struct {
	scenario domain.Scenario
	match    func(in resolveInput) bool
}

// resolveInput bundles everything a rule may inspect. Resolution is a
// pure function of this input: no clock reads, no pass-local state.
type resolveInput struct {
	order *orderdomain.Order
	tags  domain.TagSet
	row   *ledgerdomain.Row
	now   time.Time
}

// Resolver assigns a lifecycle scenario to each order. Deterministic
// and side-effect-free; the evaluation order of the rule table is load
// bearing because tag combinations overlap.
type Resolver struct {
	rules []rule
}

// NewResolver creates a Resolver with the standard rule table.
//
// Cancellation and newness are absolute overrides. The WhatsApp, phone
// and size stages are mutually exclusive sub-states of the pre-courier
// funnel whose tags can coexist transiently, so the more specific tag
// combinations come first. Fulfillment checks precede staleness so a
// fulfilled-but-idle order is never misreported as stale.
func NewResolver() *Resolver {
	return &Resolver{
		rules: []rule{
			{domain.ScenarioCancelled, func(in resolveInput) bool {
				return in.order.IsCancelled() || in.tags.Has(domain.TagCancelled)
			}},
			{domain.ScenarioNewOrder, func(in resolveInput) bool {
				return in.row == nil
			}},
			{domain.ScenarioAwaitingWhatsAppConfirm, func(in resolveInput) bool {
				return in.tags.Has(domain.TagWhatsAppSent) &&
					!in.tags.HasWord(domain.TagConfirmed) &&
					!in.tags.Has(domain.TagDidNotPickUp)
			}},
			{domain.ScenarioInvalidWhatsApp, func(in resolveInput) bool {
				return in.tags.Has(domain.TagInvalidWhatsApp)
			}},
			{domain.ScenarioAwaitingPhoneCall, func(in resolveInput) bool {
				return in.tags.HasAny(domain.TagWhatsAppConfirmed, domain.TagAwaitingCall)
			}},
			{domain.ScenarioCustomerNotPickingPhone, func(in resolveInput) bool {
				return in.tags.HasAny(domain.TagDidNotPickUp, domain.TagNoAnswer)
			}},
			{domain.ScenarioAwaitingSizeConfirmation, func(in resolveInput) bool {
				return in.tags.Has(domain.TagCallCompleted) && !in.tags.Has(domain.TagSizeConfirmed)
			}},
			{domain.ScenarioReadyForCourier, func(in resolveInput) bool {
				return in.tags.Has(domain.TagSizeConfirmed) && in.order.IsUnfulfilled()
			}},
			{domain.ScenarioTrackParcel, func(in resolveInput) bool {
				return in.order.IsFulfilled() && len(in.order.Fulfillments) > 0 && !rowDelivered(in.row)
			}},
			{domain.ScenarioAlreadyDelivered, func(in resolveInput) bool {
				return in.order.IsFulfilled() && len(in.order.Fulfillments) > 0 && rowDelivered(in.row)
			}},
			{domain.ScenarioStaleOrder, func(in resolveInput) bool {
				return in.order.Age(in.now) > staleAge &&
					in.order.IsUnfulfilled() &&
					!in.tags.Has(domain.TagSizeConfirmed)
			}},
		},
	}
}

// Resolve computes the lifecycle scenario for one order given its
// last-known ledger row (nil when the order has never been seen).
func (r *Resolver) Resolve(order *orderdomain.Order, row *ledgerdomain.Row, now time.Time) domain.Scenario {
	in := resolveInput{
		order: order,
		tags:  domain.ParseTags(order.Tags),
		row:   row,
		now:   now,
	}

	for _, rule := range r.rules {
		if rule.match(in) {
			return rule.scenario
		}
	}

	return domain.ScenarioUpdateOnly
}

// rowDelivered reports whether the existing row already records the
// shipment as delivered.
func rowDelivered(row *ledgerdomain.Row) bool {
	return row != nil && strings.EqualFold(row.DeliveryStatus, "Delivered")
}
