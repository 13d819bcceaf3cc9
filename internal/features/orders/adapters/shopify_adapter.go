package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ledger-sync/internal/core/config"
	"ledger-sync/internal/core/httpclient"
	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/orders/domain"

	"go.uber.org/zap"
)

// maxPages caps pagination so a bad continuation token can never make
// a sync pass loop forever.
const maxPages = 100

// pageSize is the per-request order limit accepted by the Shopify API.
const pageSize = 250

// nextLinkPattern extracts the rel="next" URL from a Link header.
var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ShopifyAdapter implements the OrderProvider interface using the
// Shopify Admin REST API.
type ShopifyAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the Shopify connection details.
	config config.ShopifyConfig
}

// NewShopifyAdapter creates a new instance of ShopifyAdapter.
func NewShopifyAdapter(cfg config.ShopifyConfig) *ShopifyAdapter {
	return &ShopifyAdapter{
		client: httpclient.NewClient(15 * time.Second),
		config: cfg,
	}
}

// ListOrders fetches every order created within [from, to], following
// Link-header pagination up to the page ceiling.
func (a *ShopifyAdapter) ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any&limit=%d&created_at_min=%s&created_at_max=%s",
		a.config.StoreURL, a.config.APIVersion, pageSize,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	var orders []domain.Order

	for page := 0; url != ""; page++ {
		if page >= maxPages {
			logger.Get().Warn("Order pagination ceiling reached, truncating result",
				zap.Int("pages", page),
				zap.Int("orders", len(orders)),
			)
			break
		}

		batch, next, err := a.fetchPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch orders page %d: %w", page+1, err)
		}

		orders = append(orders, batch...)
		url = next
	}

	return orders, nil
}

// GetOrder fetches a single order by ID.
func (a *ShopifyAdapter) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	url := fmt.Sprintf("%s/admin/api/%s/orders/%d.json", a.config.StoreURL, a.config.APIVersion, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			// Absence is a domain answer, not a transport failure.
			return nil, nil
		}
		return nil, fmt.Errorf("shopify API returned status: %d", resp.StatusCode)
	}

	var wrapper struct {
		Order shopifyOrder `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	order := mapToDomain(wrapper.Order)
	return &order, nil
}

// HealthCheck verifies that the Shopify API is reachable and the token is valid.
func (a *ShopifyAdapter) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?limit=1", a.config.StoreURL, a.config.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// fetchPage fetches one page of orders and returns the next-page URL
// from the Link header, or "" when this was the last page.
func (a *ShopifyAdapter) fetchPage(ctx context.Context, url string) ([]domain.Order, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("shopify API returned status: %d", resp.StatusCode)
	}

	var wrapper struct {
		Orders []shopifyOrder `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}

	orders := make([]domain.Order, 0, len(wrapper.Orders))
	for _, raw := range wrapper.Orders {
		orders = append(orders, mapToDomain(raw))
	}

	return orders, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" URL from a Link header value.
func nextPageURL(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	matches := nextLinkPattern.FindStringSubmatch(linkHeader)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// mapToDomain converts a raw Shopify order into the domain entity.
func mapToDomain(raw shopifyOrder) domain.Order {
	fulfillments := make([]domain.Fulfillment, 0, len(raw.Fulfillments))
	for _, f := range raw.Fulfillments {
		fulfillments = append(fulfillments, domain.Fulfillment{
			TrackingURL:    f.TrackingURL,
			TrackingNumber: f.TrackingNumber,
			Company:        f.TrackingCompany,
		})
	}

	attrs := make([]domain.NoteAttribute, 0, len(raw.NoteAttributes))
	for _, n := range raw.NoteAttributes {
		attrs = append(attrs, domain.NoteAttribute{Name: n.Name, Value: fmt.Sprintf("%v", n.Value)})
	}

	status := domain.FulfillmentStatus(strings.ToLower(raw.FulfillmentStatus))
	if status == "" {
		// Shopify reports null fulfillment_status for unshipped orders.
		status = domain.FulfillmentUnfulfilled
	}

	return domain.Order{
		ID:                raw.ID,
		Name:              raw.Name,
		CreatedAt:         time.Time(raw.CreatedAt),
		CancelledAt:       raw.CancelledAt.ptr(),
		Tags:              raw.Tags,
		FulfillmentStatus: status,
		Fulfillments:      fulfillments,
		FinancialStatus:   raw.FinancialStatus,
		CustomerName:      strings.TrimSpace(raw.Customer.FirstName + " " + raw.Customer.LastName),
		Phone:             firstNonEmpty(raw.Customer.Phone, raw.Phone),
		BillingPhone:      raw.BillingAddress.Phone,
		City:              raw.ShippingAddress.City,
		NoteAttributes:    attrs,
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// internal structs for mapping

// shopifyOrder represents the JSON structure of an order from the Shopify API.
type shopifyOrder struct {
	// ID is the unique order ID.
	ID int64 `json:"id"`
	// Name is the display name (e.g., "#1001").
	Name string `json:"name"`
	// CreatedAt is when the order was placed.
	CreatedAt shopifyTime `json:"created_at"`
	// CancelledAt is set when the order was cancelled.
	CancelledAt shopifyTime `json:"cancelled_at"`
	// Tags is the comma-delimited tag string.
	Tags string `json:"tags"`
	// FulfillmentStatus is null, "fulfilled" or "partial".
	FulfillmentStatus string `json:"fulfillment_status"`
	// FinancialStatus is the payment state.
	FinancialStatus string `json:"financial_status"`
	// Phone is the order-level phone.
	Phone string `json:"phone"`
	// Customer holds the customer contact details.
	Customer shopifyCustomer `json:"customer"`
	// BillingAddress holds the billing address details.
	BillingAddress shopifyAddress `json:"billing_address"`
	// ShippingAddress holds the shipping address details.
	ShippingAddress shopifyAddress `json:"shipping_address"`
	// Fulfillments contains the shipments created for this order.
	Fulfillments []shopifyFulfillment `json:"fulfillments"`
	// NoteAttributes are checkout key/value pairs.
	NoteAttributes []shopifyNoteAttribute `json:"note_attributes"`
}

// shopifyCustomer holds customer contact information.
type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// shopifyAddress holds an order address.
type shopifyAddress struct {
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// shopifyFulfillment represents a shipment in the Shopify order.
type shopifyFulfillment struct {
	TrackingNumber  string `json:"tracking_number"`
	TrackingURL     string `json:"tracking_url"`
	TrackingCompany string `json:"tracking_company"`
}

// shopifyNoteAttribute is a checkout key/value pair; values are not
// always strings in practice.
type shopifyNoteAttribute struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// shopifyTime is a custom helper to handle Shopify's date format and nulls.
type shopifyTime time.Time

// UnmarshalJSON parses the ISO8601 date format used by Shopify,
// tolerating null and malformed values.
func (t *shopifyTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = shopifyTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05", s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse order date", zap.String("date", s), zap.Error(err))
		return nil
	}
	*t = shopifyTime(parsed)
	return nil
}

// ptr returns a *time.Time for non-zero values, nil otherwise.
func (t shopifyTime) ptr() *time.Time {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil
	}
	return &tt
}
