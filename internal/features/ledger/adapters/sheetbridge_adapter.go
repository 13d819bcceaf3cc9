package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ledger-sync/internal/core/config"
	"ledger-sync/internal/core/httpclient"
	"ledger-sync/internal/features/ledger/domain"
)

// SheetBridgeAdapter implements the LedgerStore interface against the
// spreadsheet bridge REST API, which fronts the actual sheet and owns
// cell formatting.
type SheetBridgeAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the bridge connection details.
	config config.SheetBridgeConfig
}

// NewSheetBridgeAdapter creates a new instance of SheetBridgeAdapter.
func NewSheetBridgeAdapter(cfg config.SheetBridgeConfig) *SheetBridgeAdapter {
	return &SheetBridgeAdapter{
		client: httpclient.NewClient(20 * time.Second),
		config: cfg,
	}
}

// ReadRows fetches every ledger row from the bridge.
func (a *SheetBridgeAdapter) ReadRows(ctx context.Context) ([]domain.Row, error) {
	url := fmt.Sprintf("%s/v1/sheets/%s/rows", a.config.URL, a.config.SheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet bridge returned status: %d", resp.StatusCode)
	}

	var wrapper struct {
		Rows []bridgeRow `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode ledger rows: %w", err)
	}

	rows := make([]domain.Row, 0, len(wrapper.Rows))
	for _, raw := range wrapper.Rows {
		rows = append(rows, domain.Row(raw))
	}

	return rows, nil
}

// Apply sends one mutation batch to the bridge. The bridge applies
// appends in request order, so row indices assigned by the reconciler
// stay valid.
func (a *SheetBridgeAdapter) Apply(ctx context.Context, batch []domain.Mutation) error {
	if len(batch) == 0 {
		return nil
	}

	payload := bridgeBatch{Mutations: make([]bridgeMutation, 0, len(batch))}
	for _, m := range batch {
		kind := "update"
		if m.Kind == domain.MutationAppend {
			kind = "append"
		}
		payload.Mutations = append(payload.Mutations, bridgeMutation{
			Kind:  kind,
			Row:   bridgeRow(m.Row),
			Color: string(m.Color),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation batch: %w", err)
	}

	url := fmt.Sprintf("%s/v1/sheets/%s/mutations", a.config.URL, a.config.SheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to apply mutation batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("sheet bridge returned status: %d", resp.StatusCode)
	}

	return nil
}

// internal structs for mapping

// bridgeRow mirrors domain.Row field-for-field on the wire.
type bridgeRow struct {
	Index          int    `json:"index"`
	OrderID        int64  `json:"order_id"`
	OrderName      string `json:"order_name"`
	Stage          string `json:"stage"`
	ContactStatus  string `json:"contact_status"`
	DeliveryStatus string `json:"delivery_status"`
	Alert          string `json:"alert"`
	Customer       string `json:"customer"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
}

// bridgeMutation is one wire mutation.
type bridgeMutation struct {
	Kind  string    `json:"kind"`
	Row   bridgeRow `json:"row"`
	Color string    `json:"color"`
}

// bridgeBatch is the mutation request body.
type bridgeBatch struct {
	Mutations []bridgeMutation `json:"mutations"`
}
