package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledger-sync/internal/core/config"
	"ledger-sync/internal/features/ledger/domain"
	trackingdomain "ledger-sync/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bridgeConfig(url string) config.SheetBridgeConfig {
	return config.SheetBridgeConfig{
		URL:     url,
		APIKey:  "bridge_key",
		SheetID: "sheet-1",
	}
}

// TestSheetBridgeAdapter_ReadRows verifies row retrieval and mapping.
func TestSheetBridgeAdapter_ReadRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer bridge_key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/sheets/sheet-1/rows", r.URL.Path)
		w.Write([]byte(`{"rows": [
			{"index": 2, "order_id": 1001, "order_name": "#1001", "stage": "In Transit", "delivery_status": "In-Transit"},
			{"index": 3, "order_id": 1002, "order_name": "#1002", "stage": "New Order", "delivery_status": "Pending"}
		]}`))
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	rows, err := a.ReadRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, int64(1001), rows[0].OrderID)
	assert.Equal(t, "In-Transit", rows[0].DeliveryStatus)
	assert.Equal(t, "#1002", rows[1].OrderName)
}

// TestSheetBridgeAdapter_ReadRows_Empty verifies an empty ledger.
func TestSheetBridgeAdapter_ReadRows_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rows": []}`))
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	rows, err := a.ReadRows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestSheetBridgeAdapter_ReadRows_Error verifies non-200 handling.
func TestSheetBridgeAdapter_ReadRows_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	_, err := a.ReadRows(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet bridge returned status: 403")
}

// TestSheetBridgeAdapter_Apply verifies the mutation batch wire format.
func TestSheetBridgeAdapter_Apply(t *testing.T) {
	var got bridgeBatch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/sheets/sheet-1/mutations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	batch := []domain.Mutation{
		{
			Kind:  domain.MutationAppend,
			Row:   domain.Row{Index: 5, OrderID: 1001, OrderName: "#1001", Stage: "New Order"},
			Color: trackingdomain.ColorYellow,
		},
		{
			Kind:  domain.MutationUpdate,
			Row:   domain.Row{Index: 2, OrderID: 1000, OrderName: "#1000", Stage: "Delivered"},
			Color: trackingdomain.ColorGreen,
		},
	}

	require.NoError(t, a.Apply(context.Background(), batch))

	require.Len(t, got.Mutations, 2)
	assert.Equal(t, "append", got.Mutations[0].Kind)
	assert.Equal(t, 5, got.Mutations[0].Row.Index)
	assert.Equal(t, "Yellow", got.Mutations[0].Color)
	assert.Equal(t, "update", got.Mutations[1].Kind)
	assert.Equal(t, "Green", got.Mutations[1].Color)
}

// TestSheetBridgeAdapter_Apply_EmptyBatch verifies empty batches skip the
// request entirely.
func TestSheetBridgeAdapter_Apply_EmptyBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	assert.NoError(t, a.Apply(context.Background(), nil))
}

// TestSheetBridgeAdapter_Apply_Error verifies non-2xx handling.
func TestSheetBridgeAdapter_Apply_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	a := NewSheetBridgeAdapter(bridgeConfig(server.URL))

	err := a.Apply(context.Background(), []domain.Mutation{{Kind: domain.MutationAppend}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet bridge returned status: 400")
}
