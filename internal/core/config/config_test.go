package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requiredEnv sets every required variable for the duration of a test.
func requiredEnv(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "https://shop.myshopify.test")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("SHEET_BRIDGE_URL", "https://bridge.test")
	t.Setenv("SHEET_BRIDGE_API_KEY", "bridge_key")
	t.Setenv("SHEET_BRIDGE_SHEET_ID", "sheet-1")
	t.Setenv("CLASSIFIER_URL", "https://classifier.test/classify")
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	requiredEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "couriers.yaml", cfg.CouriersFile)
	assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
	assert.Equal(t, 30, cfg.Classifier.TimeoutSeconds)
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	requiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHOPIFY_API_VERSION", "2024-07")
	t.Setenv("CLASSIFIER_API_KEY", "clf_key")
	t.Setenv("PROXY_ENABLED", "true")
	t.Setenv("PROXY_HOSTNAME", "proxy.test")
	t.Setenv("PROXY_PORT", "12321")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://shop.myshopify.test", cfg.Shopify.StoreURL)
	assert.Equal(t, "2024-07", cfg.Shopify.APIVersion)
	assert.Equal(t, "clf_key", cfg.Classifier.APIKey)
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "proxy.test", cfg.Proxy.Hostname)
	assert.Equal(t, 12321, cfg.Proxy.Port)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
SHOPIFY_STORE_URL=https://staging.myshopify.test
SHOPIFY_ACCESS_TOKEN=shpat_staging
SHEET_BRIDGE_URL=https://bridge.staging.test
SHEET_BRIDGE_API_KEY=bridge_staging
SHEET_BRIDGE_SHEET_ID=sheet-staging
CLASSIFIER_URL=https://classifier.staging.test/classify
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging.myshopify.test", cfg.Shopify.StoreURL)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("SHOPIFY_STORE_URL")
	os.Unsetenv("SHOPIFY_ACCESS_TOKEN")
	os.Unsetenv("SHEET_BRIDGE_URL")
	os.Unsetenv("SHEET_BRIDGE_API_KEY")
	os.Unsetenv("SHEET_BRIDGE_SHEET_ID")
	os.Unsetenv("CLASSIFIER_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}

func TestLoadCouriers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "couriers.yaml")
	content := []byte(`
couriers:
  - name: leopards
    detect_substring: leopardscourier
    endpoint_template: "https://api.leopards.test/track/%s"
    query_params: ["cn"]
    enabled: true
  - name: trax
    detect_substring: trax
    endpoint_template: "https://sonic.test/track/%s"
    enabled: false
    use_browser: true
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	couriers, err := LoadCouriers(path)
	require.NoError(t, err)
	require.Len(t, couriers, 2)

	assert.Equal(t, "leopards", couriers[0].Name)
	assert.Equal(t, "leopardscourier", couriers[0].DetectSubstring)
	assert.Equal(t, []string{"cn"}, couriers[0].QueryParams)
	assert.True(t, couriers[0].Enabled)
	assert.False(t, couriers[0].UseBrowser)

	assert.False(t, couriers[1].Enabled)
	assert.True(t, couriers[1].UseBrowser)
}

func TestLoadCouriers_MissingFile(t *testing.T) {
	couriers, err := LoadCouriers(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, couriers)
}

func TestLoadCouriers_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "couriers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("couriers: {not: [a list"), 0644))

	_, err := LoadCouriers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse couriers file")
}
