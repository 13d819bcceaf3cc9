package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CourierConfig describes one courier's tracking API. The registry is
// ordered: the first enabled entry whose detection substring matches a
// tracking URL wins.
type CourierConfig struct {
	// Name is the courier identifier (e.g., "leopards", "tcs").
	Name string `yaml:"name"`
	// DetectSubstring marks this courier's tracking URLs.
	DetectSubstring string `yaml:"detect_substring"`
	// EndpointTemplate is the API endpoint with a %s slot for the
	// tracking ID.
	EndpointTemplate string `yaml:"endpoint_template"`
	// QueryParams are the URL query parameter names that may carry
	// the tracking ID, tried in order.
	QueryParams []string `yaml:"query_params"`
	// Enabled toggles the entry without removing it.
	Enabled bool `yaml:"enabled"`
	// UseBrowser requests the headless-browser fetcher for this
	// courier's pages.
	UseBrowser bool `yaml:"use_browser"`
}

// courierFile is the registry file layout.
type courierFile struct {
	Couriers []CourierConfig `yaml:"couriers"`
}

// LoadCouriers reads the courier registry from a YAML file. A missing
// file is not an error: every tracking URL is then fetched directly.
func LoadCouriers(path string) ([]CourierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read couriers file: %w", err)
	}

	var file courierFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse couriers file: %w", err)
	}

	return file.Couriers, nil
}
