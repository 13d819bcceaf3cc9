package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// RedisURL is the cache connection string; empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL" default:""`
	// CouriersFile is the path to the YAML courier API registry.
	CouriersFile string `mapstructure:"COURIERS_FILE" default:"couriers.yaml"`

	// Shopify holds the commerce platform API configuration.
	Shopify ShopifyConfig `mapstructure:",squash"`

	// SheetBridge holds the ledger store API configuration.
	SheetBridge SheetBridgeConfig `mapstructure:",squash"`

	// Classifier holds the status classifier service configuration.
	Classifier ClassifierConfig `mapstructure:",squash"`

	// Proxy holds the outbound proxy used by browser-based fetching.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// ShopifyConfig holds the credentials for the Shopify store.
type ShopifyConfig struct {
	// StoreURL is the base URL of the store (https://shop.myshopify.com).
	StoreURL string `mapstructure:"SHOPIFY_STORE_URL" required:"true"`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"SHOPIFY_ACCESS_TOKEN" required:"true"`
	// APIVersion is the Admin API version segment.
	APIVersion string `mapstructure:"SHOPIFY_API_VERSION" default:"2024-01"`
}

// SheetBridgeConfig holds the connection details for the spreadsheet
// bridge that persists the order ledger.
type SheetBridgeConfig struct {
	// URL is the base URL of the bridge API.
	URL string `mapstructure:"SHEET_BRIDGE_URL" required:"true"`
	// APIKey authenticates against the bridge.
	APIKey string `mapstructure:"SHEET_BRIDGE_API_KEY" required:"true"`
	// SheetID identifies the ledger sheet.
	SheetID string `mapstructure:"SHEET_BRIDGE_SHEET_ID" required:"true"`
}

// ClassifierConfig holds the status classifier service settings.
type ClassifierConfig struct {
	// URL is the classify endpoint.
	URL string `mapstructure:"CLASSIFIER_URL" required:"true"`
	// APIKey is the optional bearer token.
	APIKey string `mapstructure:"CLASSIFIER_API_KEY" default:""`
	// TimeoutSeconds bounds one classification call.
	TimeoutSeconds int `mapstructure:"CLASSIFIER_TIMEOUT_SECONDS" default:"30"`
}

// ProxyConfig holds the outbound proxy credentials for courier pages
// that block datacenter traffic.
type ProxyConfig struct {
	// Enabled turns proxying on for browser fetches.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy host.
	Hostname string `mapstructure:"PROXY_HOSTNAME" default:""`
	// Port is the proxy port.
	Port int `mapstructure:"PROXY_PORT" default:"0"`
	// Username is the proxy auth user.
	Username string `mapstructure:"PROXY_USERNAME" default:""`
	// Password is the proxy auth password.
	Password string `mapstructure:"PROXY_PASSWORD" default:""`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
