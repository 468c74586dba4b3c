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

	// Store holds the persisted key-value store configuration.
	Store StoreConfig `mapstructure:",squash"`

	// Catalog holds the catalog source configuration.
	Catalog CatalogConfig `mapstructure:",squash"`

	// Shipping holds the flat fees per shipping method.
	Shipping ShippingConfig `mapstructure:",squash"`

	// Invoice holds the invoice export configuration.
	Invoice InvoiceConfig `mapstructure:",squash"`
}

// StoreConfig holds the connection details for the persisted store.
type StoreConfig struct {
	// RedisURL is the connection URL, e.g. redis://localhost:6379/0.
	RedisURL string `mapstructure:"REDIS_URL" required:"true"`
}

// CatalogConfig holds the catalog data source details.
type CatalogConfig struct {
	// Path is the JSON data file the catalog is loaded from.
	Path string `mapstructure:"CATALOG_PATH" default:"data/catalog.json"`
	// ReloadQuietMs is the debounce quiet period for data file reloads, in milliseconds.
	ReloadQuietMs int `mapstructure:"CATALOG_RELOAD_QUIET_MS" default:"300"`
}

// ShippingConfig holds the flat fee per shipping method.
// Fees are decimal strings so no precision is lost on the way in.
type ShippingConfig struct {
	// StandardFee is the flat fee for the standard shipping method.
	StandardFee string `mapstructure:"SHIPPING_STANDARD_FEE" default:"15.00"`
	// ExpressFee is the flat fee for the express shipping method.
	ExpressFee string `mapstructure:"SHIPPING_EXPRESS_FEE" default:"25.00"`
}

// InvoiceConfig holds settings for the PDF export collaborator.
type InvoiceConfig struct {
	// BrowserURL is the DevTools websocket URL of the headless browser used
	// for print-to-PDF. Empty means launch a local browser on demand.
	BrowserURL string `mapstructure:"INVOICE_BROWSER_URL" default:""`
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
