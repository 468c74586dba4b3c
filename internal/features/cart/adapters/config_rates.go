package adapters

import (
	"fmt"

	"crafts-market/internal/core/config"

	"github.com/shopspring/decimal"
)

// Shipping method names known to the storefront.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// ConfigShippingRates implements ports.ShippingRates from the application
// configuration: flat fee per method, no computation.
type ConfigShippingRates struct {
	fees map[string]decimal.Decimal
}

// NewConfigShippingRates parses the configured fees.
func NewConfigShippingRates(cfg config.ShippingConfig) (*ConfigShippingRates, error) {
	standard, err := decimal.NewFromString(cfg.StandardFee)
	if err != nil {
		return nil, fmt.Errorf("invalid standard shipping fee %q: %w", cfg.StandardFee, err)
	}
	express, err := decimal.NewFromString(cfg.ExpressFee)
	if err != nil {
		return nil, fmt.Errorf("invalid express shipping fee %q: %w", cfg.ExpressFee, err)
	}

	return &ConfigShippingRates{
		fees: map[string]decimal.Decimal{
			ShippingStandard: standard,
			ShippingExpress:  express,
		},
	}, nil
}

// Fee returns the flat fee for the given method.
func (r *ConfigShippingRates) Fee(method string) (decimal.Decimal, error) {
	fee, ok := r.fees[method]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown shipping method: %s", method)
	}
	return fee, nil
}

// DefaultMethod returns the method used when a session never picked one.
func (r *ConfigShippingRates) DefaultMethod() string {
	return ShippingStandard
}
