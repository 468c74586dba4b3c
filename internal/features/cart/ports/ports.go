package ports

import (
	"context"

	"crafts-market/internal/features/cart/domain"

	"github.com/shopspring/decimal"
)

// CartService defines the primary port for cart operations.
// Every mutation persists the cart before returning.
type CartService interface {
	Get(ctx context.Context, session string) (*domain.Cart, error)
	Add(ctx context.Context, session, itemID, name string, unitPrice decimal.Decimal, imageRef string, qty int) (*domain.Cart, error)
	Remove(ctx context.Context, session string, index int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, session string, index, qty int) (*domain.Cart, error)
	SelectShipping(ctx context.Context, session, method string) error
	Totals(ctx context.Context, session string) (*domain.Totals, error)
	Clear(ctx context.Context, session string) error
}

// CartRepository defines the secondary port for cart persistence.
// Load yields an empty cart when no record exists or the stored record
// cannot be decoded.
type CartRepository interface {
	Load(ctx context.Context, session string) (*domain.Cart, error)
	Save(ctx context.Context, session string, cart *domain.Cart) error
	Clear(ctx context.Context, session string) error

	// SaveShipping and LoadShipping persist the last-selected shipping
	// method per session. LoadShipping returns "" when none was selected.
	SaveShipping(ctx context.Context, session, method string) error
	LoadShipping(ctx context.Context, session string) (string, error)
}

// ShippingRates defines the configuration collaborator that prices
// shipping methods as flat fees.
type ShippingRates interface {
	// Fee returns the flat fee for the given method.
	Fee(method string) (decimal.Decimal, error)
	// DefaultMethod is used when a session never selected a method.
	DefaultMethod() string
}
