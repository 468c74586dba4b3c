package ports

import (
	"context"

	"crafts-market/internal/features/checkout/domain"
)

// CheckoutService places orders and exposes the latest snapshot.
type CheckoutService interface {
	Submit(ctx context.Context, session string, form domain.CheckoutForm) (*domain.Order, error)
	CurrentOrder(ctx context.Context, session string) (*domain.Order, error)
}

// OrderRepository persists the current order snapshot per session.
type OrderRepository interface {
	SaveCurrent(ctx context.Context, session string, order domain.Order) error
	LoadCurrent(ctx context.Context, session string) (*domain.Order, error)
	ClearCurrent(ctx context.Context, session string) error
}
