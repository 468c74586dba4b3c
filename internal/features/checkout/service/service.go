package service

import (
	"context"
	"fmt"
	"time"

	"crafts-market/internal/core/logger"
	cartdomain "crafts-market/internal/features/cart/domain"
	cartports "crafts-market/internal/features/cart/ports"
	"crafts-market/internal/features/checkout/domain"
	"crafts-market/internal/features/checkout/ports"
	profiledomain "crafts-market/internal/features/profile/domain"
	profileports "crafts-market/internal/features/profile/ports"

	"go.uber.org/zap"
)

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	orders   ports.OrderRepository
	cart     cartports.CartRepository
	rates    cartports.ShippingRates
	profiles profileports.ProfileRepository
	now      func() time.Time
}

// NewCheckoutService creates a new CheckoutServiceImpl. A nil clock
// defaults to time.Now.
func NewCheckoutService(orders ports.OrderRepository, cart cartports.CartRepository, rates cartports.ShippingRates, profiles profileports.ProfileRepository, now func() time.Time) *CheckoutServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &CheckoutServiceImpl{
		orders:   orders,
		cart:     cart,
		rates:    rates,
		profiles: profiles,
		now:      now,
	}
}

// Submit validates the form, prices the cart, persists the order snapshot
// and empties the cart. An empty cart or invalid field aborts before any
// state changes.
func (s *CheckoutServiceImpl) Submit(ctx context.Context, session string, form domain.CheckoutForm) (*domain.Order, error) {
	cart, err := s.cart.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	now := s.now()
	if fieldErr := form.Validate(now); fieldErr != nil {
		return nil, fieldErr
	}

	method := form.ShippingMethod
	if method == "" {
		method, err = s.cart.LoadShipping(ctx, session)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}
	if method == "" {
		method = s.rates.DefaultMethod()
	}
	fee, err := s.rates.Fee(method)
	if err != nil {
		method = s.rates.DefaultMethod()
		if fee, err = s.rates.Fee(method); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}

	totals := cartdomain.ComputeTotals(cart.Entries, fee)
	order := domain.BuildOrder(form, *cart, domain.Shipping{Method: method, Cost: fee}, totals, now)

	if err := s.orders.SaveCurrent(ctx, session, order); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := s.cart.Clear(ctx, session); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	s.recordOrder(ctx, session, order)

	return &order, nil
}

// recordOrder prepends the placed order to the profile history. The order
// itself is already persisted, so a history failure is logged and swallowed.
func (s *CheckoutServiceImpl) recordOrder(ctx context.Context, session string, order domain.Order) {
	profile, err := s.profiles.Load(ctx, session)
	if err != nil {
		logger.Named("checkout").Warn("Failed to load profile for order history",
			zap.String("session", session), zap.Error(err))
		return
	}
	if profile == nil {
		profile = profiledomain.DefaultProfile()
	}

	profile.RecordOrder(profiledomain.OrderSummary{
		ID:     order.ID,
		Date:   order.CreatedAt,
		Status: order.Status,
		Total:  order.Totals.Total,
	})

	if err := s.profiles.Save(ctx, session, profile); err != nil {
		logger.Named("checkout").Warn("Failed to record order in profile history",
			zap.String("session", session), zap.Error(err))
	}
}

// CurrentOrder returns the latest order snapshot for the session.
func (s *CheckoutServiceImpl) CurrentOrder(ctx context.Context, session string) (*domain.Order, error) {
	order, err := s.orders.LoadCurrent(ctx, session)
	if err != nil {
		return nil, err
	}
	return order, nil
}
