package service

import (
	"context"
	"fmt"

	"crafts-market/internal/features/cart/domain"
	"crafts-market/internal/features/cart/ports"

	"github.com/shopspring/decimal"
)

// CartServiceImpl implements ports.CartService: load, mutate through the
// domain invariants, persist. A rejected mutation is never persisted, so
// the stored cart stays consistent.
type CartServiceImpl struct {
	repo  ports.CartRepository
	rates ports.ShippingRates
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.CartRepository, rates ports.ShippingRates) *CartServiceImpl {
	return &CartServiceImpl{
		repo:  repo,
		rates: rates,
	}
}

// Get returns the current cart for a session.
func (s *CartServiceImpl) Get(ctx context.Context, session string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart, nil
}

// Add puts an item in the cart, accumulating quantity for repeat items.
func (s *CartServiceImpl) Add(ctx context.Context, session, itemID, name string, unitPrice decimal.Decimal, imageRef string, qty int) (*domain.Cart, error) {
	return s.mutate(ctx, session, func(cart *domain.Cart) error {
		return cart.Add(itemID, name, unitPrice, imageRef, qty)
	})
}

// Remove deletes the entry at the given position.
func (s *CartServiceImpl) Remove(ctx context.Context, session string, index int) (*domain.Cart, error) {
	return s.mutate(ctx, session, func(cart *domain.Cart) error {
		return cart.Remove(index)
	})
}

// SetQuantity replaces the quantity of the entry at the given position.
func (s *CartServiceImpl) SetQuantity(ctx context.Context, session string, index, qty int) (*domain.Cart, error) {
	return s.mutate(ctx, session, func(cart *domain.Cart) error {
		return cart.SetQuantity(index, qty)
	})
}

func (s *CartServiceImpl) mutate(ctx context.Context, session string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, session, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}

	return cart, nil
}

// SelectShipping validates and persists the shipping method for a session.
func (s *CartServiceImpl) SelectShipping(ctx context.Context, session, method string) error {
	if _, err := s.rates.Fee(method); err != nil {
		return err
	}
	if err := s.repo.SaveShipping(ctx, session, method); err != nil {
		return fmt.Errorf("service: failed to save shipping selection: %w", err)
	}
	return nil
}

// Totals computes the order totals for a session using its selected
// shipping method, falling back to the default method when none was chosen.
func (s *CartServiceImpl) Totals(ctx context.Context, session string) (*domain.Totals, error) {
	cart, err := s.repo.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	fee, err := s.shippingFee(ctx, session)
	if err != nil {
		return nil, err
	}

	totals := domain.ComputeTotals(cart.Entries, fee)
	return &totals, nil
}

// Clear drops the cart for a session.
func (s *CartServiceImpl) Clear(ctx context.Context, session string) error {
	if err := s.repo.Clear(ctx, session); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartServiceImpl) shippingFee(ctx context.Context, session string) (decimal.Decimal, error) {
	method, err := s.repo.LoadShipping(ctx, session)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to load shipping selection: %w", err)
	}
	if method == "" {
		method = s.rates.DefaultMethod()
	}

	fee, err := s.rates.Fee(method)
	if err != nil {
		// A stale selection for a method that no longer exists falls back
		// to the default rather than blocking checkout.
		fee, err = s.rates.Fee(s.rates.DefaultMethod())
		if err != nil {
			return decimal.Zero, fmt.Errorf("service: no usable shipping fee: %w", err)
		}
	}
	return fee, nil
}
