package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cartdomain "crafts-market/internal/features/cart/domain"
	"crafts-market/internal/features/checkout/domain"
	profiledomain "crafts-market/internal/features/profile/domain"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveCurrent(ctx context.Context, session string, order domain.Order) error {
	args := m.Called(ctx, session, order)
	return args.Error(0)
}

func (m *MockOrderRepository) LoadCurrent(ctx context.Context, session string) (*domain.Order, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ClearCurrent(ctx context.Context, session string) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Load(ctx context.Context, session string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, session string, cart *cartdomain.Cart) error {
	args := m.Called(ctx, session, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, session string) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockCartRepository) SaveShipping(ctx context.Context, session, method string) error {
	args := m.Called(ctx, session, method)
	return args.Error(0)
}

func (m *MockCartRepository) LoadShipping(ctx context.Context, session string) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Load(ctx context.Context, session string) (*profiledomain.Profile, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiledomain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, session string, profile *profiledomain.Profile) error {
	args := m.Called(ctx, session, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SaveLoggedIn(ctx context.Context, session string, loggedIn bool) error {
	args := m.Called(ctx, session, loggedIn)
	return args.Error(0)
}

func (m *MockProfileRepository) LoadLoggedIn(ctx context.Context, session string) (bool, error) {
	args := m.Called(ctx, session)
	return args.Bool(0), args.Error(1)
}

type MockShippingRates struct {
	mock.Mock
}

func (m *MockShippingRates) Fee(method string) (decimal.Decimal, error) {
	args := m.Called(method)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockShippingRates) DefaultMethod() string {
	args := m.Called()
	return args.String(0)
}

var testClock = func() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FullName:      "Jane Potter",
		Phone:         "3001234567",
		Email:         "jane@example.com",
		Street:        "Calle 10 #5-51",
		City:          "Bogota",
		Country:       "CO",
		Zip:           "110111",
		PaymentMethod: domain.PaymentCard,
		CardNumber:    "4111111111111111",
		Expiry:        "12/30",
		CVV:           "123",
	}
}

func loadedCart() *cartdomain.Cart {
	return &cartdomain.Cart{Entries: []cartdomain.Entry{
		{ItemID: "vase-1", Name: "Blue Vase", UnitPrice: decimal.RequireFromString("12.50"), ImageRef: "vase.jpg", Quantity: 2},
	}}
}

// newRelaxedProfiles accepts history writes without asserting on them.
func newRelaxedProfiles(ctx context.Context) *MockProfileRepository {
	profiles := new(MockProfileRepository)
	profiles.On("Load", ctx, "s1").Return(nil, nil).Maybe()
	profiles.On("Save", ctx, "s1", mock.AnythingOfType("*domain.Profile")).Return(nil).Maybe()
	return profiles
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	standardFee := decimal.RequireFromString("15.00")

	t.Run("Success", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()
		cart.On("LoadShipping", ctx, "s1").Return("standard", nil).Once()
		rates.On("Fee", "standard").Return(standardFee, nil).Once()
		orders.On("SaveCurrent", ctx, "s1", mock.AnythingOfType("domain.Order")).Return(nil).Once()
		cart.On("Clear", ctx, "s1").Return(nil).Once()

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		order, err := svc.Submit(ctx, "s1", validForm())

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, order.Status)
		assert.Equal(t, "1111", order.Payment.CardLast4)
		assert.Equal(t, "standard", order.Shipping.Method)
		assert.True(t, order.Totals.Total.Equal(decimal.RequireFromString("42.1625")))
		orders.AssertExpectations(t)
		cart.AssertExpectations(t)
		rates.AssertExpectations(t)
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(&cartdomain.Cart{}, nil).Once()

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		_, err := svc.Submit(ctx, "s1", validForm())

		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		orders.AssertNotCalled(t, "SaveCurrent", mock.Anything, mock.Anything, mock.Anything)
		cart.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("InvalidFieldAbortsBeforePersist", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()

		form := validForm()
		form.Expiry = "01/20"

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		_, err := svc.Submit(ctx, "s1", form)

		var fieldErr *domain.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "expiry", fieldErr.Field)
		orders.AssertNotCalled(t, "SaveCurrent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoSelectionUsesDefaultMethod", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()
		cart.On("LoadShipping", ctx, "s1").Return("", nil).Once()
		rates.On("DefaultMethod").Return("standard").Once()
		rates.On("Fee", "standard").Return(standardFee, nil).Once()
		orders.On("SaveCurrent", ctx, "s1", mock.AnythingOfType("domain.Order")).Return(nil).Once()
		cart.On("Clear", ctx, "s1").Return(nil).Once()

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		order, err := svc.Submit(ctx, "s1", validForm())

		require.NoError(t, err)
		assert.Equal(t, "standard", order.Shipping.Method)
	})

	t.Run("FormOverridesStoredSelection", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()
		rates.On("Fee", "express").Return(decimal.RequireFromString("25.00"), nil).Once()
		orders.On("SaveCurrent", ctx, "s1", mock.AnythingOfType("domain.Order")).Return(nil).Once()
		cart.On("Clear", ctx, "s1").Return(nil).Once()

		form := validForm()
		form.ShippingMethod = "express"

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		order, err := svc.Submit(ctx, "s1", form)

		require.NoError(t, err)
		assert.Equal(t, "express", order.Shipping.Method)
		assert.True(t, order.Shipping.Cost.Equal(decimal.RequireFromString("25")))
		cart.AssertNotCalled(t, "LoadShipping", mock.Anything, mock.Anything)
	})

	t.Run("SaveErrorLeavesCartIntact", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := newRelaxedProfiles(ctx)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()
		cart.On("LoadShipping", ctx, "s1").Return("standard", nil).Once()
		rates.On("Fee", "standard").Return(standardFee, nil).Once()
		orders.On("SaveCurrent", ctx, "s1", mock.AnythingOfType("domain.Order")).Return(errors.New("store down")).Once()

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		_, err := svc.Submit(ctx, "s1", validForm())

		assert.Error(t, err)
		cart.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("OrderRecordedInProfileHistory", func(t *testing.T) {
		orders := new(MockOrderRepository)
		cart := new(MockCartRepository)
		rates := new(MockShippingRates)
		profiles := new(MockProfileRepository)

		cart.On("Load", ctx, "s1").Return(loadedCart(), nil).Once()
		cart.On("LoadShipping", ctx, "s1").Return("standard", nil).Once()
		rates.On("Fee", "standard").Return(standardFee, nil).Once()
		orders.On("SaveCurrent", ctx, "s1", mock.AnythingOfType("domain.Order")).Return(nil).Once()
		cart.On("Clear", ctx, "s1").Return(nil).Once()

		profiles.On("Load", ctx, "s1").Return(&profiledomain.Profile{}, nil).Once()
		profiles.On("Save", ctx, "s1", mock.MatchedBy(func(p *profiledomain.Profile) bool {
			return len(p.Orders) == 1 && p.Orders[0].Status == domain.StatusPaid
		})).Return(nil).Once()

		svc := NewCheckoutService(orders, cart, rates, profiles, testClock)
		order, err := svc.Submit(ctx, "s1", validForm())

		require.NoError(t, err)
		assert.NotNil(t, order)
		profiles.AssertExpectations(t)
	})
}

func TestCurrentOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("LoadCurrent", ctx, "s1").Return(&domain.Order{ID: "ORD-ABCD1234"}, nil).Once()

		svc := NewCheckoutService(orders, new(MockCartRepository), new(MockShippingRates), new(MockProfileRepository), testClock)
		order, err := svc.CurrentOrder(ctx, "s1")

		require.NoError(t, err)
		assert.Equal(t, "ORD-ABCD1234", order.ID)
	})

	t.Run("NoOrder", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("LoadCurrent", ctx, "s1").Return(nil, domain.ErrNoOrder).Once()

		svc := NewCheckoutService(orders, new(MockCartRepository), new(MockShippingRates), new(MockProfileRepository), testClock)
		_, err := svc.CurrentOrder(ctx, "s1")

		assert.ErrorIs(t, err, domain.ErrNoOrder)
	})
}
