package service

import (
	"context"
	"errors"
	"testing"

	checkoutdomain "crafts-market/internal/features/checkout/domain"
	"crafts-market/internal/features/invoice/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveCurrent(ctx context.Context, session string, order checkoutdomain.Order) error {
	args := m.Called(ctx, session, order)
	return args.Error(0)
}

func (m *MockOrderRepository) LoadCurrent(ctx context.Context, session string) (*checkoutdomain.Order, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkoutdomain.Order), args.Error(1)
}

func (m *MockOrderRepository) ClearCurrent(ctx context.Context, session string) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, order checkoutdomain.Order) ([]byte, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestPDF(t *testing.T) {
	ctx := context.Background()
	order := checkoutdomain.Order{ID: "ORD-ABCD1234"}

	t.Run("Success", func(t *testing.T) {
		orders := new(MockOrderRepository)
		exporter := new(MockExporter)

		orders.On("LoadCurrent", ctx, "s1").Return(&order, nil).Once()
		exporter.On("Export", ctx, order).Return([]byte("%PDF-1.4"), nil).Once()

		svc := NewInvoiceService(orders, exporter)
		pdf, err := svc.PDF(ctx, "s1")

		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), pdf)
		orders.AssertExpectations(t)
		exporter.AssertExpectations(t)
	})

	t.Run("NoOrderPassesThrough", func(t *testing.T) {
		orders := new(MockOrderRepository)
		exporter := new(MockExporter)

		orders.On("LoadCurrent", ctx, "s1").Return(nil, checkoutdomain.ErrNoOrder).Once()

		svc := NewInvoiceService(orders, exporter)
		_, err := svc.PDF(ctx, "s1")

		assert.ErrorIs(t, err, checkoutdomain.ErrNoOrder)
		exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})

	t.Run("ExportFailureIsRetryable", func(t *testing.T) {
		orders := new(MockOrderRepository)
		exporter := new(MockExporter)

		orders.On("LoadCurrent", ctx, "s1").Return(&order, nil).Once()
		exporter.On("Export", ctx, order).Return(nil, errors.New("browser crashed")).Once()

		svc := NewInvoiceService(orders, exporter)
		_, err := svc.PDF(ctx, "s1")

		assert.ErrorIs(t, err, domain.ErrExportUnavailable)
	})
}
