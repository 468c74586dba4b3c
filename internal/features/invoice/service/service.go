package service

import (
	"context"
	"errors"
	"fmt"

	checkoutdomain "crafts-market/internal/features/checkout/domain"
	checkoutports "crafts-market/internal/features/checkout/ports"
	"crafts-market/internal/features/invoice/domain"
	"crafts-market/internal/features/invoice/ports"
)

// InvoiceServiceImpl implements ports.InvoiceService.
type InvoiceServiceImpl struct {
	orders   checkoutports.OrderRepository
	exporter ports.Exporter
}

// NewInvoiceService creates a new InvoiceServiceImpl.
func NewInvoiceService(orders checkoutports.OrderRepository, exporter ports.Exporter) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		orders:   orders,
		exporter: exporter,
	}
}

// PDF renders the session's current order as a PDF. A rendering failure is
// reported as domain.ErrExportUnavailable so callers can retry; the missing
// order case passes through unchanged.
func (s *InvoiceServiceImpl) PDF(ctx context.Context, session string) ([]byte, error) {
	order, err := s.orders.LoadCurrent(ctx, session)
	if err != nil {
		if errors.Is(err, checkoutdomain.ErrNoOrder) {
			return nil, err
		}
		return nil, fmt.Errorf("service: %w", err)
	}

	pdf, err := s.exporter.Export(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportUnavailable, err)
	}
	return pdf, nil
}
