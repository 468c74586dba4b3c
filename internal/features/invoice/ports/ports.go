package ports

import (
	"context"

	checkoutdomain "crafts-market/internal/features/checkout/domain"
)

// InvoiceService renders the session's current order as a PDF invoice.
type InvoiceService interface {
	PDF(ctx context.Context, session string) ([]byte, error)
}

// Exporter turns an order snapshot into a PDF document.
type Exporter interface {
	Export(ctx context.Context, order checkoutdomain.Order) ([]byte, error)
}
