package ports

import (
	"context"

	"crafts-market/internal/features/catalog/domain"
)

// CatalogService defines the primary port for browsing the catalog.
type CatalogService interface {
	Browse(ctx context.Context, criteria domain.Criteria, key domain.SortKey) (*domain.Result, error)
}

// CatalogSource defines the secondary port supplying the fixed item set.
type CatalogSource interface {
	// Items returns the current catalog snapshot. Implementations must
	// return a slice the caller is free to keep; subsequent reloads must
	// not mutate it.
	Items(ctx context.Context) ([]domain.Item, error)
}
