package service

import (
	"context"
	"fmt"

	"crafts-market/internal/features/catalog/domain"
	"crafts-market/internal/features/catalog/ports"
)

// CatalogServiceImpl implements ports.CatalogService.
type CatalogServiceImpl struct {
	source ports.CatalogSource
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(source ports.CatalogSource) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		source: source,
	}
}

// Browse filters and sorts the catalog snapshot against the given criteria.
// The pipeline is built from pure functions, so concurrent calls never
// contend over shared state.
func (s *CatalogServiceImpl) Browse(ctx context.Context, criteria domain.Criteria, key domain.SortKey) (*domain.Result, error) {
	items, err := s.source.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load catalog: %w", err)
	}

	visible := domain.Apply(items, criteria)
	visible = domain.SortItems(visible, key)

	return &domain.Result{
		Total: len(items),
		Count: len(visible),
		Items: visible,
	}, nil
}
