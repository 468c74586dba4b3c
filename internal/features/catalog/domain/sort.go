package domain

import "sort"

// SortKey enumerates the supported catalog orderings.
type SortKey string

const (
	// SortPopularity keeps the source ordering.
	SortPopularity SortKey = "popularity"
	// SortPriceAsc orders by price, cheapest first.
	SortPriceAsc SortKey = "price-asc"
	// SortPriceDesc orders by price, most expensive first.
	SortPriceDesc SortKey = "price-desc"
	// SortRatingDesc orders by rating, best first.
	SortRatingDesc SortKey = "rating-desc"
	// SortNewest orders by listing date, most recent first.
	SortNewest SortKey = "newest"
)

// ParseSortKey maps a request string to a SortKey.
// Unknown values fall back to popularity.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest:
		return SortKey(s)
	default:
		return SortPopularity
	}
}

// SortItems returns a sorted copy of items. Every key sorts stably, so
// equally-ranked items keep their relative source order.
func SortItems(items []Item, key SortKey) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.GreaterThan(sorted[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortPopularity:
		// Source order is the popularity order.
	}

	return sorted
}
