package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Criteria holds the filter constraints applied to the catalog.
// An empty field means "no constraint", so the zero value is the
// identity filter.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the item name.
	Search string
	// Categories restricts items to the listed categories. Empty = any.
	Categories []string
	// MinRatings admits an item whose rating is >= ANY listed minimum
	// (a union across thresholds, not an intersection).
	MinRatings []int
	// Tags admits an item carrying ANY of the listed tags.
	Tags []string
	// PriceMin and PriceMax bound the item price inclusively.
	// Both zero = unconstrained.
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
}

// Normalize returns the criteria with an inverted price range repaired:
// when min > max the lower bound is clamped down to the upper rather
// than the criteria being rejected.
func (c Criteria) Normalize() Criteria {
	if c.hasPriceRange() && c.PriceMin.GreaterThan(c.PriceMax) {
		c.PriceMin = c.PriceMax
	}
	return c
}

func (c Criteria) hasPriceRange() bool {
	return !c.PriceMin.IsZero() || !c.PriceMax.IsZero()
}

// Matches reports whether the item satisfies every constraint.
func (c Criteria) Matches(item Item) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(c.Search)) {
		return false
	}

	if len(c.Categories) > 0 && !contains(c.Categories, item.Category) {
		return false
	}

	if len(c.MinRatings) > 0 && !c.matchesRating(item.Rating) {
		return false
	}

	if len(c.Tags) > 0 && !c.matchesTags(item) {
		return false
	}

	if c.hasPriceRange() {
		if item.Price.LessThan(c.PriceMin) || item.Price.GreaterThan(c.PriceMax) {
			return false
		}
	}

	return true
}

func (c Criteria) matchesRating(rating float64) bool {
	for _, min := range c.MinRatings {
		if rating >= float64(min) {
			return true
		}
	}
	return false
}

func (c Criteria) matchesTags(item Item) bool {
	for _, tag := range c.Tags {
		if item.HasTag(tag) {
			return true
		}
	}
	return false
}

// Apply returns the order-preserving subset of items matching the criteria.
// Pure: the input slice is never mutated. Malformed records are silently
// excluded rather than failing the pass.
func Apply(items []Item, criteria Criteria) []Item {
	criteria = criteria.Normalize()

	result := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Valid() {
			continue
		}
		if criteria.Matches(item) {
			result = append(result, item)
		}
	}
	return result
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
