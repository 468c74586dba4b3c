package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a purchasable craft listing.
// The set of items is fixed for the lifetime of a catalog snapshot.
type Item struct {
	// ID is the unique identifier for the craft.
	ID string `json:"id"`
	// Name is the display name of the craft.
	Name string `json:"name"`
	// Category is the craft category (e.g., Pottery, Woodwork).
	Category string `json:"category"`
	// Price is the unit price. Never negative for a valid item.
	Price decimal.Decimal `json:"price"`
	// Rating is the average customer rating in [0,5].
	Rating float64 `json:"rating"`
	// Tags are free-form labels (e.g., handmade, eco-friendly).
	Tags []string `json:"tags,omitempty"`
	// ImageRef is the image reference shown on cards and in the cart.
	ImageRef string `json:"image"`
	// CreatedAt is when the listing was added. Drives the "newest" sort.
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the item record is well-formed.
// Malformed records are excluded from filter results rather than
// aborting the whole pass.
func (i Item) Valid() bool {
	if i.ID == "" || i.Name == "" {
		return false
	}
	if i.Price.IsNegative() {
		return false
	}
	if i.Rating < 0 || i.Rating > 5 {
		return false
	}
	return true
}

// HasTag reports whether the item carries the given tag.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
