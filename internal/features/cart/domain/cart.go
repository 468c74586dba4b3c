package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Quantity bounds enforced on every mutation.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

var (
	// ErrInvalidEntry is returned when an entry is missing required fields
	// or carries a non-positive unit price.
	ErrInvalidEntry = errors.New("invalid cart entry")
	// ErrIndexOutOfRange is returned when an entry index does not exist.
	ErrIndexOutOfRange = errors.New("cart index out of range")
	// ErrInvalidQuantity is returned when a quantity is outside [1,10].
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
)

// Entry is one line item in a pending order.
type Entry struct {
	// ItemID is the catalog identifier of the craft.
	ItemID string `json:"id"`
	// Name is the craft display name, captured at add time.
	Name string `json:"name"`
	// UnitPrice is the price per unit, captured at add time.
	UnitPrice decimal.Decimal `json:"price"`
	// ImageRef is the craft image reference.
	ImageRef string `json:"image"`
	// Quantity is the number of units, always within [1,10].
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (e Entry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is an ordered sequence of entries; insertion order is display order.
// Invariants held after every mutation: no two entries share an ItemID, and
// every quantity is within [1,10]. A rejected mutation leaves the cart
// untouched.
type Cart struct {
	Entries []Entry `json:"entries"`
}

// Add appends a new entry, or increments the quantity of the entry with the
// same ItemID. Quantities accumulate but clamp at MaxQuantity.
func (c *Cart) Add(itemID, name string, unitPrice decimal.Decimal, imageRef string, qty int) error {
	if itemID == "" || name == "" || imageRef == "" || !unitPrice.IsPositive() {
		return ErrInvalidEntry
	}
	if qty < MinQuantity {
		qty = MinQuantity
	}
	if qty > MaxQuantity {
		qty = MaxQuantity
	}

	for i := range c.Entries {
		if c.Entries[i].ItemID == itemID {
			q := c.Entries[i].Quantity + qty
			if q > MaxQuantity {
				q = MaxQuantity
			}
			c.Entries[i].Quantity = q
			return nil
		}
	}

	c.Entries = append(c.Entries, Entry{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		ImageRef:  imageRef,
		Quantity:  qty,
	})
	return nil
}

// Remove deletes the entry at the given position.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Entries) {
		return ErrIndexOutOfRange
	}
	c.Entries = append(c.Entries[:index], c.Entries[index+1:]...)
	return nil
}

// SetQuantity replaces the quantity of the entry at the given position.
func (c *Cart) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(c.Entries) {
		return ErrIndexOutOfRange
	}
	if qty < MinQuantity || qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.Entries[index].Quantity = qty
	return nil
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}
