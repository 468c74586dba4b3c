package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cartdomain "crafts-market/internal/features/cart/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Card payments settle immediately, cash on delivery
// stays pending until handed over.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

var (
	// ErrEmptyCart rejects a checkout submitted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoOrder signals that no order snapshot exists for the session.
	ErrNoOrder = errors.New("no current order")
)

// Address is the delivery address captured at checkout.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Customer identifies who placed the order.
type Customer struct {
	FullName string  `json:"fullname"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
}

// Payment records how the order was paid. Only the last four card
// digits survive into the snapshot.
type Payment struct {
	Method    string `json:"method"`
	CardLast4 string `json:"card_last4,omitempty"`
	Expiry    string `json:"expiry,omitempty"`
}

// Shipping records the chosen delivery method and its cost.
type Shipping struct {
	Method string          `json:"method"`
	Cost   decimal.Decimal `json:"cost"`
}

// OrderLine is an immutable copy of a cart entry at checkout time.
type OrderLine struct {
	ItemID    string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Order is the snapshot persisted when a checkout succeeds.
type Order struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Status    string            `json:"status"`
	Customer  Customer          `json:"customer"`
	Payment   Payment           `json:"payment"`
	Shipping  Shipping          `json:"shipping"`
	Lines     []OrderLine       `json:"lines"`
	Totals    cartdomain.Totals `json:"totals"`
}

// MaskCard keeps the last four digits of a card number.
func MaskCard(cardNumber string) string {
	digits := stripNonDigits(cardNumber)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// NewOrderID builds an order reference like ORD-5F3A2B1C.
func NewOrderID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%s", raw[:8])
}

// BuildOrder assembles the snapshot from a validated form, the cart
// contents and the computed totals.
func BuildOrder(form CheckoutForm, cart cartdomain.Cart, shipping Shipping, totals cartdomain.Totals, now time.Time) Order {
	status := StatusPending
	payment := Payment{Method: form.PaymentMethod}
	if form.PaymentMethod == PaymentCard {
		status = StatusPaid
		payment.CardLast4 = MaskCard(form.CardNumber)
		payment.Expiry = form.Expiry
	}

	lines := make([]OrderLine, 0, len(cart.Entries))
	for _, e := range cart.Entries {
		lines = append(lines, OrderLine{
			ItemID:    e.ItemID,
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal(),
		})
	}

	return Order{
		ID:        NewOrderID(),
		CreatedAt: now,
		Status:    status,
		Customer: Customer{
			FullName: form.FullName,
			Phone:    form.Phone,
			Email:    form.Email,
			Address: Address{
				Street:  form.Street,
				City:    form.City,
				Country: form.Country,
				Zip:     form.Zip,
			},
		},
		Payment:  payment,
		Shipping: shipping,
		Lines:    lines,
		Totals:   totals,
	}
}
