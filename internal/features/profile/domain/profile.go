package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAddress rejects an address missing street or city.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidPaymentMethod rejects a card without enough digits.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrIndexOutOfRange rejects a position that has no entry.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Address is a saved delivery address on the profile.
type Address struct {
	Label   string `json:"label,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Valid reports whether the address can be saved.
func (a Address) Valid() bool {
	return a.Street != "" && a.City != ""
}

// PaymentMethod is a saved card. Only the last four digits are kept.
type PaymentMethod struct {
	Type   string `json:"type"`
	Last4  string `json:"last4"`
	Expiry string `json:"expiry"`
}

// OrderSummary is a line in the profile's order history.
type OrderSummary struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
}

// Profile is the account state shown on the profile page.
type Profile struct {
	FullName       string          `json:"fullname"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Orders         []OrderSummary  `json:"orders"`
}

// DefaultProfile is the seed account a fresh session sees before any edits.
func DefaultProfile() *Profile {
	return &Profile{
		FullName: "John Doe",
		Email:    "john.doe@example.com",
		Phone:    "3125550142",
		Addresses: []Address{
			{Label: "Home", Street: "123 Main Street", City: "Springfield", Country: "US", Zip: "62704"},
		},
		PaymentMethods: []PaymentMethod{
			{Type: "visa", Last4: "4242", Expiry: "09/27"},
		},
		Orders: []OrderSummary{
			{
				ID:     "ORD-5F3A2B1C",
				Date:   time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
				Status: "paid",
				Total:  decimal.RequireFromString("86.45"),
			},
		},
	}
}

// AddAddress appends a validated address.
func (p *Profile) AddAddress(addr Address) error {
	if !addr.Valid() {
		return ErrInvalidAddress
	}
	p.Addresses = append(p.Addresses, addr)
	return nil
}

// RemoveAddress deletes the address at the given position.
func (p *Profile) RemoveAddress(index int) error {
	if index < 0 || index >= len(p.Addresses) {
		return ErrIndexOutOfRange
	}
	p.Addresses = append(p.Addresses[:index], p.Addresses[index+1:]...)
	return nil
}

// AddPaymentMethod appends a card, keeping only its last four digits.
func (p *Profile) AddPaymentMethod(cardType, cardNumber, expiry string) error {
	last4 := maskLast4(cardNumber)
	if len(last4) != 4 {
		return ErrInvalidPaymentMethod
	}
	p.PaymentMethods = append(p.PaymentMethods, PaymentMethod{
		Type:   cardType,
		Last4:  last4,
		Expiry: expiry,
	})
	return nil
}

// RemovePaymentMethod deletes the card at the given position.
func (p *Profile) RemovePaymentMethod(index int) error {
	if index < 0 || index >= len(p.PaymentMethods) {
		return ErrIndexOutOfRange
	}
	p.PaymentMethods = append(p.PaymentMethods[:index], p.PaymentMethods[index+1:]...)
	return nil
}

// RecordOrder prepends a placed order to the history, newest first.
func (p *Profile) RecordOrder(summary OrderSummary) {
	p.Orders = append([]OrderSummary{summary}, p.Orders...)
}

func maskLast4(cardNumber string) string {
	var digits []rune
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
