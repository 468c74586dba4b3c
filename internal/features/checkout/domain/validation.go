package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payment method names accepted at checkout.
const (
	PaymentCard = "credit"
	PaymentCash = "cash"
)

// FieldError names the first form field that failed validation.
// Validation is fail-fast: one error is surfaced at a time, the user
// corrects it and resubmits.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CheckoutForm carries the raw customer input from the checkout page.
type CheckoutForm struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Street   string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`

	PaymentMethod string `json:"payment"`
	CardNumber    string `json:"cardnumber,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	CVV           string `json:"cvv,omitempty"`

	ShippingMethod string `json:"shipping,omitempty"`
}

// stripNonDigits drops everything but 0-9.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the input holds at least 10 digits once
// formatting characters are stripped.
func ValidPhone(phone string) bool {
	return len(stripNonDigits(phone)) >= 10
}

// ValidCardNumber reports whether the input holds exactly 16 digits once
// spaces and dashes are stripped.
func ValidCardNumber(cardNumber string) bool {
	return len(stripNonDigits(cardNumber)) == 16
}

// ValidExpiry reports whether the input is MM/YY with a month in [1,12]
// and a year/month pair not strictly before now. Two-digit years compare
// mod 100.
func ValidExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}

	curYear := now.Year() % 100
	curMonth := int(now.Month())
	if year < curYear || (year == curYear && month < curMonth) {
		return false
	}

	return true
}

// ValidCVV reports whether the input is 3 or 4 digits.
func ValidCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	return stripNonDigits(cvv) == cvv
}

// Validate checks the form fail-fast, returning the first failing field.
// Card fields are validated only when the payment method is card.
func (f CheckoutForm) Validate(now time.Time) *FieldError {
	if !ValidPhone(f.Phone) {
		return &FieldError{Field: "phone", Reason: "phone number must have at least 10 digits"}
	}

	if f.PaymentMethod != PaymentCard {
		return nil
	}

	if !ValidCardNumber(f.CardNumber) {
		return &FieldError{Field: "cardnumber", Reason: "card number must have exactly 16 digits"}
	}
	if !ValidExpiry(f.Expiry, now) {
		return &FieldError{Field: "expiry", Reason: "expiry must be a valid MM/YY date not in the past"}
	}
	if !ValidCVV(f.CVV) {
		return &FieldError{Field: "cvv", Reason: "CVV must be 3 or 4 digits"}
	}

	return nil
}
