// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package payment

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrCardholderRequired = errors.New("cardholder name is required")
	ErrDeclined           = errors.New("your card was declined")
)

// DeclinedTestMethod is the Stripe test payment method that always fails.
const DeclinedTestMethod = "pm_card_chargeDeclined"

// Card is what the browser hands over after tokenizing the card with Stripe
// Elements. Raw card numbers never reach the server.
type Card struct {
	Cardholder    string `json:"cardholder"`
	PaymentMethod string `json:"payment_method"`
}

type Token struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Error is a payment failure the user can fix and retry.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code == "" {
		return "payment failed: " + e.Err.Error()
	}
	return "payment failed (" + e.Code + "): " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func validate(amount float64, card Card) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &Error{Code: "invalid_amount", Err: ErrInvalidAmount}
	}
	if strings.TrimSpace(card.Cardholder) == "" {
		return &Error{Code: "cardholder_required", Err: ErrCardholderRequired}
	}
	return nil
}

// minorUnits converts an amount to the smallest currency unit.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
