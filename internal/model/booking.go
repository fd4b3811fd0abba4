// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus int

const (
	BookingStatusPending BookingStatus = iota
	BookingStatusConfirmed
	BookingStatusCompleted
	BookingStatusCancelled
	BookingStatusRefunded
)

var bookingStatusNames = map[BookingStatus]string{
	BookingStatusPending:   "PENDING",
	BookingStatusConfirmed: "CONFIRMED",
	BookingStatusCompleted: "COMPLETED",
	BookingStatusCancelled: "CANCELLED",
	BookingStatusRefunded:  "REFUNDED",
}

func (s BookingStatus) String() string {
	if n, ok := bookingStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("BookingStatus(%d)", int(s))
}

func (s BookingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BookingStatus) UnmarshalText(b []byte) error {
	in := strings.ToUpper(strings.TrimSpace(string(b)))
	for status, name := range bookingStatusNames {
		if name == in {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown booking status %q", string(b))
}

// Booking is the immutable record of a completed purchase. Chef and menu
// names are copied at booking time so later edits never rewrite history.
type Booking struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	ChefID     uuid.UUID     `json:"chef_id"`
	ChefName   string        `json:"chef_name"`
	ChefImage  string        `json:"chef_image"`
	MenuName   string        `json:"menu_name"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	Guests     int           `json:"guests"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

type BookingDetails struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Notes  string `json:"notes,omitempty"`
}

func (d BookingDetails) Validate() error {
	if d.Guests < 1 {
		return fmt.Errorf("%w: at least one guest is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(d.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(d.Time) == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidBooking)
	}
	return nil
}

// TotalPrice is the per-head price times the guest count at currency precision.
func TotalPrice(pricePerHead float64, guests int) float64 {
	return math.Round(pricePerHead*float64(guests)*100) / 100
}

func NewBooking(user *User, chef *Chef, menu *Menu, details BookingDetails, now time.Time) *Booking {
	return &Booking{
		ID:         uuid.New(),
		UserID:     user.ID,
		ChefID:     chef.ID,
		ChefName:   chef.Name,
		ChefImage:  chef.ImageURL,
		MenuName:   menu.Name,
		Date:       details.Date,
		Time:       details.Time,
		Guests:     details.Guests,
		TotalPrice: TotalPrice(menu.PricePerHead, details.Guests),
		Status:     BookingStatusConfirmed,
		Notes:      details.Notes,
		CreatedAt:  now.UTC(),
	}
}
