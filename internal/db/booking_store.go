// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/model"
)

type BookingStore interface {
	ListBookings(context.Context) ([]*model.Booking, error)
	// ListBookingsByUser returns the user's bookings, newest first.
	ListBookingsByUser(context.Context, uuid.UUID) ([]*model.Booking, error)
	ListBookingsByChef(context.Context, uuid.UUID) ([]*model.Booking, error)
	CreateBooking(context.Context, *model.Booking) error
}

// NewestFirst orders bookings by creation time, most recent first.
func NewestFirst(bookings []*model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
