// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func NewBookingStore(filename string) (*BookingStore, error) {
	bookings, err := newCollection[model.Booking](filename, nil)
	if err != nil {
		return nil, err
	}
	return &BookingStore{bookings: bookings}, nil
}

type BookingStore struct {
	bookings *collection[model.Booking]
}

func (b *BookingStore) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookings")
	defer span.End()

	return b.bookings.snapshot(span, nil)
}

func (b *BookingStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookingsByUser")
	defer span.End()

	res, err := b.bookings.snapshot(span, func(booking *model.Booking) bool { return booking.UserID == userID })
	if err != nil {
		return nil, err
	}
	db.NewestFirst(res)
	return res, nil
}

func (b *BookingStore) ListBookingsByChef(ctx context.Context, chefID uuid.UUID) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookingsByChef")
	defer span.End()

	return b.bookings.snapshot(span, func(booking *model.Booking) bool { return booking.ChefID == chefID })
}

func (b *BookingStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateBooking")
	defer span.End()

	if booking.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		booking.ID = uuid.New()
	}
	stored := *booking
	return b.bookings.update(ctx, span, func(bookings []*model.Booking) ([]*model.Booking, error) {
		for _, existing := range bookings {
			if existing.ID == booking.ID {
				return nil, fmt.Errorf("booking %s: %w", booking.ID, db.ErrAlreadyExists)
			}
		}
		return append(bookings, &stored), nil
	})
}
