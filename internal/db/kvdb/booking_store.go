// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

const bucketBooking = "booking_store"

func NewBookingStore(bdb *bolt.DB) (*BookingStore, error) {
	return &BookingStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBooking))
		return err
	})
}

type BookingStore struct {
	db *bolt.DB
}

func (b *BookingStore) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookings")
	defer span.End()

	return b.filter(span, func(*model.Booking) bool { return true })
}

func (b *BookingStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookingsByUser", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	res, err := b.filter(span, func(booking *model.Booking) bool { return booking.UserID == userID })
	if err != nil {
		return nil, err
	}
	db.NewestFirst(res)
	return res, nil
}

func (b *BookingStore) ListBookingsByChef(ctx context.Context, chefID uuid.UUID) ([]*model.Booking, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListBookingsByChef", trace.WithAttributes(attribute.String("chef.id", chefID.String())))
	defer span.End()

	return b.filter(span, func(booking *model.Booking) bool { return booking.ChefID == chefID })
}

func (b *BookingStore) filter(span trace.Span, keep func(*model.Booking) bool) ([]*model.Booking, error) {
	span.AddEvent("View bucket")
	var res []*model.Booking
	err := b.db.View(func(tx *bolt.Tx) error {
		all, err := listBucket[model.Booking](tx, bucketBooking)
		if err != nil {
			return err
		}
		for _, booking := range all {
			if keep(booking) {
				res = append(res, booking)
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}

// CreateBooking stores a new booking. Bookings are immutable, an existing id
// is rejected.
func (b *BookingStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateBooking")
	defer span.End()

	if booking.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		booking.ID = uuid.New()
	}

	j, err := json.Marshal(booking)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.AddEvent("Update bucket")
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketBooking))
		if bucket.Get(booking.ID[:]) != nil {
			err := fmt.Errorf("booking %s: %w", booking.ID, db.ErrAlreadyExists)
			span.RecordError(err)
			return err
		}
		return bucket.Put(booking.ID[:], j)
	})
}
