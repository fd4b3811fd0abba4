// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/model"
)

func testBooking() (*model.User, *model.Booking) {
	user := &model.User{ID: uuid.New(), Name: "Ada Lovelace", Email: "ada@example.com"}
	return user, &model.Booking{
		ID:         uuid.New(),
		UserID:     user.ID,
		ChefID:     uuid.New(),
		ChefName:   "Kenji Tanaka",
		MenuName:   "Edomae Omakase",
		Date:       "2024-06-14",
		Time:       "19:00",
		Guests:     4,
		TotalPrice: 800,
	}
}

func TestRenderConfirmation(t *testing.T) {
	user, booking := testBooking()
	body, err := RenderConfirmation(user, booking, "See you soon.")
	require.NoError(t, err)

	for _, want := range []string{
		"To:      Ada Lovelace <ada@example.com>",
		"Subject: Booking Confirmed: Edomae Omakase with Chef Kenji Tanaka",
		"See you soon.",
		"Guests:  4 people",
		"Total:   800.00",
	} {
		assert.Contains(t, body, want)
	}
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (r *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	user, booking := testBooking()
	w := &recordingWriter{}
	require.NoError(t, NewKafkaPublisher(w).SendBookingConfirmation(context.Background(), user, booking, "hello"))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, booking.ID.String(), string(w.msgs[0].Key))
	var event BookingConfirmed
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, "ada@example.com", event.UserEmail)
	assert.Equal(t, 800.0, event.TotalPrice)
	assert.Equal(t, "hello", event.Message)
}

func TestMultiJoinsErrors(t *testing.T) {
	user, booking := testBooking()
	boom := errors.New("broker down")
	ok := &recordingWriter{}
	m := Multi{NewConsole(), NewKafkaPublisher(&recordingWriter{err: boom}), NewKafkaPublisher(ok)}

	err := m.SendBookingConfirmation(context.Background(), user, booking, "hi")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.msgs, 1)
	assert.NoError(t, Multi{}.SendBookingConfirmation(context.Background(), user, booking, "hi"))
}
