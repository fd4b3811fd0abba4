// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/model"
)

// MessageWriter is implemented by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// BookingConfirmed is the event a downstream mailer consumes.
type BookingConfirmed struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	ChefID     uuid.UUID `json:"chef_id"`
	ChefName   string    `json:"chef_name"`
	MenuName   string    `json:"menu_name"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"total_price"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sent_at"`
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// NewKafkaWriter returns a writer for topic on the given brokers.
func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *KafkaPublisher) SendBookingConfirmation(ctx context.Context, user *model.User, booking *model.Booking, message string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "KafkaPublisher.SendBookingConfirmation")
	defer span.End()

	payload, err := json.Marshal(BookingConfirmed{
		BookingID:  booking.ID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		ChefID:     booking.ChefID,
		ChefName:   booking.ChefName,
		MenuName:   booking.MenuName,
		Date:       booking.Date,
		Time:       booking.Time,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Message:    message,
		SentAt:     time.Now().UTC(),
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.ID.String()),
		Value: payload,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
