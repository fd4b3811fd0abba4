// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/payment"
)

// SubmitBooking charges the card and records the booking for the focused
// menu. Only one submission runs at a time, a second one is rejected with
// ErrBookingInFlight. Payment failures leave the flow open for a retry.
func (c *Controller) SubmitBooking(ctx context.Context, details model.BookingDetails, card payment.Card) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.SubmitBooking")
	defer span.End()

	if !c.booking.CompareAndSwap(false, true) {
		span.AddEvent("submission rejected, booking in flight")
		return c.Snapshot(), ErrBookingInFlight
	}
	defer c.booking.Store(false)

	if err := details.Validate(); err != nil {
		return c.set(func(s State) State { return bookingFailed(s, err.Error()) }), err
	}
	s, err := c.update(beginBooking)
	if err != nil {
		return s, err
	}

	booking := model.NewBooking(s.Session, s.Focus.Chef, s.Focus.Menu, details, c.deps.Now())
	span.SetAttributes(
		attribute.String("booking", booking.ID.String()),
		attribute.Float64("amount", booking.TotalPrice),
	)

	if _, err := c.deps.Payment.Charge(ctx, booking.TotalPrice, card); err != nil {
		notice := err.Error()
		var perr *payment.Error
		if errors.As(err, &perr) {
			notice = perr.Err.Error()
		}
		c.logger.InfoContext(ctx, "payment failed", "booking", booking.ID, "error", err)
		return c.set(func(s State) State { return bookingFailed(s, notice) }), fail(span, err)
	}

	if err := c.deps.Store.CreateBooking(ctx, booking); err != nil {
		c.logger.ErrorContext(ctx, "charged but could not store booking", "booking", booking.ID, "error", err)
		return c.set(func(s State) State { return bookingFailed(s, noticeSaveFailed) }), fail(span, err)
	}

	msg := c.deps.Advisor.ConfirmationMessage(ctx, booking.ChefName, booking.MenuName, booking.Guests, booking.Date, booking.Time)
	if msg.Degraded {
		span.AddEvent("confirmation message degraded")
	}
	c.notify(ctx, s.Session, booking, msg.Value)

	return c.set(func(s State) State { return bookingConfirmed(s, booking, msg.Value) }), nil
}

// notify hands the confirmation to the notifier in the background. Failures
// are logged and never reach the user.
func (c *Controller) notify(ctx context.Context, user *model.User, booking *model.Booking, message string) {
	if c.deps.Notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.deps.Notifier.SendBookingConfirmation(ctx, user, booking, message); err != nil {
			c.logger.WarnContext(ctx, "booking confirmation not sent", "booking", booking.ID, "error", err)
		}
	}()
}
