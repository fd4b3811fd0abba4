// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Stripe confirms a PaymentIntent for the tokenized payment method right away.
type Stripe struct {
	api      *client.API
	currency string
}

func NewStripe(secretKey, currency string, backends *stripe.Backends) *Stripe {
	return &Stripe{api: client.New(secretKey, backends), currency: strings.ToLower(currency)}
}

func (s *Stripe) Charge(ctx context.Context, amount float64, card Card) (*Token, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Stripe.Charge", trace.WithAttributes(
		attribute.Float64("amount", amount),
		attribute.String("currency", s.currency),
	))
	defer span.End()

	if err := validate(amount, card); err != nil {
		span.RecordError(err)
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits(amount)),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(card.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("LuxePlate booking for " + card.Cardholder),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return nil, &Error{Code: string(stripeErr.Code), Err: fmt.Errorf("%w: %s", ErrDeclined, stripeErr.Msg)}
		}
		return nil, &Error{Code: "processing_error", Err: err}
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		err := fmt.Errorf("%w: payment intent is %s", ErrDeclined, pi.Status)
		span.SetStatus(codes.Error, err.Error())
		return nil, &Error{Code: string(pi.Status), Err: err}
	}
	return &Token{ID: pi.ID, Amount: amount, Currency: s.currency}, nil
}
