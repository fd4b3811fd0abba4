// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package payment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Simulator charges nothing. It accepts every payment method except the
// Stripe decline test method.
type Simulator struct {
	Currency string
	logger   *slog.Logger
}

func NewSimulator(currency string) *Simulator {
	return &Simulator{Currency: strings.ToLower(currency), logger: slog.Default().WithGroup("payment")}
}

func (s *Simulator) Charge(ctx context.Context, amount float64, card Card) (*Token, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Simulator.Charge", trace.WithAttributes(attribute.Float64("amount", amount)))
	defer span.End()

	if err := validate(amount, card); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if card.PaymentMethod == DeclinedTestMethod {
		err := &Error{Code: "card_declined", Err: ErrDeclined}
		span.RecordError(err)
		return nil, err
	}
	token := &Token{ID: "pm_sim_" + strings.ReplaceAll(uuid.NewString(), "-", ""), Amount: amount, Currency: s.Currency}
	s.logger.InfoContext(ctx, "simulated charge", "amount", amount, "currency", s.Currency, "token", token.ID)
	return token, nil
}
