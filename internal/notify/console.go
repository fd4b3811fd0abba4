// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package notify

import (
	"bytes"
	"context"
	"log/slog"
	"text/template"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/model"
)

const sender = "notifications@luxeplate.com"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`From:    {{ .From }}
To:      {{ .User.Name }} <{{ .User.Email }}>
Subject: Booking Confirmed: {{ .Booking.MenuName }} with Chef {{ .Booking.ChefName }}

Dear {{ .User.Name }},

{{ .Message }}

HERE ARE YOUR BOOKING DETAILS:
Chef:    {{ .Booking.ChefName }}
Menu:    {{ .Booking.MenuName }}
Date:    {{ .Booking.Date }}
Time:    {{ .Booking.Time }}
Guests:  {{ .Booking.Guests }} people
Total:   {{ printf "%.2f" .Booking.TotalPrice }}

Your private chef will be in touch shortly to discuss any dietary
requirements or specific requests.

You can view and manage your booking at any time by logging into
your LuxePlate profile.

Bon Appétit!
The LuxePlate Team
`))

// Console renders the confirmation email and writes it to the log instead of
// sending it.
type Console struct {
	logger *slog.Logger
}

func NewConsole() *Console {
	return &Console{logger: slog.Default().WithGroup("email")}
}

func RenderConfirmation(user *model.User, booking *model.Booking, message string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		From    string
		User    *model.User
		Booking *model.Booking
		Message string
	}{From: sender, User: user, Booking: booking, Message: message})
	return buf.String(), err
}

func (c *Console) SendBookingConfirmation(ctx context.Context, user *model.User, booking *model.Booking, message string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Console.SendBookingConfirmation")
	defer span.End()

	body, err := RenderConfirmation(user, booking, message)
	if err != nil {
		span.RecordError(err)
		return err
	}
	c.logger.InfoContext(ctx, "email sent (simulation)", "to", user.Email, "booking", booking.ID, "body", body)
	return nil
}
