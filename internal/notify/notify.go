// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package notify

import (
	"context"
	"errors"

	"github.com/quixsi/luxeplate/internal/model"
)

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, user *model.User, booking *model.Booking, message string) error
}

// Multi sends through every notifier and joins their errors.
type Multi []Notifier

func (m Multi) SendBookingConfirmation(ctx context.Context, user *model.User, booking *model.Booking, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.SendBookingConfirmation(ctx, user, booking, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
