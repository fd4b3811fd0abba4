// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
)

// mayEdit reports whether the session owns the chef record. A chef owns the
// record carrying its own user id.
func mayEdit(s State, chefID uuid.UUID) error {
	switch {
	case s.Session == nil:
		return ErrAuthRequired
	case s.Session.Role == model.RoleAdmin:
		return nil
	case s.Session.Role == model.RoleChef && s.Session.ID == chefID:
		return nil
	}
	return ErrNotOwner
}

// editChef re-reads the chef, applies edit and stores the result.
func (c *Controller) editChef(ctx context.Context, span trace.Span, chefID uuid.UUID, edit func(*model.Chef) error) (State, error) {
	s := c.Snapshot()
	if err := mayEdit(s, chefID); err != nil {
		return s, err
	}
	chef, err := c.deps.Store.GetChefByID(ctx, chefID)
	if err != nil {
		return s, fail(span, err)
	}
	chef = chef.Clone()
	if err := edit(chef); err != nil {
		return s, err
	}
	if err := c.deps.Store.SaveChef(ctx, chef); err != nil {
		return s, fail(span, err)
	}
	return c.set(func(s State) State { return chefUpdated(s, chef) }), nil
}

// UpdateChef replaces the profile fields of a chef. Menus are edited with
// SaveMenu and DeleteMenu and are kept as stored.
func (c *Controller) UpdateChef(ctx context.Context, chef *model.Chef) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.UpdateChef", trace.WithAttributes(attribute.String("chef", chef.ID.String())))
	defer span.End()

	return c.editChef(ctx, span, chef.ID, func(stored *model.Chef) error {
		menus := stored.Menus
		*stored = *chef.Clone()
		stored.Menus = menus
		return nil
	})
}

func (c *Controller) SaveMenu(ctx context.Context, chefID uuid.UUID, menu *model.Menu) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.SaveMenu", trace.WithAttributes(attribute.String("chef", chefID.String())))
	defer span.End()

	return c.editChef(ctx, span, chefID, func(chef *model.Chef) error {
		return editor.SaveMenu(chef, menu)
	})
}

func (c *Controller) DeleteMenu(ctx context.Context, chefID, menuID uuid.UUID) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.DeleteMenu", trace.WithAttributes(attribute.String("chef", chefID.String())))
	defer span.End()

	return c.editChef(ctx, span, chefID, func(chef *model.Chef) error {
		return editor.DeleteMenu(chef, menuID)
	})
}

// ChefBookings lists the bookings of the chef shown on the dashboard.
func (c *Controller) ChefBookings(ctx context.Context) ([]*model.Booking, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.ChefBookings")
	defer span.End()

	s := c.Snapshot()
	if s.MyChef == nil {
		return nil, ErrForbidden
	}
	bookings, err := c.deps.Store.ListBookingsByChef(ctx, s.MyChef.ID)
	if err != nil {
		return nil, fail(span, err)
	}
	return bookings, nil
}
