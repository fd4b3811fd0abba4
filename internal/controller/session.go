// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/model"
)

func (c *Controller) Login(ctx context.Context, email, password string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.Login")
	defer span.End()

	if err := c.idle(); err != nil {
		return c.Snapshot(), err
	}

	user, err := c.deps.Auth.Login(ctx, c.sid, email, password)
	if err != nil {
		return c.noticeFrom(err), err
	}
	if err := c.sessionChanged(ctx, user); err != nil {
		return c.Snapshot(), fail(span, err)
	}
	return c.Snapshot(), nil
}

// Register creates a diner or chef account. Admin accounts are never
// created through registration.
func (c *Controller) Register(ctx context.Context, name, email, password string, role model.Role) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.Register", trace.WithAttributes(attribute.String("role", role.String())))
	defer span.End()

	if err := c.idle(); err != nil {
		return c.Snapshot(), err
	}

	if role == model.RoleAdmin {
		return c.apply(func(s State) (State, error) { return denied(s, noticeAdminDenied) })
	}
	user, err := c.deps.Auth.Register(ctx, c.sid, name, email, password, role)
	if err != nil {
		return c.noticeFrom(err), err
	}
	if err := c.sessionChanged(ctx, user); err != nil {
		return c.Snapshot(), fail(span, err)
	}
	return c.Snapshot(), nil
}

func (c *Controller) noticeFrom(err error) State {
	return c.set(func(s State) State {
		s.Notice = err.Error()
		return s
	})
}

// Logout ends the session. Calling it without a session changes nothing.
func (c *Controller) Logout(ctx context.Context) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.Logout")
	defer span.End()

	if err := c.idle(); err != nil {
		return c.Snapshot(), err
	}

	if err := c.deps.Auth.Logout(ctx, c.sid); err != nil {
		return c.Snapshot(), fail(span, err)
	}
	return c.set(logout), nil
}

func (c *Controller) EnterChefLogin(ctx context.Context) State {
	return c.set(enterChefLogin)
}

func (c *Controller) CancelChefLogin(ctx context.Context) State {
	return c.set(cancelChefLogin)
}

// ChefLogin signs in through the chef portal. Accounts without the chef role
// are turned away and their session is closed again.
func (c *Controller) ChefLogin(ctx context.Context, email, password string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.ChefLogin")
	defer span.End()

	if err := c.idle(); err != nil {
		return c.Snapshot(), err
	}

	return c.roleLogin(ctx, span, email, password, model.RoleChef, noticeChefDenied, func(user *model.User) (State, error) {
		if err := c.sessionChanged(ctx, user); err != nil {
			return c.Snapshot(), fail(span, err)
		}
		return c.Snapshot(), nil
	})
}

func (c *Controller) RequestAdminLogin(ctx context.Context) (State, error) {
	return c.apply(requestAdminLogin)
}

func (c *Controller) CancelAdminLogin(ctx context.Context) (State, error) {
	return c.apply(cancelAdminLogin)
}

func (c *Controller) ExitAdmin(ctx context.Context) (State, error) {
	return c.apply(exitAdmin)
}

func (c *Controller) AdminLogin(ctx context.Context, email, password string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.AdminLogin")
	defer span.End()

	if err := c.idle(); err != nil {
		return c.Snapshot(), err
	}

	if s := c.Snapshot(); s.View != ViewAdminLogin {
		return s, ErrIllegalTransition
	}
	return c.roleLogin(ctx, span, email, password, model.RoleAdmin, noticeAdminDenied, func(user *model.User) (State, error) {
		return c.apply(func(s State) (State, error) { return adminLoginSucceeded(s, user) })
	})
}

func (c *Controller) roleLogin(ctx context.Context, span trace.Span, email, password string, role model.Role, notice string, granted func(*model.User) (State, error)) (State, error) {
	user, err := c.deps.Auth.Login(ctx, c.sid, email, password)
	if err != nil {
		return c.noticeFrom(err), err
	}
	if user.Role != role {
		span.AddEvent("role denied", trace.WithAttributes(attribute.String("role", user.Role.String())))
		c.logger.InfoContext(ctx, "role login denied", "user", user.ID, "role", user.Role, "want", role)
		if err := c.deps.Auth.Logout(ctx, c.sid); err != nil {
			return c.Snapshot(), fail(span, err)
		}
		return c.apply(func(s State) (State, error) { return loginDenied(s, notice) })
	}
	return granted(user)
}

// UpdateProfile changes name, email and avatar of the signed in user.
func (c *Controller) UpdateProfile(ctx context.Context, name, email, avatar string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.UpdateProfile")
	defer span.End()

	s, err := c.apply(requireSession)
	if err != nil {
		return s, err
	}
	user, err := c.deps.Store.GetUserByID(ctx, s.Session.ID)
	if err != nil {
		return s, fail(span, err)
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := c.deps.Auth.UpdateCurrentUser(ctx, c.sid, user); err != nil {
		return c.noticeFrom(err), err
	}
	if err := c.sessionChanged(ctx, user); err != nil {
		return c.Snapshot(), fail(span, err)
	}
	return c.Snapshot(), nil
}
