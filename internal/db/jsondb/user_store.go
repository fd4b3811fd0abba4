// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func NewUserStore(filename string) (*UserStore, error) {
	users, err := newCollection(filename, db.DemoUsers())
	if err != nil {
		return nil, err
	}
	return &UserStore{users: users}, nil
}

type UserStore struct {
	users *collection[model.User]
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListUsers")
	defer span.End()

	return u.users.snapshot(span, nil)
}

func (u *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	user, ok, err := u.users.find(span, func(user *model.User) bool { return user.ID == userID })
	if err != nil {
		return nil, err
	}
	if !ok {
		err := fmt.Errorf("could not find user with id %s: %w", userID, db.ErrNotFound)
		span.RecordError(err)
		return nil, err
	}
	return user, nil
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	email = model.NormalizeEmail(email)
	user, ok, err := u.users.find(span, func(user *model.User) bool { return model.NormalizeEmail(user.Email) == email })
	if err != nil {
		return nil, err
	}
	if !ok {
		err := fmt.Errorf("could not find user with email %q: %w", email, db.ErrNotFound)
		span.RecordError(err)
		return nil, err
	}
	return user, nil
}

func (u *UserStore) CreateUser(ctx context.Context, user *model.User) (uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		user.ID = uuid.New()
	}
	if user.CreatedAt == nil {
		now := time.Now()
		user.CreatedAt = &now
	}
	if user.FavoriteChefIDs == nil {
		user.FavoriteChefIDs = []uuid.UUID{}
	}
	stored, err := clone(user)
	if err != nil {
		return uuid.Nil, err
	}
	email := model.NormalizeEmail(user.Email)
	return user.ID, u.users.update(ctx, span, func(users []*model.User) ([]*model.User, error) {
		for _, existing := range users {
			if existing.ID == user.ID {
				return nil, fmt.Errorf("user %s: %w", user.ID, db.ErrAlreadyExists)
			}
			if model.NormalizeEmail(existing.Email) == email {
				return nil, fmt.Errorf("email %q: %w", user.Email, db.ErrAlreadyExists)
			}
		}
		return append(users, stored), nil
	})
}

func (u *UserStore) UpdateUser(ctx context.Context, user *model.User) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "UpdateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		err := errors.New("user ID is required for updating")
		span.RecordError(err)
		return err
	}
	now := time.Now()
	user.UpdatedAt = &now
	stored, err := clone(user)
	if err != nil {
		return err
	}
	email := model.NormalizeEmail(user.Email)
	return u.users.update(ctx, span, func(users []*model.User) ([]*model.User, error) {
		idx := -1
		for i, existing := range users {
			switch {
			case existing.ID == user.ID:
				idx = i
			case model.NormalizeEmail(existing.Email) == email:
				return nil, fmt.Errorf("email %q: %w", user.Email, db.ErrAlreadyExists)
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("could not find user with id %s: %w", user.ID, db.ErrNotFound)
		}
		users[idx] = stored
		return users, nil
	})
}
