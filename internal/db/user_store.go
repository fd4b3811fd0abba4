// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/model"
)

type UserStore interface {
	ListUsers(context.Context) ([]*model.User, error)
	GetUserByID(context.Context, uuid.UUID) (*model.User, error)
	GetUserByEmail(context.Context, string) (*model.User, error)
	CreateUser(context.Context, *model.User) (uuid.UUID, error)
	UpdateUser(context.Context, *model.User) error
}
