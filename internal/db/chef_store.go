// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/model"
)

type ChefStore interface {
	ListChefs(context.Context) ([]*model.Chef, error)
	GetChefByID(context.Context, uuid.UUID) (*model.Chef, error)
	GetChefsByIDs(context.Context, ...uuid.UUID) ([]*model.Chef, error)
	// SaveChef inserts or replaces the chef with the same id.
	SaveChef(context.Context, *model.Chef) error
	SearchChefs(context.Context, model.SearchParams) ([]*model.Chef, error)
}
