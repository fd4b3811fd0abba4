// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func NewChefStore(filename string) (*ChefStore, error) {
	chefs, err := newCollection(filename, db.DemoChefs())
	if err != nil {
		return nil, err
	}
	return &ChefStore{chefs: chefs}, nil
}

type ChefStore struct {
	chefs *collection[model.Chef]
}

func (c *ChefStore) ListChefs(ctx context.Context) ([]*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListChefs")
	defer span.End()

	return c.chefs.snapshot(span, nil)
}

func (c *ChefStore) GetChefByID(ctx context.Context, chefID uuid.UUID) (*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetChefByID", trace.WithAttributes(attribute.String("chef.id", chefID.String())))
	defer span.End()

	chef, ok, err := c.chefs.find(span, func(chef *model.Chef) bool { return chef.ID == chefID })
	if err != nil {
		return nil, err
	}
	if !ok {
		err := fmt.Errorf("could not find chef with id %s: %w", chefID, db.ErrNotFound)
		span.RecordError(err)
		return nil, err
	}
	return chef, nil
}

func (c *ChefStore) GetChefsByIDs(ctx context.Context, ids ...uuid.UUID) ([]*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetChefsByIDs", trace.WithAttributes(attribute.Int("count", len(ids))))
	defer span.End()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return c.chefs.snapshot(span, func(chef *model.Chef) bool { return wanted[chef.ID] })
}

func (c *ChefStore) SaveChef(ctx context.Context, chef *model.Chef) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SaveChef")
	defer span.End()

	if chef.ID == uuid.Nil {
		err := errors.New("chef ID is required for saving")
		span.RecordError(err)
		return err
	}
	stored := chef.Clone()
	return c.chefs.update(ctx, span, func(chefs []*model.Chef) ([]*model.Chef, error) {
		for i, existing := range chefs {
			if existing.ID == chef.ID {
				chefs[i] = stored
				return chefs, nil
			}
		}
		return append(chefs, stored), nil
	})
}

func (c *ChefStore) SearchChefs(ctx context.Context, params model.SearchParams) ([]*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "SearchChefs", trace.WithAttributes(
		attribute.String("search.location", params.Location),
		attribute.String("search.cuisine", params.Cuisine),
	))
	defer span.End()

	return c.chefs.snapshot(span, params.Matches)
}
