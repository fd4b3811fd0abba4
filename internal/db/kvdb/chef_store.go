// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

const bucketChef = "chef_store"

func NewChefStore(bdb *bolt.DB) (*ChefStore, error) {
	return &ChefStore{db: bdb}, createSeededBucket(bdb, bucketChef, db.DemoChefs(),
		func(c *model.Chef) uuid.UUID { return c.ID })
}

type ChefStore struct {
	db *bolt.DB
}

func (c *ChefStore) ListChefs(ctx context.Context) ([]*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListChefs")
	defer span.End()

	span.AddEvent("View bucket")
	var chefs []*model.Chef
	err := c.db.View(func(tx *bolt.Tx) error {
		var err error
		chefs, err = listBucket[model.Chef](tx, bucketChef)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return chefs, nil
}

func (c *ChefStore) GetChefByID(ctx context.Context, chefID uuid.UUID) (*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetChefByID", trace.WithAttributes(attribute.String("chef.id", chefID.String())))
	defer span.End()

	span.AddEvent("View bucket")
	chef := &model.Chef{}
	return chef, c.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketChef)).Get(chefID[:])
		if res == nil {
			err := fmt.Errorf("chef %s: %w", chefID, db.ErrNotFound)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, chef)
	})
}

func (c *ChefStore) GetChefsByIDs(ctx context.Context, ids ...uuid.UUID) ([]*model.Chef, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetChefsByIDs", trace.WithAttributes(attribute.Int("count", len(ids))))
	defer span.End()

	var chefs []*model.Chef
	return chefs, c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketChef))
		for _, id := range ids {
			res := bucket.Get(id[:])
			if res == nil {
				// favorites may point at chefs that no longer exist
				span.AddEvent("skip unknown chef", trace.WithAttributes(attribute.String("chef.id", id.String())))
				continue
			}
			chef := &model.Chef{}
			if err := json.Unmarshal(res, chef); err != nil {
				span.RecordError(err)
				return err
			}
			chefs = append(chefs, chef)
		}
		return nil
	})
}

func (c *ChefStore) SaveChef(ctx context.Context, chef *model.Chef) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveChef")
	defer span.End()

	if chef.ID == uuid.Nil {
		err := errors.New("chef ID is required for saving")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	j, err := json.Marshal(chef)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.AddEvent("Update bucket")
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketChef)).Put(chef.ID[:], j)
	})
}

func (c *ChefStore) SearchChefs(ctx context.Context, params model.SearchParams) ([]*model.Chef, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SearchChefs", trace.WithAttributes(
		attribute.String("search.location", params.Location),
		attribute.String("search.cuisine", params.Cuisine),
	))
	defer span.End()

	chefs, err := c.ListChefs(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*model.Chef, 0, len(chefs))
	for _, chef := range chefs {
		if params.Matches(chef) {
			res = append(res, chef)
		}
	}
	span.SetAttributes(attribute.Int("search.results", len(res)))
	return res, nil
}
