// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

const (
	bucketUser       = "user_store"
	bucketUserEmails = "user_email_index"
)

func NewUserStore(bdb *bolt.DB) (*UserStore, error) {
	err := createSeededBucket(bdb, bucketUser, db.DemoUsers(),
		func(u *model.User) uuid.UUID { return u.ID })
	if err != nil {
		return nil, err
	}
	return &UserStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		index, err := tx.CreateBucketIfNotExists([]byte(bucketUserEmails))
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketUser)).ForEach(func(k, v []byte) error {
			user := &model.User{}
			if err := json.Unmarshal(v, user); err != nil {
				return err
			}
			return index.Put([]byte(model.NormalizeEmail(user.Email)), k)
		})
	})
}

// UserStore keeps users by id plus a normalized email index.
type UserStore struct {
	db *bolt.DB
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListUsers")
	defer span.End()

	span.AddEvent("View bucket")
	var users []*model.User
	return users, u.db.View(func(tx *bolt.Tx) error {
		var err error
		users, err = listBucket[model.User](tx, bucketUser)
		return err
	})
}

func (u *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	span.AddEvent("View bucket")
	user := &model.User{}
	return user, u.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketUser)).Get(userID[:])
		if res == nil {
			err := fmt.Errorf("user %s: %w", userID, db.ErrNotFound)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, user)
	})
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	user := &model.User{}
	return user, u.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketUserEmails)).Get([]byte(model.NormalizeEmail(email)))
		if id == nil {
			err := fmt.Errorf("user with email %q: %w", email, db.ErrNotFound)
			span.RecordError(err)
			return err
		}
		res := tx.Bucket([]byte(bucketUser)).Get(id)
		if res == nil {
			err := fmt.Errorf("user index points at missing record: %w", db.ErrNotFound)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		return json.Unmarshal(res, user)
	})
}

// CreateUser inserts a new user. The email must not be registered yet.
func (u *UserStore) CreateUser(ctx context.Context, user *model.User) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateUser")
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

	j, err := json.Marshal(user)
	if err != nil {
		return uuid.Nil, err
	}

	email := []byte(model.NormalizeEmail(user.Email))
	span.AddEvent("Update bucket")
	return user.ID, u.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket([]byte(bucketUserEmails))
		if index.Get(email) != nil {
			err := fmt.Errorf("email %q: %w", user.Email, db.ErrAlreadyExists)
			span.RecordError(err)
			return err
		}
		if err := index.Put(email, user.ID[:]); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketUser)).Put(user.ID[:], j)
	})
}

func (u *UserStore) UpdateUser(ctx context.Context, user *model.User) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		err := errors.New("user ID is required for updating")
		span.RecordError(err)
		return err
	}
	now := time.Now()
	user.UpdatedAt = &now

	j, err := json.Marshal(user)
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return u.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketUser))
		res := bucket.Get(user.ID[:])
		if res == nil {
			return fmt.Errorf("user %s: %w", user.ID, db.ErrNotFound)
		}
		old := &model.User{}
		if err := json.Unmarshal(res, old); err != nil {
			return err
		}
		index := tx.Bucket([]byte(bucketUserEmails))
		if oldEmail, newEmail := model.NormalizeEmail(old.Email), model.NormalizeEmail(user.Email); oldEmail != newEmail {
			if index.Get([]byte(newEmail)) != nil {
				return fmt.Errorf("email %q: %w", user.Email, db.ErrAlreadyExists)
			}
			if err := index.Delete([]byte(oldEmail)); err != nil {
				return err
			}
			if err := index.Put([]byte(newEmail), user.ID[:]); err != nil {
				return err
			}
		}
		return bucket.Put(user.ID[:], j)
	})
}
