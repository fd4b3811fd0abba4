// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
)

const bucketSession = "session_store"

func NewSessionStore(bdb *bolt.DB) (*SessionStore, error) {
	return &SessionStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSession))
		return err
	})
}

// SessionStore maps browser session ids to the signed in user id.
type SessionStore struct {
	db *bolt.DB
}

func (s *SessionStore) GetSession(ctx context.Context, sid string) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetSession")
	defer span.End()

	var userID uuid.UUID
	return userID, s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketSession)).Get([]byte(sid))
		if res == nil {
			return fmt.Errorf("session: %w", db.ErrNotFound)
		}
		var err error
		userID, err = uuid.FromBytes(res)
		return err
	})
}

func (s *SessionStore) PutSession(ctx context.Context, sid string, userID uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "PutSession")
	defer span.End()

	if sid == "" {
		err := errors.New("session id is required")
		span.RecordError(err)
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).Put([]byte(sid), userID[:])
	})
}

func (s *SessionStore) DeleteSession(ctx context.Context, sid string) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteSession")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).Delete([]byte(sid))
	})
}
