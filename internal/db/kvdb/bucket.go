// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// createSeededBucket creates the bucket and fills it with seed records when it
// is empty. An existing bucket is never touched.
func createSeededBucket[T any](db *bolt.DB, name string, seed []*T, key func(*T) uuid.UUID) error {
	logger := slog.Default().WithGroup("kvdb")
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		if k, _ := bucket.Cursor().First(); k != nil || len(seed) == 0 {
			return nil
		}
		logger.Info("bucket is empty, insert seed data", "bucket", name, "count", len(seed))
		for _, rec := range seed {
			j, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			id := key(rec)
			if err := bucket.Put(id[:], j); err != nil {
				return fmt.Errorf("seed %s: %w", name, err)
			}
		}
		return nil
	})
}

// listBucket decodes every value of the bucket in key order.
func listBucket[T any](tx *bolt.Tx, name string) ([]*T, error) {
	var res []*T
	return res, tx.Bucket([]byte(name)).ForEach(func(_, v []byte) error {
		item := new(T)
		if err := json.Unmarshal(v, item); err != nil {
			return err
		}
		res = append(res, item)
		return nil
	})
}
