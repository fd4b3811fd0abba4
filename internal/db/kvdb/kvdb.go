// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DB opens every store on a single bolt file.
type DB struct {
	*ChefStore
	*UserStore
	*BookingStore
	*JobStore
	*SessionStore

	bdb *bolt.DB
}

func Open(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt file %q: %w", path, err)
	}
	d := &DB{bdb: bdb}
	if d.ChefStore, err = NewChefStore(bdb); err != nil {
		return nil, d.closeWith(fmt.Errorf("initialize chef bucket: %w", err))
	}
	if d.UserStore, err = NewUserStore(bdb); err != nil {
		return nil, d.closeWith(fmt.Errorf("initialize user bucket: %w", err))
	}
	if d.BookingStore, err = NewBookingStore(bdb); err != nil {
		return nil, d.closeWith(fmt.Errorf("initialize booking bucket: %w", err))
	}
	if d.JobStore, err = NewJobStore(bdb); err != nil {
		return nil, d.closeWith(fmt.Errorf("initialize job bucket: %w", err))
	}
	if d.SessionStore, err = NewSessionStore(bdb); err != nil {
		return nil, d.closeWith(fmt.Errorf("initialize session bucket: %w", err))
	}
	return d, nil
}

func (d *DB) Close() error {
	return d.bdb.Close()
}

func (d *DB) closeWith(err error) error {
	_ = d.bdb.Close()
	return err
}
