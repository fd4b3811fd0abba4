// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DB keeps one JSON file per collection inside a folder.
type DB struct {
	*ChefStore
	*UserStore
	*BookingStore
	*JobStore
	*SessionStore
}

func Open(dir string) (*DB, error) {
	slog.Default().WithGroup("jsondb").Info("jsondb storage folder", "path", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	var (
		d   = &DB{}
		err error
	)
	if d.ChefStore, err = NewChefStore(filepath.Join(dir, "chefs.json")); err != nil {
		return nil, fmt.Errorf("initialize chef store: %w", err)
	}
	if d.UserStore, err = NewUserStore(filepath.Join(dir, "users.json")); err != nil {
		return nil, fmt.Errorf("initialize user store: %w", err)
	}
	if d.BookingStore, err = NewBookingStore(filepath.Join(dir, "bookings.json")); err != nil {
		return nil, fmt.Errorf("initialize booking store: %w", err)
	}
	if d.JobStore, err = NewJobStore(filepath.Join(dir, "jobs.json"), filepath.Join(dir, "contracts.json")); err != nil {
		return nil, fmt.Errorf("initialize job store: %w", err)
	}
	if d.SessionStore, err = NewSessionStore(filepath.Join(dir, "sessions.json")); err != nil {
		return nil, fmt.Errorf("initialize session store: %w", err)
	}
	return d, nil
}

// Close is a no-op, every write is already on disk.
func (d *DB) Close() error { return nil }
