// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

// Database bundles every store of one storage backend.
type Database interface {
	ChefStore
	UserStore
	BookingStore
	JobStore
	SessionStore
	Close() error
}
