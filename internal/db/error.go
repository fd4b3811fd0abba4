// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import "errors"

// ErrNotFound is wrapped by every lookup that misses.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is wrapped by inserts that collide with a unique key.
var ErrAlreadyExists = errors.New("already exists")
