// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore remembers which user is signed in for a browser session id.
type SessionStore interface {
	GetSession(ctx context.Context, sid string) (uuid.UUID, error)
	PutSession(ctx context.Context, sid string, userID uuid.UUID) error
	DeleteSession(ctx context.Context, sid string) error
}
