// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
)

type session struct {
	ID     string    `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func NewSessionStore(filename string) (*SessionStore, error) {
	sessions, err := newCollection[session](filename, nil)
	if err != nil {
		return nil, err
	}
	return &SessionStore{sessions: sessions}, nil
}

type SessionStore struct {
	sessions *collection[session]
}

func (s *SessionStore) GetSession(ctx context.Context, sid string) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetSession")
	defer span.End()

	res, ok, err := s.sessions.find(span, func(sess *session) bool { return sess.ID == sid })
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("session: %w", db.ErrNotFound)
	}
	return res.UserID, nil
}

func (s *SessionStore) PutSession(ctx context.Context, sid string, userID uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutSession")
	defer span.End()

	if sid == "" {
		err := errors.New("session id is required")
		span.RecordError(err)
		return err
	}
	return s.sessions.update(ctx, span, func(sessions []*session) ([]*session, error) {
		for i, sess := range sessions {
			if sess.ID == sid {
				sessions[i] = &session{ID: sid, UserID: userID}
				return sessions, nil
			}
		}
		return append(sessions, &session{ID: sid, UserID: userID}), nil
	})
}

func (s *SessionStore) DeleteSession(ctx context.Context, sid string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteSession")
	defer span.End()

	return s.sessions.update(ctx, span, func(sessions []*session) ([]*session, error) {
		res := sessions[:0]
		for _, sess := range sessions {
			if sess.ID != sid {
				res = append(res, sess)
			}
		}
		return res, nil
	})
}
