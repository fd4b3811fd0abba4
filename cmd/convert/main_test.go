// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/db/jsondb"
	"github.com/quixsi/luxeplate/internal/db/kvdb"
	"github.com/quixsi/luxeplate/internal/model"
)

func TestInto(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, err := jsondb.Open(filepath.Join(dir, "json"))
	require.NoError(t, err)
	userID, err := src.CreateUser(ctx, &model.User{Name: "Ada", Email: "ada@example.com", Role: model.RoleDiner, FavoriteChefIDs: []uuid.UUID{db.ChefKenjiID}})
	require.NoError(t, err)
	booking := &model.Booking{ID: uuid.New(), UserID: userID, ChefID: db.ChefKenjiID, MenuName: "Edomae Omakase", Guests: 2, TotalPrice: 400, Status: model.BookingStatusConfirmed, CreatedAt: time.Now().UTC()}
	require.NoError(t, src.CreateBooking(ctx, booking))

	dst, err := kvdb.Open(filepath.Join(dir, "out.db"))
	require.NoError(t, err)
	require.NoError(t, into(ctx, slog.Default(), dst, src))

	out, err := kvdb.Open(filepath.Join(dir, "out.db"))
	require.NoError(t, err)
	defer out.Close()

	user, err := out.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, []uuid.UUID{db.ChefKenjiID}, user.FavoriteChefIDs)

	bookings, err := out.ListBookingsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)

	chefs, err := out.ListChefs(ctx)
	require.NoError(t, err)
	assert.Len(t, chefs, 3)
}
