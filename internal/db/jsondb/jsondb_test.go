// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func TestOpenWritesSeedFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir)
	require.NoError(t, err)

	for _, name := range []string{"chefs.json", "users.json", "jobs.json", "contracts.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestChefStoreIsolation(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	chef, err := d.GetChefByID(ctx, db.ChefKenjiID)
	require.NoError(t, err)
	chef.Name = "changed without saving"

	again, err := d.GetChefByID(ctx, db.ChefKenjiID)
	require.NoError(t, err)
	assert.Equal(t, "Kenji Tanaka", again.Name)
}

func TestChefStoreUpsertSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	chef, err := d.GetChefByID(ctx, db.ChefElenaID)
	require.NoError(t, err)
	chef.Menus = append(chef.Menus, &model.Menu{
		ID:           uuid.New(),
		Name:         "Sicilian Street Feast",
		PricePerHead: 95,
		Courses: model.Courses{
			Starter: []model.Dish{{Name: "Arancini"}},
			Main:    []model.Dish{{Name: "Pasta alla Norma"}},
			Dessert: []model.Dish{{Name: "Cannoli"}},
		},
	})
	require.NoError(t, d.SaveChef(ctx, chef))

	newcomer := &model.Chef{ID: uuid.New(), Name: "Ama Mensah", Location: "Brixton, London"}
	require.NoError(t, d.SaveChef(ctx, newcomer))

	reloaded, err := Open(dir)
	require.NoError(t, err)
	got, err := reloaded.GetChefByID(ctx, db.ChefElenaID)
	require.NoError(t, err)
	require.Len(t, got.Menus, 2)
	assert.Equal(t, "Sicilian Street Feast", got.Menus[1].Name)

	chefs, err := reloaded.ListChefs(ctx)
	require.NoError(t, err)
	assert.Len(t, chefs, 4)

	byIDs, err := reloaded.GetChefsByIDs(ctx, newcomer.ID, uuid.New())
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, "Ama Mensah", byIDs[0].Name)
}

func TestUserStoreEmailUniqueness(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = d.CreateUser(ctx, &model.User{Name: "Kenji", Email: "KENJI@luxeplate.com"})
	assert.ErrorIs(t, err, db.ErrAlreadyExists)

	id, err := d.CreateUser(ctx, &model.User{Name: "Grace", Email: "grace@example.com", Role: model.RoleDiner})
	require.NoError(t, err)

	user, err := d.GetUserByEmail(ctx, " Grace@Example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	user.Email = "kenji@luxeplate.com"
	assert.ErrorIs(t, d.UpdateUser(ctx, user), db.ErrAlreadyExists)

	users, err := d.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(db.DemoUsers())+1)
}

func TestBookingsAndSessions(t *testing.T) {
	d, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	userID := uuid.New()
	older := &model.Booking{UserID: userID, ChefID: db.ChefJulianID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.Booking{UserID: userID, ChefID: db.ChefKenjiID, CreatedAt: time.Now()}
	require.NoError(t, d.CreateBooking(ctx, older))
	require.NoError(t, d.CreateBooking(ctx, newer))

	mine, err := d.ListBookingsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)

	require.NoError(t, d.PutSession(ctx, "browser-1", userID))
	require.NoError(t, d.PutSession(ctx, "browser-1", userID))
	got, err := d.GetSession(ctx, "browser-1")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, d.DeleteSession(ctx, "browser-1"))
	_, err = d.GetSession(ctx, "browser-1")
	assert.ErrorIs(t, err, db.ErrNotFound)
}
