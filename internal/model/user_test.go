// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteTwiceRestoresSet(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	tt := []struct {
		name    string
		initial []uuid.UUID
		toggle  uuid.UUID
	}{
		{name: "empty set", initial: nil, toggle: a},
		{name: "absent chef", initial: []uuid.UUID{a, b}, toggle: c},
		{name: "present chef", initial: []uuid.UUID{a, b, c}, toggle: b},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{FavoriteChefIDs: append([]uuid.UUID(nil), tc.initial...)}
			was := u.IsFavorite(tc.toggle)

			assert.Equal(t, !was, u.ToggleFavorite(tc.toggle))
			assert.Equal(t, !was, u.IsFavorite(tc.toggle))
			assert.Equal(t, was, u.ToggleFavorite(tc.toggle))

			assert.ElementsMatch(t, tc.initial, u.FavoriteChefIDs)
		})
	}
}

func TestToggleFavoriteDoesNotAliasCaller(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	shared := []uuid.UUID{a, b}
	u := &User{FavoriteChefIDs: shared}
	u.ToggleFavorite(a)
	assert.Equal(t, []uuid.UUID{a, b}, shared)
	assert.Equal(t, []uuid.UUID{b}, u.FavoriteChefIDs)
}

func TestUserPublicHidesHash(t *testing.T) {
	u := User{Name: "Ada", PasswordHash: "$2a$10$secret"}
	data, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password_hash")
	assert.Equal(t, "$2a$10$secret", u.PasswordHash)
}

func TestRoleText(t *testing.T) {
	tt := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "DINER", want: RoleDiner},
		{in: "chef", want: RoleChef},
		{in: " Admin ", want: RoleAdmin},
		{in: "owner", wantErr: true},
	}
	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			var r Role
			err := r.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, r)
		})
	}

	data, err := json.Marshal(struct{ Role Role }{RoleChef})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Role":"CHEF"}`, string(data))
}
