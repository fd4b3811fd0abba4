// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	tt := []struct {
		price  float64
		guests int
		want   float64
	}{
		{price: 200, guests: 4, want: 800},
		{price: 120, guests: 6, want: 720},
		{price: 99.99, guests: 3, want: 299.97},
		{price: 0.1, guests: 3, want: 0.3},
	}
	for _, tc := range tt {
		assert.Equal(t, tc.want, TotalPrice(tc.price, tc.guests))
	}
}

func TestNewBookingSnapshotsNames(t *testing.T) {
	user := &User{ID: uuid.New()}
	menu := &Menu{ID: uuid.New(), Name: "Edomae Omakase", PricePerHead: 200}
	chef := &Chef{ID: uuid.New(), Name: "Kenji Tanaka", ImageURL: "kenji.jpg", Menus: []*Menu{menu}}
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	b := NewBooking(user, chef, menu, BookingDetails{Date: "2024-06-14", Time: "19:00", Guests: 4}, now)
	menu.Name = "Renamed"
	chef.Name = "Someone Else"

	assert.Equal(t, "Edomae Omakase", b.MenuName)
	assert.Equal(t, "Kenji Tanaka", b.ChefName)
	assert.Equal(t, 800.0, b.TotalPrice)
	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.Equal(t, now, b.CreatedAt)
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestBookingDetailsValidate(t *testing.T) {
	assert.NoError(t, BookingDetails{Date: "2024-06-14", Time: "19:00", Guests: 2}.Validate())
	assert.ErrorIs(t, BookingDetails{Date: "2024-06-14", Time: "19:00"}.Validate(), ErrInvalidBooking)
	assert.ErrorIs(t, BookingDetails{Time: "19:00", Guests: 2}.Validate(), ErrInvalidBooking)
	assert.ErrorIs(t, BookingDetails{Date: "2024-06-14", Guests: 2}.Validate(), ErrInvalidBooking)
}

func TestSearchParamsMatches(t *testing.T) {
	chef := &Chef{Location: "Shoreditch, London", Cuisines: []string{"Japanese", "Asian Fusion"}}
	tt := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{name: "empty", params: SearchParams{}, want: true},
		{name: "location substring", params: SearchParams{Location: "shoreditch"}, want: true},
		{name: "other location", params: SearchParams{Location: "Mayfair"}, want: false},
		{name: "exact cuisine", params: SearchParams{Cuisine: "Japanese"}, want: true},
		{name: "cuisine is case sensitive", params: SearchParams{Cuisine: "japanese"}, want: false},
		{name: "any cuisine", params: SearchParams{Location: "London", Cuisine: AnyCuisine}, want: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.params.Matches(chef))
		})
	}
}
