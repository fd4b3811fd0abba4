// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/db/kvdb"
	"github.com/quixsi/luxeplate/internal/model"
)

func TestMove(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	tt := []struct {
		from, to int
		want     []string
	}{
		{from: 0, to: 2, want: []string{"b", "c", "a", "d"}},
		{from: 3, to: 0, want: []string{"d", "a", "b", "c"}},
		{from: 0, to: 3, want: []string{"b", "c", "d", "a"}},
		{from: 1, to: 1, want: []string{"a", "b", "c", "d"}},
		{from: 2, to: 1, want: []string{"a", "c", "b", "d"}},
	}
	for _, tc := range tt {
		got, err := Move(items, tc.from, tc.to)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "move %d -> %d", tc.from, tc.to)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input must stay untouched")

	_, err := Move(items, 4, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Move(items, 0, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveIsPermutation(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}
	for from := range items {
		for to := range items {
			got, err := Move(items, from, to)
			require.NoError(t, err)
			assert.ElementsMatch(t, items, got)
			assert.Equal(t, items[from], got[to])
		}
	}
}

func TestMoveCourseKeepsPermutation(t *testing.T) {
	m := &model.Menu{}
	require.NoError(t, MoveCourse(m, 2, 0))
	assert.Equal(t, []model.Course{model.CourseDessert, model.CourseStarter, model.CourseMain}, m.CourseOrder)
	assert.NoError(t, model.ValidateCourseOrder(m.CourseOrder))
	assert.ErrorIs(t, MoveCourse(m, 0, 3), ErrIndexOutOfRange)
}

func TestDishes(t *testing.T) {
	m := NewMenu()
	assert.ErrorIs(t, DeleteDish(m, model.CourseMain, 0), ErrLastDish)
	assert.Len(t, m.Courses.Main, 1)

	require.NoError(t, AddDish(m, model.CourseMain))
	require.NoError(t, UpdateDish(m, model.CourseMain, 1, model.Dish{
		Name:        "Risotto",
		Ingredients: []string{"Rice, Saffron Threads", "rice"},
		Allergens:   []string{"dairy"},
	}))
	assert.Equal(t, []string{"Rice", "Saffron Threads"}, m.Courses.Main[1].Ingredients)
	assert.Equal(t, []string{"Dairy"}, m.Courses.Main[1].Allergens)

	require.NoError(t, MoveDish(m, model.CourseMain, 1, 0))
	assert.Equal(t, "Risotto", m.Courses.Main[0].Name)

	require.NoError(t, DeleteDish(m, model.CourseMain, 0))
	require.Len(t, m.Courses.Main, 1)
	assert.Equal(t, "", m.Courses.Main[0].Name)
	assert.ErrorIs(t, DeleteDish(m, model.CourseMain, 0), ErrLastDish)

	assert.ErrorIs(t, AddDish(m, "cheese"), model.ErrUnknownCourse)
	assert.ErrorIs(t, UpdateDish(m, model.CourseStarter, 0, model.Dish{Allergens: []string{"Pollen"}}), ErrUnknownAllergen)
}

func TestTags(t *testing.T) {
	tags := AddTags([]string{"Garlic"}, " ginger ,GARLIC,, Miso Paste ", "ginger")
	assert.Equal(t, []string{"Garlic", "ginger", "Miso Paste"}, tags)

	assert.Equal(t, []string{"Garlic", "Miso Paste"}, RemoveTag(tags, "Ginger"))

	assert.Equal(t, []string{"Saffron Threads", "Fresh Thyme"}, Suggestions(tags, []string{"Garlic", "Saffron Threads", "Fresh Thyme"}, ""))
	assert.Equal(t, []string{"Black Truffle"}, Suggestions(nil, CommonIngredients, "truff"))
	assert.Equal(t, []string{"Sesame"}, FilterOptions(Allergens, "SES"))

	selected, err := ToggleAllergen(nil, "nuts")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nuts"}, selected)
	selected, err = ToggleAllergen(selected, "Nuts")
	require.NoError(t, err)
	assert.Empty(t, selected)
	_, err = ToggleAllergen(selected, "Pollen")
	assert.ErrorIs(t, err, ErrUnknownAllergen)
}

func TestSaveMenuValidation(t *testing.T) {
	tt := []struct {
		name    string
		mutate  func(*model.Menu)
		wantErr error
	}{
		{name: "blank name", mutate: func(m *model.Menu) { m.Name = "   " }, wantErr: ErrMenuNameRequired},
		{name: "empty course", mutate: func(m *model.Menu) { m.Courses.Dessert = nil }, wantErr: ErrEmptyCourse},
		{name: "broken order", mutate: func(m *model.Menu) { m.CourseOrder = []model.Course{model.CourseMain} }, wantErr: model.ErrInvalidCourseOrder},
		{name: "valid", mutate: func(*model.Menu) {}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			chef := &model.Chef{ID: uuid.New()}
			m := NewMenu()
			m.Name = "Tasting"
			tc.mutate(m)
			err := SaveMenu(chef, m)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, chef.Menus)
				return
			}
			require.NoError(t, err)
			assert.Len(t, chef.Menus, 1)
		})
	}
}

func TestSaveMenuUpsertsByID(t *testing.T) {
	chef := &model.Chef{ID: uuid.New()}
	m := NewMenu()
	m.Name = "Spring"
	require.NoError(t, SaveMenu(chef, m))
	m.Name = "Spring Revised"
	m.PricePerHead = 140
	require.NoError(t, SaveMenu(chef, m))

	require.Len(t, chef.Menus, 1)
	assert.Equal(t, "Spring Revised", chef.Menus[0].Name)

	other := NewMenu()
	other.Name = "Autumn"
	require.NoError(t, SaveMenu(chef, other))
	require.Len(t, chef.Menus, 2)

	require.NoError(t, DeleteMenu(chef, m.ID))
	require.Len(t, chef.Menus, 1)
	assert.Equal(t, "Autumn", chef.Menus[0].Name)
	assert.ErrorIs(t, DeleteMenu(chef, m.ID), ErrMenuNotFound)
	assert.ErrorIs(t, DeleteMenu(chef, other.ID), ErrLastMenu)
}

func TestAmalfiMenuRoundTrip(t *testing.T) {
	store, err := kvdb.Open(filepath.Join(t.TempDir(), "luxeplate.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	chef, err := store.GetChefByID(ctx, db.ChefElenaID)
	require.NoError(t, err)

	menu := &model.Menu{
		ID:           uuid.New(),
		Name:         "Amalfi Coast Discovery",
		PricePerHead: 120,
		Description:  "Lemons and the sea.",
		Courses: model.Courses{
			Starter: []model.Dish{{Name: "Scallop Crudo", Ingredients: []string{"Scallops", "Lemon"}, Allergens: []string{"Molluscs"}}},
			Main:    []model.Dish{{Name: "Squid Ink Tagliatelle", IsSignature: true, Ingredients: []string{"Lobster"}, Allergens: []string{"Gluten", "Shellfish"}}},
			Dessert: []model.Dish{{Name: "Delizia al Limone", Ingredients: []string{"Lemon"}, Allergens: []string{"Eggs"}}},
		},
		CourseOrder: []model.Course{model.CourseStarter, model.CourseMain, model.CourseDessert},
	}
	require.NoError(t, SaveMenu(chef, menu))
	require.NoError(t, store.SaveChef(ctx, chef))

	reloaded, err := store.GetChefByID(ctx, db.ChefElenaID)
	require.NoError(t, err)
	got, ok := reloaded.MenuByID(menu.ID)
	require.True(t, ok)
	assert.Equal(t, menu.ID, got.ID)
	assert.Equal(t, menu.Name, got.Name)
	assert.Equal(t, menu.PricePerHead, got.PricePerHead)
	assert.Equal(t, menu.Courses, got.Courses)
	assert.Equal(t, menu.CourseOrder, got.CourseOrder)
}
