// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCourseOrder(t *testing.T) {
	tt := []struct {
		name    string
		order   []Course
		wantErr bool
	}{
		{name: "missing order is the default", order: nil},
		{name: "default", order: []Course{CourseStarter, CourseMain, CourseDessert}},
		{name: "permutation", order: []Course{CourseDessert, CourseStarter, CourseMain}},
		{name: "missing key", order: []Course{CourseStarter, CourseMain}, wantErr: true},
		{name: "duplicate key", order: []Course{CourseStarter, CourseMain, CourseMain}, wantErr: true},
		{name: "unknown key", order: []Course{CourseStarter, CourseMain, "cheese"}, wantErr: true},
		{name: "extra key", order: []Course{CourseStarter, CourseMain, CourseDessert, CourseDessert}, wantErr: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCourseOrder(tc.order)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCourseOrder)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMenuOrderIsAlwaysPermutation(t *testing.T) {
	for _, m := range []*Menu{
		{},
		{CourseOrder: []Course{CourseMain, CourseDessert, CourseStarter}},
	} {
		order := m.Order()
		assert.ElementsMatch(t, DefaultCourseOrder, order)
		// callers may reorder the result freely
		order[0] = CourseDessert
		assert.NotEqual(t, order, m.Order())
	}
}

func TestMenuCloneIsDeep(t *testing.T) {
	m := &Menu{
		Name:    "Tasting",
		Courses: Courses{Starter: []Dish{{Name: "Crudo", Ingredients: []string{"Scallops"}}}},
	}
	cp := m.Clone()
	cp.Courses.Starter[0].Ingredients[0] = "Prawns"
	cp.Courses.Starter[0].Name = "Tartare"

	assert.Equal(t, "Crudo", m.Courses.Starter[0].Name)
	assert.Equal(t, "Scallops", m.Courses.Starter[0].Ingredients[0])
}

func TestSetDishes(t *testing.T) {
	m := &Menu{}
	require.NoError(t, m.SetDishes(CourseDessert, []Dish{{Name: "Tiramisu"}}))
	assert.Equal(t, "Tiramisu", m.Dishes(CourseDessert)[0].Name)
	assert.ErrorIs(t, m.SetDishes("cheese", nil), ErrUnknownCourse)
}

func TestChefDefaultMenu(t *testing.T) {
	c := &Chef{}
	_, err := c.DefaultMenu()
	assert.ErrorIs(t, err, ErrChefHasNoMenus)

	first, second := &Menu{Name: "first"}, &Menu{Name: "second"}
	c.Menus = []*Menu{first, second}
	got, err := c.DefaultMenu()
	require.NoError(t, err)
	assert.Same(t, first, got)
}
