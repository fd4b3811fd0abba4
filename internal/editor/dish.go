// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import (
	"fmt"

	"github.com/quixsi/luxeplate/internal/model"
)

// BlankDish is appended when a chef adds a dish to a course.
func BlankDish() model.Dish {
	return model.Dish{Ingredients: []string{}, Allergens: []string{}}
}

func AddDish(menu *model.Menu, course model.Course) error {
	if !course.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCourse, string(course))
	}
	dishes := append(append([]model.Dish{}, menu.Dishes(course)...), BlankDish())
	return menu.SetDishes(course, dishes)
}

// DeleteDish removes a dish unless it is the only one left in the course.
func DeleteDish(menu *model.Menu, course model.Course, idx int) error {
	if !course.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCourse, string(course))
	}
	dishes := menu.Dishes(course)
	if idx < 0 || idx >= len(dishes) {
		return fmt.Errorf("%w: dish %d of %d", ErrIndexOutOfRange, idx, len(dishes))
	}
	if len(dishes) <= 1 {
		return ErrLastDish
	}
	out := make([]model.Dish, 0, len(dishes)-1)
	out = append(out, dishes[:idx]...)
	return menu.SetDishes(course, append(out, dishes[idx+1:]...))
}

func UpdateDish(menu *model.Menu, course model.Course, idx int, dish model.Dish) error {
	if !course.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCourse, string(course))
	}
	dishes := append([]model.Dish{}, menu.Dishes(course)...)
	if idx < 0 || idx >= len(dishes) {
		return fmt.Errorf("%w: dish %d of %d", ErrIndexOutOfRange, idx, len(dishes))
	}
	allergens, err := NormalizeAllergens(dish.Allergens)
	if err != nil {
		return err
	}
	dish.Allergens = allergens
	dish.Ingredients = AddTags(nil, dish.Ingredients...)
	dishes[idx] = dish
	return menu.SetDishes(course, dishes)
}
