// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import (
	"fmt"

	"github.com/quixsi/luxeplate/internal/model"
)

// Move returns a copy of items where the element at from has been taken out
// and reinserted at to. Elements in between shift by one position.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: move %d -> %d in %d items", ErrIndexOutOfRange, from, to, len(items))
	}
	out := make([]T, 0, len(items))
	moved := items[from]
	for i, item := range items {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, moved)
		}
		out = append(out, item)
	}
	if len(out) == to {
		out = append(out, moved)
	}
	return out, nil
}

// MoveCourse reorders the course display order of the menu.
func MoveCourse(menu *model.Menu, from, to int) error {
	order, err := Move(menu.Order(), from, to)
	if err != nil {
		return err
	}
	menu.CourseOrder = order
	return nil
}

func MoveDish(menu *model.Menu, course model.Course, from, to int) error {
	if !course.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCourse, string(course))
	}
	dishes, err := Move(menu.Dishes(course), from, to)
	if err != nil {
		return err
	}
	return menu.SetDishes(course, dishes)
}
