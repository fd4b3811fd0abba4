// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/model"
)

// NewMenu returns a draft with one blank dish per course.
func NewMenu() *model.Menu {
	return &model.Menu{
		ID: uuid.New(),
		Courses: model.Courses{
			Starter: []model.Dish{BlankDish()},
			Main:    []model.Dish{BlankDish()},
			Dessert: []model.Dish{BlankDish()},
		},
		CourseOrder: append([]model.Course{}, model.DefaultCourseOrder...),
	}
}

func ValidateMenu(menu *model.Menu) error {
	if strings.TrimSpace(menu.Name) == "" {
		return ErrMenuNameRequired
	}
	if menu.PricePerHead < 0 {
		return fmt.Errorf("price per head must not be negative: %.2f", menu.PricePerHead)
	}
	if err := model.ValidateCourseOrder(menu.CourseOrder); err != nil {
		return err
	}
	for _, c := range model.DefaultCourseOrder {
		if len(menu.Dishes(c)) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCourse, c)
		}
	}
	return nil
}

// SaveMenu upserts a validated copy of menu into the chef's menu list by id.
func SaveMenu(chef *model.Chef, menu *model.Menu) error {
	if err := ValidateMenu(menu); err != nil {
		return err
	}
	saved := menu.Clone()
	saved.Name = strings.TrimSpace(saved.Name)
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
		menu.ID = saved.ID
	}
	for i, m := range chef.Menus {
		if m.ID == saved.ID {
			chef.Menus[i] = saved
			return nil
		}
	}
	chef.Menus = append(chef.Menus, saved)
	return nil
}

// DeleteMenu drops a menu from the chef. Bookings keep their own copy of the
// menu name and are not affected. The last menu of a chef cannot be deleted.
func DeleteMenu(chef *model.Chef, menuID uuid.UUID) error {
	for i, m := range chef.Menus {
		if m.ID == menuID {
			if len(chef.Menus) == 1 {
				return ErrLastMenu
			}
			menus := make([]*model.Menu, 0, len(chef.Menus)-1)
			menus = append(menus, chef.Menus[:i]...)
			chef.Menus = append(menus, chef.Menus[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
}
