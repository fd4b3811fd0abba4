// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
)

// editMenu applies edit to one stored menu of the chef. The edited menu has
// to stay valid or nothing is saved.
func (c *Controller) editMenu(ctx context.Context, span trace.Span, chefID, menuID uuid.UUID, edit func(*model.Menu) error) (State, error) {
	span.SetAttributes(attribute.String("chef", chefID.String()), attribute.String("menu", menuID.String()))
	return c.editChef(ctx, span, chefID, func(chef *model.Chef) error {
		menu, ok := chef.MenuByID(menuID)
		if !ok {
			return editor.ErrMenuNotFound
		}
		if err := edit(menu); err != nil {
			return err
		}
		return editor.ValidateMenu(menu)
	})
}

// editDish applies edit to a copy of one dish and writes it back through
// editor.UpdateDish.
func (c *Controller) editDish(ctx context.Context, span trace.Span, chefID, menuID uuid.UUID, course model.Course, idx int, edit func(*model.Dish) error) (State, error) {
	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		if !course.Valid() {
			return fmt.Errorf("%w: %q", model.ErrUnknownCourse, string(course))
		}
		dishes := menu.Dishes(course)
		if idx < 0 || idx >= len(dishes) {
			return fmt.Errorf("%w: dish %d of %d", editor.ErrIndexOutOfRange, idx, len(dishes))
		}
		dish := dishes[idx]
		dish.Ingredients = append([]string{}, dish.Ingredients...)
		dish.Allergens = append([]string{}, dish.Allergens...)
		if err := edit(&dish); err != nil {
			return err
		}
		return editor.UpdateDish(menu, course, idx, dish)
	})
}

func (c *Controller) MoveCourse(ctx context.Context, chefID, menuID uuid.UUID, from, to int) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.MoveCourse")
	defer span.End()

	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		return editor.MoveCourse(menu, from, to)
	})
}

func (c *Controller) MoveDish(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, from, to int) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.MoveDish")
	defer span.End()

	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		return editor.MoveDish(menu, course, from, to)
	})
}

func (c *Controller) AddDish(ctx context.Context, chefID, menuID uuid.UUID, course model.Course) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.AddDish")
	defer span.End()

	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		return editor.AddDish(menu, course)
	})
}

// DeleteDish removes a dish. The last dish of a course stays.
func (c *Controller) DeleteDish(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, idx int) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.DeleteDish")
	defer span.End()

	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		return editor.DeleteDish(menu, course, idx)
	})
}

func (c *Controller) UpdateDish(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, idx int, dish model.Dish) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.UpdateDish")
	defer span.End()

	return c.editMenu(ctx, span, chefID, menuID, func(menu *model.Menu) error {
		return editor.UpdateDish(menu, course, idx, dish)
	})
}

// AddIngredients adds comma separated ingredients to a dish.
func (c *Controller) AddIngredients(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, idx int, input string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.AddIngredients")
	defer span.End()

	return c.editDish(ctx, span, chefID, menuID, course, idx, func(dish *model.Dish) error {
		dish.Ingredients = editor.AddTags(dish.Ingredients, input)
		return nil
	})
}

func (c *Controller) RemoveIngredient(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, idx int, ingredient string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.RemoveIngredient")
	defer span.End()

	return c.editDish(ctx, span, chefID, menuID, course, idx, func(dish *model.Dish) error {
		dish.Ingredients = editor.RemoveTag(dish.Ingredients, ingredient)
		return nil
	})
}

func (c *Controller) ToggleAllergen(ctx context.Context, chefID, menuID uuid.UUID, course model.Course, idx int, label string) (State, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Controller.ToggleAllergen")
	defer span.End()

	return c.editDish(ctx, span, chefID, menuID, course, idx, func(dish *model.Dish) error {
		allergens, err := editor.ToggleAllergen(dish.Allergens, label)
		if err != nil {
			return err
		}
		dish.Allergens = allergens
		return nil
	})
}
