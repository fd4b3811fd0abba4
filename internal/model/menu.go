// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"fmt"

	"github.com/google/uuid"
)

type Course string

const (
	CourseStarter Course = "starter"
	CourseMain    Course = "main"
	CourseDessert Course = "dessert"
)

// DefaultCourseOrder is used whenever a menu carries no explicit order.
var DefaultCourseOrder = []Course{CourseStarter, CourseMain, CourseDessert}

func (c Course) Valid() bool {
	switch c {
	case CourseStarter, CourseMain, CourseDessert:
		return true
	}
	return false
}

type Dish struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsSignature bool     `json:"is_signature,omitempty"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
	Image       string   `json:"image,omitempty"`
}

func (d Dish) clone() Dish {
	d.Ingredients = append([]string{}, d.Ingredients...)
	d.Allergens = append([]string{}, d.Allergens...)
	return d
}

type Courses struct {
	Starter []Dish `json:"starter"`
	Main    []Dish `json:"main"`
	Dessert []Dish `json:"dessert"`
}

type Menu struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PricePerHead float64   `json:"price_per_head"`
	Description  string    `json:"description"`
	Courses      Courses   `json:"courses"`
	CourseOrder  []Course  `json:"course_order,omitempty"`
}

// Order returns the display order of the courses, falling back to
// DefaultCourseOrder when none is stored.
func (m *Menu) Order() []Course {
	if len(m.CourseOrder) == 0 {
		return append([]Course{}, DefaultCourseOrder...)
	}
	return append([]Course{}, m.CourseOrder...)
}

func (m *Menu) Dishes(c Course) []Dish {
	switch c {
	case CourseStarter:
		return m.Courses.Starter
	case CourseMain:
		return m.Courses.Main
	case CourseDessert:
		return m.Courses.Dessert
	}
	return nil
}

func (m *Menu) SetDishes(c Course, dishes []Dish) error {
	switch c {
	case CourseStarter:
		m.Courses.Starter = dishes
	case CourseMain:
		m.Courses.Main = dishes
	case CourseDessert:
		m.Courses.Dessert = dishes
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCourse, string(c))
	}
	return nil
}

func (m *Menu) Clone() *Menu {
	if m == nil {
		return nil
	}
	out := *m
	if m.CourseOrder != nil {
		out.CourseOrder = append([]Course{}, m.CourseOrder...)
	}
	out.Courses = Courses{
		Starter: cloneDishes(m.Courses.Starter),
		Main:    cloneDishes(m.Courses.Main),
		Dessert: cloneDishes(m.Courses.Dessert),
	}
	return &out
}

func cloneDishes(in []Dish) []Dish {
	if in == nil {
		return nil
	}
	out := make([]Dish, len(in))
	for i, d := range in {
		out[i] = d.clone()
	}
	return out
}

// ValidateCourseOrder accepts an empty order (the default) or a permutation
// of exactly the three known courses.
func ValidateCourseOrder(order []Course) error {
	if len(order) == 0 {
		return nil
	}
	if len(order) != len(DefaultCourseOrder) {
		return fmt.Errorf("%w: want %d courses, got %d", ErrInvalidCourseOrder, len(DefaultCourseOrder), len(order))
	}
	seen := make(map[Course]bool, len(order))
	for _, c := range order {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown course %q", ErrInvalidCourseOrder, string(c))
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate course %q", ErrInvalidCourseOrder, string(c))
		}
		seen[c] = true
	}
	return nil
}
