// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "errors"

var (
	ErrChefHasNoMenus     = errors.New("chef has no menus")
	ErrUnknownCourse      = errors.New("unknown course")
	ErrInvalidCourseOrder = errors.New("invalid course order")
	ErrInvalidBooking     = errors.New("invalid booking")
)
