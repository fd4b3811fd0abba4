// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import "errors"

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrLastDish         = errors.New("every course needs at least one dish")
	ErrEmptyCourse      = errors.New("course has no dishes")
	ErrMenuNameRequired = errors.New("menu name is required")
	ErrMenuNotFound     = errors.New("menu not found")
	ErrLastMenu         = errors.New("a chef needs at least one menu")
	ErrUnknownAllergen  = errors.New("unknown allergen")
)
