// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"errors"
	"net/http"

	"github.com/quixsi/luxeplate/internal/auth"
	"github.com/quixsi/luxeplate/internal/controller"
	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/parser/form"
	"github.com/quixsi/luxeplate/internal/payment"
)

type errorClass struct {
	status int
	code   string
	errs   []error
}

var errorClasses = []errorClass{
	{http.StatusUnauthorized, "AUTH_REQUIRED", []error{controller.ErrAuthRequired, auth.ErrInvalidCredentials}},
	{http.StatusForbidden, "FORBIDDEN", []error{controller.ErrForbidden}},
	{http.StatusConflict, "CONFLICT", []error{
		controller.ErrBookingInFlight, controller.ErrIllegalTransition, controller.ErrNoFocus,
		auth.ErrEmailTaken, db.ErrAlreadyExists,
	}},
	{http.StatusNotFound, "NOT_FOUND", []error{db.ErrNotFound, editor.ErrMenuNotFound}},
	{http.StatusUnprocessableEntity, "INVALID", []error{
		auth.ErrInvalidInput, model.ErrInvalidBooking, model.ErrChefHasNoMenus,
		model.ErrUnknownCourse, model.ErrInvalidCourseOrder,
		editor.ErrMenuNameRequired, editor.ErrEmptyCourse, editor.ErrLastDish,
		editor.ErrLastMenu, editor.ErrIndexOutOfRange, editor.ErrUnknownAllergen,
	}},
}

// classify maps an error to its HTTP status and a stable code.
func classify(err error) (int, string) {
	var perr *payment.Error
	if errors.As(err, &perr) {
		return http.StatusPaymentRequired, "PAYMENT_FAILED"
	}
	var ferr *form.FieldError
	if errors.As(err, &ferr) {
		return http.StatusUnprocessableEntity, "INVALID"
	}
	for _, class := range errorClasses {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return class.status, class.code
			}
		}
	}
	return http.StatusInternalServerError, "INTERNAL"
}
