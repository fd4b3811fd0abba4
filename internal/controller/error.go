// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrAuthRequired      = errors.New("please sign in to continue")
	ErrForbidden         = errors.New("access denied")
	ErrBookingInFlight   = errors.New("a booking is already being processed")
	ErrNoFocus           = errors.New("nothing selected")
	ErrNotOwner          = fmt.Errorf("%w: only the owning chef or an admin may edit this chef", ErrForbidden)
)

const (
	noticeAdminDenied = "Access Denied: You do not have administrator privileges."
	noticeChefDenied  = "This portal is strictly for registered chefs. Standard users please use the main app."
	noticeSaveFailed  = "Your payment went through but the booking could not be saved. Please contact support."
)
