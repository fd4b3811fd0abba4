// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"fmt"

	"github.com/quixsi/luxeplate/internal/model"
)

type Event int

const (
	EventSelectChef Event = iota
	EventBookMenu
	EventBookingConfirmed
	EventCancelBooking
	EventBookingDone
	EventSearch
	EventBack
	EventExplore
	EventOpenTab
	EventLogout
	EventChefRecordResolved
	EventRequestAdminLogin
	EventAdminLoginSucceeded
	EventCancelAdminLogin
	EventExitAdmin
	EventOpenAdmin
)

var eventNames = []string{
	"SelectChef", "BookMenu", "BookingConfirmed", "CancelBooking", "BookingDone", "Search",
	"Back", "Explore", "OpenTab", "Logout", "ChefRecordResolved", "RequestAdminLogin",
	"AdminLoginSucceeded", "CancelAdminLogin", "ExitAdmin", "OpenAdmin",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

const (
	anyView View       = -1
	anyRole model.Role = -1
)

var signedIn = []model.Role{model.RoleDiner, model.RoleChef, model.RoleAdmin}

type transitionKey struct {
	from  View
	event Event
	role  model.Role
}

type rule struct {
	from  View
	event Event
	roles []model.Role // nil matches every role, guests included
	to    View
}

var rules = []rule{
	{from: anyView, event: EventSelectChef, to: ViewChefProfile},
	{from: ViewChefProfile, event: EventBookMenu, roles: signedIn, to: ViewBookingFlow},
	{from: ViewBookingFlow, event: EventBookingConfirmed, roles: signedIn, to: ViewBookingSuccess},
	{from: ViewBookingFlow, event: EventCancelBooking, to: ViewChefProfile},
	{from: ViewBookingSuccess, event: EventBookingDone, to: ViewHome},
	{from: anyView, event: EventSearch, to: ViewSearchResults},
	{from: ViewChefProfile, event: EventBack, to: ViewSearchResults},
	{from: anyView, event: EventExplore, to: ViewHome},
	{from: anyView, event: EventOpenTab, roles: signedIn, to: ViewUserProfile},
	{from: anyView, event: EventLogout, to: ViewHome},
	{from: anyView, event: EventChefRecordResolved, roles: []model.Role{model.RoleChef}, to: ViewChefDashboard},
	{from: anyView, event: EventRequestAdminLogin, to: ViewAdminLogin},
	{from: ViewAdminLogin, event: EventAdminLoginSucceeded, roles: []model.Role{model.RoleAdmin}, to: ViewAdmin},
	{from: ViewAdminLogin, event: EventCancelAdminLogin, to: ViewHome},
	{from: ViewUserProfile, event: EventOpenAdmin, roles: []model.Role{model.RoleAdmin}, to: ViewAdmin},
	{from: ViewAdmin, event: EventExitAdmin, to: ViewHome},
}

var transitions = buildTransitions(rules)

func buildTransitions(rules []rule) map[transitionKey]View {
	table := make(map[transitionKey]View, len(rules))
	for _, r := range rules {
		roles := r.roles
		if roles == nil {
			roles = []model.Role{anyRole}
		}
		for _, role := range roles {
			key := transitionKey{from: r.from, event: r.event, role: role}
			if _, dup := table[key]; dup {
				panic(fmt.Sprintf("duplicate transition %v/%v/%v", r.from, r.event, role))
			}
			table[key] = r.to
		}
	}
	return table
}

// Next looks up the view reached from view on event for role. The most
// specific entry wins: exact view over any view, exact role over any role.
func Next(from View, event Event, role model.Role) (View, error) {
	for _, key := range []transitionKey{
		{from, event, role},
		{from, event, anyRole},
		{anyView, event, role},
		{anyView, event, anyRole},
	} {
		if to, ok := transitions[key]; ok {
			return to, nil
		}
	}
	return from, fmt.Errorf("%w: %s on %s as %s", ErrIllegalTransition, event, from, role)
}
