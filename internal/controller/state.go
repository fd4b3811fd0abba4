// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"fmt"
	"strings"

	"github.com/quixsi/luxeplate/internal/model"
)

type View int

const (
	ViewHome View = iota
	ViewSearchResults
	ViewChefProfile
	ViewBookingFlow
	ViewBookingSuccess
	ViewUserProfile
	ViewChefDashboard
	ViewAdminLogin
	ViewAdmin
)

var viewNames = []string{
	"HOME", "SEARCH_RESULTS", "CHEF_PROFILE", "BOOKING_FLOW", "BOOKING_SUCCESS",
	"USER_PROFILE", "CHEF_DASHBOARD", "ADMIN_LOGIN", "ADMIN",
}

func (v View) String() string {
	if v >= 0 && int(v) < len(viewNames) {
		return viewNames[v]
	}
	if v == anyView {
		return "*"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func (v View) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *View) UnmarshalText(b []byte) error {
	in := strings.ToUpper(strings.TrimSpace(string(b)))
	for i, n := range viewNames {
		if n == in {
			*v = View(i)
			return nil
		}
	}
	return fmt.Errorf("unknown view %q", string(b))
}

type Tab int

const (
	TabExplore Tab = iota
	TabFavorites
	TabEvents
	TabProfile
)

var tabNames = []string{"EXPLORE", "FAVORITES", "EVENTS", "PROFILE"}

func (t Tab) String() string {
	if t >= 0 && int(t) < len(tabNames) {
		return tabNames[t]
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

func (t Tab) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tab) UnmarshalText(b []byte) error {
	in := strings.ToUpper(strings.TrimSpace(string(b)))
	for i, n := range tabNames {
		if n == in {
			*t = Tab(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", string(b))
}

// Focus holds non-owning references to what the current screen works on.
type Focus struct {
	Chef        *model.Chef    `json:"chef,omitempty"`
	Menu        *model.Menu    `json:"menu,omitempty"`
	LastBooking *model.Booking `json:"last_booking,omitempty"`
}

// State is everything a client needs to render the current screen. Entities
// referenced from a State are treated as immutable, reducers replace them
// instead of editing them.
type State struct {
	View          View                       `json:"view"`
	ActiveTab     Tab                        `json:"active_tab"`
	Focus         Focus                      `json:"focus"`
	Session       *model.User                `json:"session,omitempty"`
	ChefLoginMode bool                       `json:"chef_login_mode"`
	AuthPrompt    bool                       `json:"auth_prompt"`
	Search        model.SearchParams         `json:"search"`
	Busy          bool                       `json:"busy"`
	Chefs         []*model.Chef              `json:"chefs"`
	Favorites     []*model.Chef              `json:"favorites,omitempty"`
	Bookings      []*model.Booking           `json:"bookings,omitempty"`
	MyChef        *model.Chef                `json:"my_chef,omitempty"`
	SimilarMenus  []model.MenuRecommendation `json:"similar_menus,omitempty"`
	Suggestions   []string                   `json:"suggestions,omitempty"`
	Confirmation  string                     `json:"confirmation,omitempty"`
	Notice        string                     `json:"notice,omitempty"`
}

// Initial is the state of a fresh browser session.
func Initial() State {
	return State{
		View:      ViewHome,
		ActiveTab: TabExplore,
		Search:    model.DefaultSearchParams(),
	}
}

// Role is the role of the session or RoleGuest without one.
func (s State) Role() model.Role {
	if s.Session == nil {
		return model.RoleGuest
	}
	return s.Session.Role
}

// Public returns the state without credentials of the session user.
func (s State) Public() State {
	if s.Session != nil {
		u := s.Session.Public()
		s.Session = &u
	}
	return s
}
