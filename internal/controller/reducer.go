// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
)

// The functions in this file are the pure part of the controller. They take
// the current state plus whatever the controller fetched and return the next
// state. On error the returned state is the one to keep, it may carry an auth
// prompt or a notice but never a half applied transition.

func move(s State, ev Event) (State, error) {
	to, err := Next(s.View, ev, s.Role())
	if err != nil {
		return s, err
	}
	s.View = to
	return s, nil
}

func requireSession(s State) (State, error) {
	if s.Session == nil {
		s.AuthPrompt = true
		return s, ErrAuthRequired
	}
	return s, nil
}

func selectChef(s State, chef *model.Chef) (State, error) {
	menu, err := chef.DefaultMenu()
	if err != nil {
		return s, err
	}
	next, err := move(s, EventSelectChef)
	if err != nil {
		return s, err
	}
	next.Focus.Chef = chef
	next.Focus.Menu = menu
	next.SimilarMenus = nil
	next.Notice = ""
	return next, nil
}

func similarMenusLoaded(s State, chefID uuid.UUID, recs []model.MenuRecommendation) State {
	// the user may have moved on while the advisor was thinking
	if s.Focus.Chef == nil || s.Focus.Chef.ID != chefID {
		return s
	}
	s.SimilarMenus = recs
	return s
}

func bookMenu(s State, menuID uuid.UUID) (State, error) {
	if s.Focus.Chef == nil {
		return s, ErrNoFocus
	}
	if next, err := requireSession(s); err != nil {
		return next, err
	}
	menu, ok := s.Focus.Chef.MenuByID(menuID)
	if !ok {
		return s, editor.ErrMenuNotFound
	}
	next, err := move(s, EventBookMenu)
	if err != nil {
		return s, err
	}
	next.Focus.Menu = menu
	next.Notice = ""
	return next, nil
}

func beginBooking(s State) (State, error) {
	if next, err := requireSession(s); err != nil {
		return next, err
	}
	if s.View != ViewBookingFlow {
		return s, ErrIllegalTransition
	}
	if s.Focus.Chef == nil || s.Focus.Menu == nil {
		return s, ErrNoFocus
	}
	s.Busy = true
	s.Notice = ""
	return s, nil
}

func bookingFailed(s State, notice string) State {
	s.Busy = false
	s.Notice = notice
	return s
}

// bookingConfirmed always ends on the success screen, the booking is charged
// and stored by the time it runs.
func bookingConfirmed(s State, booking *model.Booking, message string) State {
	next, err := move(s, EventBookingConfirmed)
	if err != nil {
		next = s
		next.View = ViewBookingSuccess
	}
	next.Busy = false
	next.Focus.LastBooking = booking
	next.Confirmation = message
	next.Bookings = append([]*model.Booking{booking}, s.Bookings...)
	next.Notice = ""
	return next
}

func cancelBooking(s State) (State, error) {
	next, err := move(s, EventCancelBooking)
	if err != nil {
		return s, err
	}
	next.Notice = ""
	return next, nil
}

func finishBooking(s State) (State, error) {
	next, err := move(s, EventBookingDone)
	if err != nil {
		return s, err
	}
	next.Confirmation = ""
	return next, nil
}

func search(s State, params model.SearchParams, chefs []*model.Chef) (State, error) {
	next, err := move(s, EventSearch)
	if err != nil {
		return s, err
	}
	next.Search = params
	next.Chefs = chefs
	next.Suggestions = nil
	return next, nil
}

func back(s State) (State, error) {
	return move(s, EventBack)
}

// TabData is what a tab shows, fetched before switching to it.
type TabData struct {
	Favorites []*model.Chef
	Bookings  []*model.Booking
}

func changeTab(s State, tab Tab, data TabData) (State, error) {
	if tab == TabExplore {
		next, err := move(s, EventExplore)
		if err != nil {
			return s, err
		}
		next.ActiveTab = TabExplore
		return next, nil
	}
	if next, err := requireSession(s); err != nil {
		return next, err
	}
	next, err := move(s, EventOpenTab)
	if err != nil {
		return s, err
	}
	next.ActiveTab = tab
	switch tab {
	case TabFavorites:
		next.Favorites = data.Favorites
	case TabEvents:
		next.Bookings = data.Bookings
	}
	return next, nil
}

func logout(s State) State {
	next, err := move(s, EventLogout)
	if err != nil {
		next = s
		next.View = ViewHome
	}
	next.Session = nil
	next.ActiveTab = TabExplore
	next.Focus = Focus{}
	next.MyChef = nil
	next.ChefLoginMode = false
	next.AuthPrompt = false
	next.Busy = false
	next.Favorites = nil
	next.Bookings = nil
	next.SimilarMenus = nil
	next.Confirmation = ""
	next.Notice = ""
	return next
}

// sessionChanged installs a new session. myChef is the chef record owned by
// the user, if any, and moves a chef straight to the dashboard.
func sessionChanged(s State, user *model.User, myChef *model.Chef) State {
	if user == nil {
		return logout(s)
	}
	if s.Session == nil || s.Session.ID != user.ID {
		s.Favorites = nil
		s.Bookings = nil
	}
	s.Session = user
	s.AuthPrompt = false
	s.Notice = ""
	s.MyChef = nil
	if user.Role != model.RoleChef || myChef == nil {
		return s
	}
	next, err := move(s, EventChefRecordResolved)
	if err != nil {
		return s
	}
	next.MyChef = myChef
	next.ChefLoginMode = false
	return next
}

func showsFavorites(s State) bool {
	return s.View == ViewUserProfile && s.ActiveTab == TabFavorites
}

func favoritesToggled(s State, user *model.User, favorites []*model.Chef) State {
	s.Session = user
	if showsFavorites(s) {
		s.Favorites = favorites
	}
	return s
}

// chefUpdated swaps every copy of the chef held by the state.
func chefUpdated(s State, chef *model.Chef) State {
	if s.Focus.Chef != nil && s.Focus.Chef.ID == chef.ID {
		s.Focus.Chef = chef
		if s.Focus.Menu != nil {
			if m, ok := chef.MenuByID(s.Focus.Menu.ID); ok {
				s.Focus.Menu = m
			} else {
				s.Focus.Menu, _ = chef.DefaultMenu()
			}
		}
	}
	if s.MyChef != nil && s.MyChef.ID == chef.ID {
		s.MyChef = chef
	}
	s.Chefs = replaceChef(s.Chefs, chef)
	s.Favorites = replaceChef(s.Favorites, chef)
	return s
}

func replaceChef(chefs []*model.Chef, chef *model.Chef) []*model.Chef {
	for i, c := range chefs {
		if c.ID == chef.ID {
			out := append([]*model.Chef(nil), chefs...)
			out[i] = chef
			return out
		}
	}
	return chefs
}

func requestAdminLogin(s State) (State, error) {
	next, err := move(s, EventRequestAdminLogin)
	if err != nil {
		return s, err
	}
	next.AuthPrompt = false
	next.ChefLoginMode = false
	next.Notice = ""
	return next, nil
}

func adminLoginSucceeded(s State, user *model.User) (State, error) {
	next, err := move(sessionChanged(s, user, nil), EventAdminLoginSucceeded)
	if err != nil {
		return s, err
	}
	return next, nil
}

func denied(s State, notice string) (State, error) {
	s.Notice = notice
	return s, ErrForbidden
}

// loginDenied drops the session a role login opened for the wrong role and
// keeps the login screen up with the denial.
func loginDenied(s State, notice string) (State, error) {
	next := logout(s)
	next.View = s.View
	next.ChefLoginMode = s.ChefLoginMode
	return denied(next, notice)
}

func cancelAdminLogin(s State) (State, error) {
	next, err := move(s, EventCancelAdminLogin)
	if err != nil {
		return s, err
	}
	next.Notice = ""
	return next, nil
}

func exitAdmin(s State) (State, error) {
	return move(s, EventExitAdmin)
}

func enterChefLogin(s State) State {
	s.ChefLoginMode = true
	s.AuthPrompt = false
	s.Notice = ""
	return s
}

func cancelChefLogin(s State) State {
	s.ChefLoginMode = false
	s.Notice = ""
	return s
}

func dismissAuth(s State) State {
	s.AuthPrompt = false
	s.Notice = ""
	return s
}

// navigate handles a direct jump to a view, for instance from a bookmarked
// URL. Screens that need a role or a focus the state does not have redirect
// or prompt instead of opening.
func navigate(s State, to View) (State, error) {
	switch to {
	case ViewHome:
		return changeTab(s, TabExplore, TabData{})
	case ViewSearchResults:
		return search(s, s.Search, s.Chefs)
	case ViewChefProfile:
		if s.Focus.Chef == nil {
			return s, ErrNoFocus
		}
		return selectChef(s, s.Focus.Chef)
	case ViewBookingFlow:
		if s.Focus.Menu == nil {
			return s, ErrNoFocus
		}
		return bookMenu(s, s.Focus.Menu.ID)
	case ViewUserProfile:
		tab := s.ActiveTab
		if tab == TabExplore {
			tab = TabProfile
		}
		return changeTab(s, tab, TabData{Favorites: s.Favorites, Bookings: s.Bookings})
	case ViewChefDashboard:
		if s.Role() == model.RoleChef && s.MyChef != nil {
			return move(s, EventChefRecordResolved)
		}
		s = enterChefLogin(s)
		return s, ErrAuthRequired
	case ViewAdminLogin:
		return requestAdminLogin(s)
	case ViewAdmin:
		if s.Role() != model.RoleAdmin {
			s.View = ViewHome
			return denied(s, noticeAdminDenied)
		}
		if next, err := move(s, EventOpenAdmin); err == nil {
			return next, nil
		}
		return requestAdminLogin(s)
	}
	return s, ErrIllegalTransition
}
