// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"github.com/google/uuid"
)

type Chef struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Bio             string    `json:"bio"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviews_count"`
	Cuisines        []string  `json:"cuisines"`
	ImageURL        string    `json:"image_url"`
	MinPrice        float64   `json:"min_price"`
	MinSpend        float64   `json:"min_spend"`
	Menus           []*Menu   `json:"menus"`
	YearsExperience int       `json:"years_experience"`
	EventsCount     int       `json:"events_count"`
	Badges          []string  `json:"badges,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// DefaultMenu is the menu focused when a chef is opened.
func (c *Chef) DefaultMenu() (*Menu, error) {
	if len(c.Menus) == 0 {
		return nil, ErrChefHasNoMenus
	}
	return c.Menus[0], nil
}

func (c *Chef) MenuByID(id uuid.UUID) (*Menu, bool) {
	for _, m := range c.Menus {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// PrimaryCuisine returns the first cuisine tag or an empty string.
func (c *Chef) PrimaryCuisine() string {
	if len(c.Cuisines) == 0 {
		return ""
	}
	return c.Cuisines[0]
}

// Clone returns a deep copy so callers can edit without touching a shared record.
func (c *Chef) Clone() *Chef {
	if c == nil {
		return nil
	}
	out := *c
	out.Cuisines = append([]string(nil), c.Cuisines...)
	out.Badges = append([]string(nil), c.Badges...)
	out.Tags = append([]string(nil), c.Tags...)
	out.Menus = make([]*Menu, len(c.Menus))
	for i, m := range c.Menus {
		out.Menus[i] = m.Clone()
	}
	return &out
}
