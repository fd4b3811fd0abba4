// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "strings"

const AnyCuisine = "Any"

type SearchParams struct {
	Location string `json:"location" form:"location"`
	Date     string `json:"date" form:"date"`
	Guests   int    `json:"guests" form:"guests"`
	Cuisine  string `json:"cuisine,omitempty" form:"cuisine"`
}

func DefaultSearchParams() SearchParams {
	return SearchParams{Location: "London", Guests: 6}
}

// Matches applies a case-insensitive substring match on the location and an
// exact cuisine match. Guests and date do not filter.
func (p SearchParams) Matches(c *Chef) bool {
	if p.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(p.Location)) {
		return false
	}
	if p.Cuisine == "" || p.Cuisine == AnyCuisine {
		return true
	}
	for _, cuisine := range c.Cuisines {
		if cuisine == p.Cuisine {
			return true
		}
	}
	return false
}

type MenuRecommendation struct {
	ChefName     string  `json:"chef_name"`
	ChefID       string  `json:"chef_id"`
	ChefImage    string  `json:"chef_image"`
	MenuName     string  `json:"menu_name"`
	PricePerHead float64 `json:"price_per_head"`
	Description  string  `json:"description"`
	MatchReason  string  `json:"match_reason"`
}
