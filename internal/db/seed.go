// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/model"
)

var (
	ChefJulianID = uuid.MustParse("1c6c2f43-5f0b-4a51-9c39-0b8e6a1f0a01")
	ChefElenaID  = uuid.MustParse("1c6c2f43-5f0b-4a51-9c39-0b8e6a1f0a02")
	ChefKenjiID  = uuid.MustParse("1c6c2f43-5f0b-4a51-9c39-0b8e6a1f0a03")

	MenuProvenceID = uuid.MustParse("8d2e7a10-3b4c-4e1f-a8a2-6b7c1d2e0a1a")
	MenuAmalfiID   = uuid.MustParse("8d2e7a10-3b4c-4e1f-a8a2-6b7c1d2e0a2a")
	MenuOmakaseID  = uuid.MustParse("8d2e7a10-3b4c-4e1f-a8a2-6b7c1d2e0a3a")
)

// DemoChefs returns fresh copies of the seeded chefs, ordered by id.
func DemoChefs() []*model.Chef {
	return []*model.Chef{
		{
			ID:           ChefJulianID,
			Name:         "Julian Marchant",
			Location:     "Notting Hill, London",
			Bio:          "Classically trained French chef with a modern twist. I bring the elegance of Parisian fine dining to your home, focusing on seasonal British produce.",
			Rating:       4.9,
			ReviewsCount: 124,
			Cuisines:     []string{"French", "Modern European"},
			ImageURL:     "https://images.unsplash.com/photo-1577219491135-ce391730fb2c?q=80&w=800",
			MinPrice:     150,
			MinSpend:     600,
			Menus: []*model.Menu{{
				ID:           MenuProvenceID,
				Name:         "A Taste of Provence",
				PricePerHead: 150,
				Description:  "A vibrant, sun-kissed menu celebrating the rustic yet elegant flavours of Southern France, using the finest ingredients from local London suppliers.",
				Courses: model.Courses{
					Starter: []model.Dish{{
						Name:        "Heirloom Tomato Tart",
						Description: "With tapenade, goat's cheese mousse, and basil oil.",
						IsSignature: true,
						Ingredients: []string{"Tomato", "Goat Cheese", "Olives"},
						Allergens:   []string{"Gluten", "Dairy"},
					}},
					Main: []model.Dish{{
						Name:        "Pan-Seared Duck Breast",
						Description: "With lavender honey glaze, potato gratin, and seasonal greens.",
						Ingredients: []string{"Duck", "Honey", "Potato"},
						Allergens:   []string{"Dairy"},
					}},
					Dessert: []model.Dish{{
						Name:        "Valrhona Chocolate Fondant",
						Description: "Served with crème fraîche and a raspberry coulis.",
						Ingredients: []string{"Chocolate", "Egg", "Cream"},
						Allergens:   []string{"Gluten", "Dairy", "Eggs"},
					}},
				},
			}},
			YearsExperience: 15,
			EventsCount:     320,
			Badges:          []string{"Michelin Background", "Luxury Service"},
			Tags:            []string{"Classic French Technique", "Wine Pairing Expert"},
		},
		{
			ID:           ChefElenaID,
			Name:         "Elena Ricci",
			Location:     "Mayfair, London",
			Bio:          "Passionate about authentic Italian cuisine, my cooking is a journey through Italy's regions, from handmade pasta to delicate seafood.",
			Rating:       4.9,
			ReviewsCount: 98,
			Cuisines:     []string{"Italian", "Mediterranean"},
			ImageURL:     "https://images.unsplash.com/photo-1556157382-97eda2d62296?q=80&w=800",
			MinPrice:     120,
			MinSpend:     500,
			Menus: []*model.Menu{{
				ID:           MenuAmalfiID,
				Name:         "Amalfi Coast Discovery",
				PricePerHead: 120,
				Description:  "A fresh and zesty menu inspired by the coastal cuisine of Amalfi, focusing on fresh seafood, citrus, and artisanal ingredients.",
				Courses: model.Courses{
					Starter: []model.Dish{{
						Name:        "Hand-dived Scallop Crudo",
						Description: "With Amalfi lemon, pink peppercorns, and extra virgin olive oil.",
						Ingredients: []string{"Scallops", "Lemon"},
						Allergens:   []string{"Molluscs"},
					}},
					Main: []model.Dish{{
						Name:        "Squid Ink Tagliatelle",
						Description: "With lobster, cherry tomatoes, and chili.",
						IsSignature: true,
						Ingredients: []string{"Flour", "Squid Ink", "Lobster"},
						Allergens:   []string{"Gluten", "Shellfish"},
					}},
					Dessert: []model.Dish{{
						Name:        "Delizia al Limone",
						Description: "A light sponge cake with a rich lemon cream filling.",
						Ingredients: []string{"Lemon", "Cream", "Flour"},
						Allergens:   []string{"Gluten", "Dairy", "Eggs"},
					}},
				},
			}},
			YearsExperience: 10,
			EventsCount:     250,
			Badges:          []string{"Super Chef", "Italian Specialist"},
			Tags:            []string{"Handmade Pasta", "Regional Cuisine"},
		},
		{
			ID:           ChefKenjiID,
			Name:         "Kenji Tanaka",
			Location:     "Shoreditch, London",
			Bio:          "A master of modern Japanese cuisine, blending traditional Edomae techniques with a contemporary London edge. Omakase specialist.",
			Rating:       5.0,
			ReviewsCount: 75,
			Cuisines:     []string{"Japanese", "Asian Fusion"},
			ImageURL:     "https://images.unsplash.com/photo-1563255143-70523db42de3?q=80&w=800",
			MinPrice:     200,
			MinSpend:     800,
			Menus: []*model.Menu{{
				ID:           MenuOmakaseID,
				Name:         "Edomae Omakase",
				PricePerHead: 200,
				Description:  "A seasonal tasting menu curated based on the finest fish from the market, featuring aged sashimi, delicate nigiri, and hot dishes.",
				Courses: model.Courses{
					Starter: []model.Dish{{
						Name:        "Otoro Sashimi with Fresh Wasabi",
						Description: "Premium fatty tuna, aged for 5 days for maximum umami.",
						IsSignature: true,
						Ingredients: []string{"Tuna"},
						Allergens:   []string{"Fish"},
					}},
					Main: []model.Dish{{
						Name:        "A5 Wagyu Nigiri",
						Description: "Torched Kagoshima A5 Wagyu with a hint of yuzu kosho.",
						Ingredients: []string{"Wagyu Beef", "Rice"},
						Allergens:   []string{},
					}},
					Dessert: []model.Dish{{
						Name:        "Matcha Tiramisu",
						Description: "A Japanese take on the Italian classic, with mascarpone and premium Uji matcha.",
						Ingredients: []string{"Matcha", "Mascarpone"},
						Allergens:   []string{"Dairy", "Eggs", "Gluten"},
					}},
				},
			}},
			YearsExperience: 12,
			EventsCount:     180,
			Badges:          []string{"Top Rated", "Omakase Master"},
			Tags:            []string{"Sushi & Sashimi", "A5 Wagyu"},
		},
	}
}

// DemoUsers returns one chef-role account per seeded chef. Each shares the
// id of the chef record it owns.
func DemoUsers() []*model.User {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var users []*model.User
	for _, c := range DemoChefs() {
		users = append(users, &model.User{
			ID:              c.ID,
			CreatedAt:       &now,
			Name:            c.Name,
			Email:           chefEmail(c.Name),
			Role:            model.RoleChef,
			Avatar:          AvatarURL(c.Name, model.RoleChef),
			FavoriteChefIDs: []uuid.UUID{},
		})
	}
	return users
}

func chefEmail(name string) string {
	first := name
	for i, r := range name {
		if r == ' ' {
			first = name[:i]
			break
		}
	}
	return model.NormalizeEmail(first + "@luxeplate.com")
}

// AvatarURL builds the generated initials avatar used for new accounts.
func AvatarURL(name string, role model.Role) string {
	background := "d4af37"
	if role == model.RoleAdmin {
		background = "0f172a"
	}
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=%s&color=fff", url.QueryEscape(name), background)
}

func DemoJobs() []*model.JobPosting {
	return []*model.JobPosting{
		{
			ID:         uuid.MustParse("4a0f5b1e-7c2d-4f3a-9e8b-1d2c3b4a5f01"),
			Title:      "Head Private Chef - Mayfair Residence",
			Location:   "Mayfair, London",
			Salary:     "£85,000 - £95,000",
			Type:       "Full-time",
			Applicants: 12,
			Status:     "ACTIVE",
			Platform:   "LinkedIn",
			PostedDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.MustParse("4a0f5b1e-7c2d-4f3a-9e8b-1d2c3b4a5f02"),
			Title:      "Event Sushi Chef",
			Location:   "Shoreditch, London",
			Salary:     "£450 / event",
			Type:       "Event-based",
			Applicants: 5,
			Status:     "ACTIVE",
			Platform:   "Indeed",
			PostedDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}

func DemoContracts() []*model.Contract {
	return []*model.Contract{
		{
			ID:       uuid.MustParse("6b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d01"),
			ChefName: "Julian Marchant",
			Type:     "Exclusive Partnership",
			Status:   "SIGNED",
			Value:    48000,
			Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       uuid.MustParse("6b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d02"),
			ChefName: "Kenji Tanaka",
			Type:     "Event Contract",
			Status:   "PENDING",
			Value:    12000,
			Date:     time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}
