// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package editor

import (
	"fmt"
	"strings"
)

// Allergens is the fixed set of allergen labels a dish can carry.
var Allergens = []string{
	"Gluten", "Dairy", "Nuts", "Shellfish", "Eggs", "Soy", "Fish",
	"Peanuts", "Sulphites", "Mustard", "Celery", "Sesame", "Lupin", "Molluscs",
}

// CommonIngredients feeds the ingredient suggestions. Free text is allowed too.
var CommonIngredients = []string{
	"Fleur de Sel", "Black Truffle", "Extra Virgin Olive Oil", "Shallots", "Garlic", "Unsalted Butter",
	"Organic Lemon", "Fresh Thyme", "Italian Basil", "Madagascar Vanilla", "Double Cream", "Panko Breadcrumbs",
	"Saffron Threads", "Smoked Paprika", "Balsamic Glaze", "Chives", "Miso Paste", "Ginger",
	"Wagyu Beef", "Corn-fed Chicken", "Hand-dived Scallops", "Atlantic Salmon", "Wild Mushrooms", "Burrata",
	"Parmigiano Reggiano",
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTags splits every input on commas and appends the trimmed parts that
// are not already present, ignoring case.
func AddTags(tags []string, inputs ...string) []string {
	out := append([]string{}, tags...)
	for _, in := range inputs {
		for _, part := range strings.Split(in, ",") {
			part = strings.TrimSpace(part)
			if part == "" || containsFold(out, part) {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !strings.EqualFold(t, tag) {
			out = append(out, t)
		}
	}
	return out
}

// Suggestions lists the vocabulary entries not yet in tags that contain term.
func Suggestions(tags, vocabulary []string, term string) []string {
	var out []string
	for _, v := range FilterOptions(vocabulary, term) {
		if !containsFold(tags, v) {
			out = append(out, v)
		}
	}
	return out
}

// FilterOptions keeps the options containing term, ignoring case.
func FilterOptions(options []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]string, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o), term) {
			out = append(out, o)
		}
	}
	return out
}

func canonicalAllergen(label string) (string, bool) {
	for _, a := range Allergens {
		if strings.EqualFold(a, strings.TrimSpace(label)) {
			return a, true
		}
	}
	return "", false
}

// ToggleAllergen adds or removes a label of the fixed allergen list.
func ToggleAllergen(selected []string, label string) ([]string, error) {
	canonical, ok := canonicalAllergen(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAllergen, label)
	}
	if containsFold(selected, canonical) {
		return RemoveTag(selected, canonical), nil
	}
	return append(append([]string{}, selected...), canonical), nil
}

// NormalizeAllergens maps labels onto their canonical spelling and drops
// duplicates.
func NormalizeAllergens(labels []string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		canonical, ok := canonicalAllergen(l)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAllergen, l)
		}
		if !containsFold(out, canonical) {
			out = append(out, canonical)
		}
	}
	return out, nil
}
