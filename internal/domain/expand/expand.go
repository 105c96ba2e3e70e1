// Package expand implements C5, the query expander: mapping a free-text
// interest phrase into canonical categories, with meal-window injection.
package expand

import (
	"fmt"
	"strings"
	"time"

	"routeplanner/internal/domain/model"
)

// LunchWindowStart/End and DinnerWindowStart/End are the meal windows from
// §6's configuration defaults.
var (
	LunchWindowStart  = clock(11, 30)
	LunchWindowEnd    = clock(13, 30)
	DinnerWindowStart = clock(18, 0)
	DinnerWindowEnd   = clock(20, 0)
)

type clockTime struct{ h, m int }

func clock(h, m int) clockTime { return clockTime{h, m} }

// SetMealWindows overrides the compiled-in lunch/dinner windows from
// configured "HH:MM" strings, letting deployments retune §6's defaults
// without a code change. Malformed strings are ignored, leaving the prior
// value in place.
func SetMealWindows(lunchStart, lunchEnd, dinnerStart, dinnerEnd string) {
	if c, ok := parseClock(lunchStart); ok {
		LunchWindowStart = c
	}
	if c, ok := parseClock(lunchEnd); ok {
		LunchWindowEnd = c
	}
	if c, ok := parseClock(dinnerStart); ok {
		DinnerWindowStart = c
	}
	if c, ok := parseClock(dinnerEnd); ok {
		DinnerWindowEnd = c
	}
}

func parseClock(s string) (clockTime, bool) {
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 {
		return clockTime{}, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return clockTime{}, false
	}
	return clock(h, m), true
}

const foodAlias = "Food & Local Flavours"

// Result is the ordered, deduplicated category list plus the meal-anchor
// flag produced by Expand.
type Result struct {
	Categories  []model.Category
	MealAnchor  bool
}

// Expand implements the five ordered rules in §4.5.
func Expand(rawQuery string, customerLike bool, currentTime *time.Time, budgetMinutes int) Result {
	tokens := splitCanonicalize(rawQuery)

	ordered := make([]model.Category, 0, len(tokens))
	seen := make(map[model.Category]bool)
	add := func(c model.Category) {
		if !seen[c] {
			seen[c] = true
			ordered = append(ordered, c)
		}
	}

	for _, tok := range tokens {
		if tok == foodAlias {
			add(model.CategoryCafeBakery)
			add(model.CategoryRestaurant)
			continue
		}
		add(model.Category(tok))
	}

	if isExactlyFoodSet(ordered) && customerLike {
		add(model.CategoryCulture)
	}

	mealAnchor := false
	if currentTime != nil && budgetMinutes > 0 && !seen[model.CategoryRestaurant] {
		windowEnd := currentTime.Add(time.Duration(budgetMinutes) * time.Minute)
		if overlapsMealWindow(*currentTime, windowEnd) {
			add(model.CategoryRestaurant)
			mealAnchor = true
		}
	}

	return Result{Categories: ordered, MealAnchor: mealAnchor}
}

func splitCanonicalize(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		out = append(out, canonicalCase(t))
	}
	return out
}

// canonicalCase title-cases each word so variants like "restaurant" or
// "RESTAURANT" match the fixed category vocabulary's casing, while leaving
// the multi-word alias and "&"-joined categories intact.
func canonicalCase(s string) string {
	normalized := strings.Join(strings.Fields(s), " ")
	for _, known := range []model.Category{
		model.CategoryRestaurant, model.CategoryCafeBakery, model.CategoryCulture,
		model.CategoryNatureView, model.CategoryEntertain, model.CategoryShopping, model.CategoryBar,
	} {
		if strings.EqualFold(normalized, string(known)) {
			return string(known)
		}
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "&" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isExactlyFoodSet(cats []model.Category) bool {
	if len(cats) != 2 {
		return false
	}
	hasCafe, hasRestaurant := false, false
	for _, c := range cats {
		switch c {
		case model.CategoryCafeBakery:
			hasCafe = true
		case model.CategoryRestaurant:
			hasRestaurant = true
		}
	}
	return hasCafe && hasRestaurant
}

func overlapsMealWindow(a, b time.Time) bool {
	return windowsOverlap(a, b, LunchWindowStart, LunchWindowEnd) ||
		windowsOverlap(a, b, DinnerWindowStart, DinnerWindowEnd)
}

func windowsOverlap(a, b time.Time, ws, we clockTime) bool {
	day := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	start := day.Add(time.Duration(ws.h)*time.Hour + time.Duration(ws.m)*time.Minute)
	end := day.Add(time.Duration(we.h)*time.Hour + time.Duration(we.m)*time.Minute)
	return start.Before(b) && end.After(a)
}
