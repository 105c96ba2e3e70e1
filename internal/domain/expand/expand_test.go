package expand

import (
	"testing"
	"time"

	"routeplanner/internal/domain/model"
)

func TestExpand_FoodAliasExpansion(t *testing.T) {
	r := Expand("Food & Local Flavours", false, nil, 0)
	if len(r.Categories) != 2 || r.Categories[0] != model.CategoryCafeBakery || r.Categories[1] != model.CategoryRestaurant {
		t.Fatalf("unexpected expansion: %v", r.Categories)
	}
}

func TestExpand_CustomerLikeInjectsCulture(t *testing.T) {
	r := Expand("Food & Local Flavours", true, nil, 0)
	if len(r.Categories) != 3 || r.Categories[2] != model.CategoryCulture {
		t.Fatalf("expected Culture & heritage appended, got %v", r.Categories)
	}
}

func TestExpand_MealInjection(t *testing.T) {
	current := time.Date(2026, 2, 5, 11, 0, 0, 0, time.UTC)
	r := Expand("Culture & heritage", false, &current, 180)
	if !r.MealAnchor {
		t.Fatal("expected meal anchor to fire (11:00 + 180min overlaps lunch window)")
	}
	found := false
	for _, c := range r.Categories {
		if c == model.CategoryRestaurant {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Restaurant injected")
	}
}

func TestExpand_NoMealInjectionWhenRestaurantAlreadyPresent(t *testing.T) {
	current := time.Date(2026, 2, 5, 11, 0, 0, 0, time.UTC)
	r := Expand("Restaurant", false, &current, 180)
	if r.MealAnchor {
		t.Fatal("must not mark meal-anchored when Restaurant already requested")
	}
}

func TestExpand_Dedup(t *testing.T) {
	r := Expand("Restaurant, restaurant, Bar", false, nil, 0)
	if len(r.Categories) != 2 {
		t.Fatalf("expected dedup to [Restaurant Bar], got %v", r.Categories)
	}
}
