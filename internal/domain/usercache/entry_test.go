package usercache

import (
	"testing"
	"time"

	"routeplanner/internal/domain/model"
)

func samplePool() []model.POI {
	return []model.POI{
		{ID: "poi_1", Category: model.CategoryRestaurant},
		{ID: "poi_2", Category: model.CategoryRestaurant},
		{ID: "poi_3", Category: model.CategoryCulture},
		{ID: "poi_4", Category: model.CategoryNatureView},
	}
}

func TestBuildEntry_AvailableExcludesRouteMembers(t *testing.T) {
	route := model.Route{ID: 1, Stops: []model.Stop{
		{POIID: "poi_1", Category: model.CategoryRestaurant},
		{POIID: "poi_3", Category: model.CategoryCulture},
	}}
	entry := BuildEntry("user_1", model.ModeWalking, []model.Route{route}, samplePool(), time.Hour)

	if entry.AvailableSet(model.CategoryRestaurant)["poi_1"] {
		t.Error("poi_1 is in the route, must not appear in its category's available set")
	}
	if !entry.AvailableSet(model.CategoryRestaurant)["poi_2"] {
		t.Error("poi_2 is unused, should be available")
	}
	if entry.AvailableSet(model.CategoryCulture)["poi_3"] {
		t.Error("poi_3 is in the route, must not appear in its category's available set")
	}
	if entry.NextRouteID != 2 {
		t.Errorf("got NextRouteID %d, want 2", entry.NextRouteID)
	}
}

func TestSetRoute_ReleasesReplacedMembersBackToAvailable(t *testing.T) {
	pool := samplePool()
	entry := model.NewUserCacheEntry("user_1", model.ModeWalking, time.Hour)
	SetRoute(entry, "1", []model.RouteMember{
		{POIID: "poi_1", Category: model.CategoryRestaurant},
		{POIID: "poi_3", Category: model.CategoryCulture},
	}, pool)

	if entry.AvailableSet(model.CategoryRestaurant)["poi_1"] {
		t.Fatal("poi_1 should be removed from available once placed in a route")
	}

	SetRoute(entry, "1", []model.RouteMember{
		{POIID: "poi_2", Category: model.CategoryRestaurant},
	}, pool)

	if !entry.AvailableSet(model.CategoryRestaurant)["poi_1"] {
		t.Error("poi_1 was displaced from the route and should return to available")
	}
	if entry.AvailableSet(model.CategoryRestaurant)["poi_2"] {
		t.Error("poi_2 now occupies the route and must not be available")
	}
}

func TestReplaceStop_MarksOldAsSubstitutedAndSwapsMember(t *testing.T) {
	pool := samplePool()
	entry := model.NewUserCacheEntry("user_1", model.ModeWalking, time.Hour)
	SetRoute(entry, "1", []model.RouteMember{
		{POIID: "poi_1", Category: model.CategoryRestaurant},
	}, pool)

	member, ok := ReplaceStop(entry, "1", "poi_1", "poi_2")
	if !ok {
		t.Fatal("expected ReplaceStop to find poi_1 in route 1")
	}
	if member.POIID != "poi_2" {
		t.Errorf("got member %q, want poi_2", member.POIID)
	}
	if !entry.SubstitutedSet(model.CategoryRestaurant)["poi_1"] {
		t.Error("poi_1 should be recorded as already-substituted")
	}
	if entry.AvailableSet(model.CategoryRestaurant)["poi_1"] {
		t.Error("a substituted-out POI must not reappear as available")
	}
	if _, _, ok := FindStop(entry, "1", "poi_2"); !ok {
		t.Error("poi_2 should now be findable in route 1")
	}
}

func TestReplaceStop_NotFoundReturnsFalse(t *testing.T) {
	entry := model.NewUserCacheEntry("user_1", model.ModeWalking, time.Hour)
	if _, ok := ReplaceStop(entry, "missing_route", "poi_1", "poi_2"); ok {
		t.Error("expected ReplaceStop on a missing route to report not-found")
	}
}

func TestDeleteRoute_ReleasesAllMembers(t *testing.T) {
	pool := samplePool()
	entry := model.NewUserCacheEntry("user_1", model.ModeWalking, time.Hour)
	SetRoute(entry, "1", []model.RouteMember{
		{POIID: "poi_1", Category: model.CategoryRestaurant},
	}, pool)

	DeleteRoute(entry, "1", pool)

	if _, exists := entry.Routes["1"]; exists {
		t.Error("route 1 should be gone after DeleteRoute")
	}
	if !entry.AvailableSet(model.CategoryRestaurant)["poi_1"] {
		t.Error("poi_1 should return to available once its route is deleted")
	}
}
