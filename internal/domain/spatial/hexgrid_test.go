package spatial

import (
	"testing"
)

func TestCellFor_IsStableForNearbyPoints(t *testing.T) {
	a := CellFor(35.681236, 139.767125, 9) // Tokyo station
	b := CellFor(35.681300, 139.767200, 9) // a few meters away
	if a != b {
		t.Errorf("expected two nearby points to land in the same cell, got %v and %v", a, b)
	}
}

func TestCellFor_DiffersAcrossResolutions(t *testing.T) {
	low := CellFor(35.681236, 139.767125, 5)
	high := CellFor(35.681236, 139.767125, 9)
	if low.Resolution == high.Resolution {
		t.Error("expected different resolutions to be recorded on the cell id")
	}
}

func TestCellID_StringFormat(t *testing.T) {
	c := CellID{Resolution: 9, Q: -3, R: 4}
	want := "h3:9:-3_4"
	if got := c.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestKRing_ZeroIsJustTheCenter(t *testing.T) {
	center := CellID{Resolution: 9, Q: 0, R: 0}
	ring := KRing(center, 0)
	if len(ring) != 1 || ring[0] != center {
		t.Fatalf("got %v, want exactly [%v]", ring, center)
	}
}

func TestKRing_SizeMatchesHexFormula(t *testing.T) {
	center := CellID{Resolution: 9, Q: 2, R: -1}
	for k := 1; k <= 3; k++ {
		ring := KRing(center, k)
		want := 1 + 3*k*(k+1)
		if len(ring) != want {
			t.Errorf("k=%d: got %d cells, want %d", k, len(ring), want)
		}
	}
}

func TestKRing_ContainsCenter(t *testing.T) {
	center := CellID{Resolution: 9, Q: 5, R: 5}
	ring := KRing(center, 2)
	found := false
	for _, c := range ring {
		if c == center {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected k-ring to include its own center cell")
	}
}

func TestBoundingBox_ContainsCellCenter(t *testing.T) {
	lat, lon := 35.681236, 139.767125
	cell := CellFor(lat, lon, 9)
	minLat, minLon, maxLat, maxLon := BoundingBox(cell)

	if minLat >= maxLat || minLon >= maxLon {
		t.Fatalf("degenerate bounding box: (%f,%f)-(%f,%f)", minLat, minLon, maxLat, maxLon)
	}
}
