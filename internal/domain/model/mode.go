package model

import "fmt"

// TransportMode is a closed enumeration of transportation modes, per the
// design-notes guidance to use a lookup table rather than a class
// hierarchy for a fixed set of tagged variants.
type TransportMode string

const (
	ModeWalking   TransportMode = "WALKING"
	ModeBicycling TransportMode = "BICYCLING"
	ModeTransit   TransportMode = "TRANSIT"
	ModeFlexible  TransportMode = "FLEXIBLE"
	ModeDriving   TransportMode = "DRIVING"
)

// ModeProfile fixes the average speed (km/h) and H3 k-ring radius used by
// the spatial candidate source for one transportation mode.
type ModeProfile struct {
	SpeedKmh float64
	KRing    int
	RadiusKm float64
}

// DefaultModeProfiles mirrors the original source's TRANSPORTATION_SPEEDS
// table, plus a k-ring/search-radius pairing per mode (larger for faster
// modes, since a faster mode can usefully reach farther hex cells within
// the same time budget).
var DefaultModeProfiles = map[TransportMode]ModeProfile{
	ModeWalking:   {SpeedKmh: 5, KRing: 2, RadiusKm: 2.0},
	ModeBicycling: {SpeedKmh: 15, KRing: 3, RadiusKm: 5.0},
	ModeTransit:   {SpeedKmh: 25, KRing: 4, RadiusKm: 8.0},
	ModeFlexible:  {SpeedKmh: 30, KRing: 4, RadiusKm: 9.0},
	ModeDriving:   {SpeedKmh: 40, KRing: 5, RadiusKm: 12.0},
}

// ParseMode validates a mode string against the closed enumeration.
func ParseMode(s string) (TransportMode, error) {
	m := TransportMode(s)
	if _, ok := DefaultModeProfiles[m]; !ok {
		return "", fmt.Errorf("unknown transportation mode %q", s)
	}
	return m, nil
}

// Profile looks up the configured profile for m; callers must ParseMode
// first, so an unknown mode here is a programmer error.
func (m TransportMode) Profile() ModeProfile {
	return DefaultModeProfiles[m]
}

// TravelTimeMinutes converts a great-circle distance in kilometers to
// minutes of travel under this mode's fixed average speed.
func (m TransportMode) TravelTimeMinutes(distanceKm float64) float64 {
	speed := m.Profile().SpeedKmh
	if speed <= 0 {
		return 0
	}
	return distanceKm / speed * 60.0
}
