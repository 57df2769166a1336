package pipeline

import (
	"fmt"
	"time"
)

type locationKind int

const (
	kindHome locationKind = iota
	kindTransit
	kindCity
)

// LocationState is a closed tagged union over {Home(city), Transit,
// City(city)}. It is only ever mutated through BoardFlight and LandFlight;
// an activity query against any state other than City must fail.
type LocationState struct {
	kind locationKind
	city string
}

func (s LocationState) String() string {
	switch s.kind {
	case kindHome:
		return fmt.Sprintf("home(%s)", s.city)
	case kindTransit:
		return "in transit"
	case kindCity:
		return fmt.Sprintf("city(%s)", s.city)
	}
	return "unknown"
}

// City returns the current city key and whether the traveler is in a city.
func (s LocationState) City() (string, bool) {
	if s.kind != kindCity {
		return "", false
	}
	return s.city, true
}

// LocationTracker follows where the traveler physically is over the trip
// timeline. It supports multiple flight legs: landing a second time simply
// updates the current city again.
type LocationTracker struct {
	state LocationState
}

func NewLocationTracker(originCity string) *LocationTracker {
	return &LocationTracker{
		state: LocationState{kind: kindHome, city: NormalizeCityKey(originCity)},
	}
}

// BoardFlight moves the traveler into transit. City information is cleared.
func (t *LocationTracker) BoardFlight(origin, destination string) {
	t.state = LocationState{kind: kindTransit}
}

// LandFlight places the traveler in the destination city.
func (t *LocationTracker) LandFlight(destination string, at time.Time) {
	t.state = LocationState{kind: kindCity, city: NormalizeCityKey(destination)}
}

func (t *LocationTracker) Current() LocationState {
	return t.state
}

// Validate accepts an activity only when the traveler is currently in the
// activity's city. The returned error names the offending activity and the
// expected versus actual city.
func (t *LocationTracker) Validate(activityName, city string) error {
	switch t.state.kind {
	case kindHome:
		return fmt.Errorf("activity %q in %s rejected: traveler has not departed yet, still home in %s",
			activityName, city, t.state.city)
	case kindTransit:
		return fmt.Errorf("activity %q in %s rejected: traveler is in transit between cities",
			activityName, city)
	case kindCity:
		if NormalizeCityKey(city) != t.state.city {
			return fmt.Errorf("activity %q is in %s, but the traveler is currently in %s",
				activityName, city, t.state.city)
		}
		return nil
	}
	return fmt.Errorf("activity %q rejected: traveler location unknown", activityName)
}
