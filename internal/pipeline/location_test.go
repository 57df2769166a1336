package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationTrackerHappyPath(t *testing.T) {
	tracker := NewLocationTracker("Paris")

	// Still at home: nothing may be scheduled anywhere.
	err := tracker.Validate("Louvre visit", "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not departed")

	tracker.BoardFlight("Paris", "Barcelona")
	err = tracker.Validate("Tapas crawl", "Barcelona")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in transit")

	tracker.LandFlight("Barcelona", time.Date(2026, 9, 10, 12, 30, 0, 0, time.UTC))
	assert.NoError(t, tracker.Validate("Tapas crawl", "Barcelona"))

	city, ok := tracker.Current().City()
	require.True(t, ok)
	assert.Equal(t, "barcelona", city)
}

func TestLocationTrackerRejectsWrongCity(t *testing.T) {
	tracker := NewLocationTracker("Paris")
	tracker.BoardFlight("Paris", "Barcelona")
	tracker.LandFlight("Barcelona", time.Now())

	err := tracker.Validate("Prado Museum", "Madrid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Prado Museum")
	assert.Contains(t, err.Error(), "Madrid")
	assert.Contains(t, err.Error(), "barcelona")
}

func TestLocationTrackerMultiLeg(t *testing.T) {
	tracker := NewLocationTracker("Paris")
	tracker.BoardFlight("Paris", "Barcelona")
	tracker.LandFlight("Barcelona", time.Now())
	require.NoError(t, tracker.Validate("Beach day", "Barcelona"))

	// Fly home: the destination stops being a valid activity city.
	tracker.BoardFlight("Barcelona", "Paris")
	tracker.LandFlight("Paris", time.Now().AddDate(0, 0, 3))

	require.NoError(t, tracker.Validate("Dinner at home", "Paris"))

	err := tracker.Validate("Leftover beach day", "Barcelona")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Barcelona")
	assert.Contains(t, err.Error(), "paris")
}

func TestLocationTrackerCityMatchIsCaseInsensitive(t *testing.T) {
	tracker := NewLocationTracker("paris")
	tracker.BoardFlight("paris", "BARCELONA")
	tracker.LandFlight("BARCELONA", time.Now())

	assert.NoError(t, tracker.Validate("Gothic quarter walk", "barcelona"))
	assert.NoError(t, tracker.Validate("Gothic quarter walk", " Barcelona "))
}
