package request_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		prefs   TripPreferences
		missing []string
	}{
		{
			name:    "complete preferences",
			prefs:   TripPreferences{Origin: "Paris", Destination: "Barcelona", StartDate: "2026-09-10"},
			missing: nil,
		},
		{
			name:    "everything missing",
			prefs:   TripPreferences{},
			missing: []string{"origin", "destination", "start_date"},
		},
		{
			name:    "whitespace does not count as present",
			prefs:   TripPreferences{Origin: "  ", Destination: "Barcelona", StartDate: "2026-09-10"},
			missing: []string{"origin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, tt.prefs.MissingFields())
		})
	}
}

func TestStartFallsBackToTomorrow(t *testing.T) {
	good := TripPreferences{StartDate: "2026-09-10"}
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), good.Start())

	bad := TripPreferences{StartDate: "next friday"}
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 1), bad.Start(), time.Minute)
}

func TestDaysClamping(t *testing.T) {
	assert.Equal(t, 2, TripPreferences{}.Days())
	assert.Equal(t, 2, TripPreferences{DurationDays: -3}.Days())
	assert.Equal(t, 5, TripPreferences{DurationDays: 5}.Days())
	assert.Equal(t, 14, TripPreferences{DurationDays: 30}.Days())
}
