package request_models

import (
	"strings"
	"time"
)

// TripPreferences is the normalized input of one generation run. It is
// validated before the pipeline starts and never mutated afterwards.
type TripPreferences struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	StartDate     string   `json:"start_date"` // "2006-01-02"
	DurationDays  int      `json:"duration_days"`
	BudgetLevel   string   `json:"budget_level"` // "budget", "standard", "luxury"
	BudgetAmount  float64  `json:"budget_amount,omitempty"`
	GroupSize     int      `json:"group_size"`
	GroupType     string   `json:"group_type,omitempty"` // "solo", "couple", "family", "friends"
	TransportMode string   `json:"transport_mode,omitempty"`
	Pace          string   `json:"pace,omitempty"` // "relaxed", "standard", "packed"
	ActivityTags  []string `json:"activity_tags,omitempty"`
}

// MissingFields lists the required fields that are absent. A non-empty
// result must reject the request before any stream is opened.
func (p TripPreferences) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(p.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(p.StartDate) == "" {
		missing = append(missing, "start_date")
	}
	return missing
}

// Start parses the start date, defaulting to tomorrow when unparseable so a
// sloppy-but-present date degrades instead of failing mid-pipeline.
func (p TripPreferences) Start() time.Time {
	if t, err := time.Parse("2006-01-02", p.StartDate); err == nil {
		return t
	}
	return time.Now().AddDate(0, 0, 1)
}

// Days clamps the duration to a sane range; a missing duration means a
// weekend trip.
func (p TripPreferences) Days() int {
	switch {
	case p.DurationDays < 1:
		return 2
	case p.DurationDays > 14:
		return 14
	}
	return p.DurationDays
}
