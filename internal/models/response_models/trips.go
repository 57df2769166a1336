package response_models

// SavedTrip is the read model for a persisted generated trip.
type SavedTrip struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	StartDate    string     `json:"start_date"`
	DurationDays int        `json:"duration_days"`
	TotalCost    float64    `json:"total_cost"`
	Currency     string     `json:"currency"`
	CreatedAt    string     `json:"created_at"`
	Itinerary    *Itinerary `json:"itinerary,omitempty"`
}
