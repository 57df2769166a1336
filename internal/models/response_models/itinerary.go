package response_models

// ScheduledItem is one entry of a day plan: an activity, a meal or a
// transfer. The city tag must match the traveler's tracked location at the
// point in the timeline where the item is placed.
type ScheduledItem struct {
	Kind        string  `json:"kind"` // "activity", "meal", "transfer"
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	StartTime   string  `json:"start_time"` // HH:MM
	EndTime     string  `json:"end_time"`   // HH:MM
	Cost        float64 `json:"cost"`
	POIID       string  `json:"poi_id,omitempty"`
}

type StayOption struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	Cost    float64 `json:"cost_per_night"`
}

type DayPlan struct {
	Day       int             `json:"day"`
	Date      string          `json:"date"`
	City      string          `json:"city"`
	Narrative string          `json:"narrative,omitempty"`
	Stay      *StayOption     `json:"stay,omitempty"`
	Items     []ScheduledItem `json:"items"`
}

// Itinerary is the terminal artifact of a generation run. It is produced
// exactly once and handed to the caller; the pipeline never mutates it
// afterwards.
type Itinerary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	StartDate    string    `json:"start_date"`
	DurationDays int       `json:"duration_days"`
	Summary      string    `json:"summary,omitempty"`
	Days         []DayPlan `json:"days"`
	TotalCost    float64   `json:"total_cost"`
	Currency     string    `json:"currency"`
	GeneratedAt  string    `json:"generated_at"`
}
