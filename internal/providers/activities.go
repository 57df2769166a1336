package providers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"tripweaver/internal/pipeline"
)

// ActivitiesAdapter queries the attractions partner API for things to do at
// the destination.
type ActivitiesAdapter struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewActivitiesAdapter() *ActivitiesAdapter {
	key := os.Getenv("ACTIVITIES_API_KEY")
	if key == "" {
		log.Printf("activities: ACTIVITIES_API_KEY is empty, adapter will return no candidates")
	}
	return &ActivitiesAdapter{
		HTTP:    newProviderHTTPClient(),
		BaseURL: getEnvWithDefault("ACTIVITIES_API_URL", "https://api.wanderlist.io"),
		APIKey:  key,
	}
}

func (a *ActivitiesAdapter) Category() pipeline.Category {
	return pipeline.CategoryActivity
}

func (a *ActivitiesAdapter) Fetch(ctx context.Context, query Query) []pipeline.CandidatePOI {
	if a.APIKey == "" {
		return nil
	}

	q := url.Values{}
	q.Set("city", query.City)
	if len(query.Tags) > 0 {
		q.Set("kinds", strings.Join(query.Tags, ","))
	}
	q.Set("limit", "40")
	q.Set("api_key", a.APIKey)

	var payload struct {
		Attractions []struct {
			ExternalID  string   `json:"external_id"`
			Name        string   `json:"name"`
			Address     string   `json:"address"`
			City        string   `json:"city"`
			Lat         *float64 `json:"lat"`
			Lon         *float64 `json:"lon"`
			TicketPrice float64  `json:"ticket_price"`
			Rating      float64  `json:"rating"`
			Hours       string   `json:"opening_hours"`
			Kinds       []string `json:"kinds"`
			Summary     string   `json:"summary"`
		} `json:"attractions"`
	}
	if err := getJSON(ctx, a.HTTP, a.BaseURL, "/v1/attractions", q, &payload); err != nil {
		log.Printf("activities: search failed for %s: %v", query.City, err)
		return nil
	}

	candidates := make([]pipeline.CandidatePOI, 0, len(payload.Attractions))
	for _, item := range payload.Attractions {
		city := item.City
		if city == "" {
			city = query.City
		}
		candidates = append(candidates, pipeline.CandidatePOI{
			ProviderID:   item.ExternalID,
			Name:         item.Name,
			Category:     pipeline.CategoryActivity,
			City:         city,
			Address:      item.Address,
			Latitude:     item.Lat,
			Longitude:    item.Lon,
			Cost:         item.TicketPrice,
			Rating:       item.Rating,
			OpeningHours: item.Hours,
			Tags:         item.Kinds,
			Description:  item.Summary,
			Source:       "wanderlist",
		})
	}
	return candidates
}
