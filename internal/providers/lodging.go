package providers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"tripweaver/internal/pipeline"
)

// LodgingAdapter queries the lodging partner API for stay options at the
// destination.
type LodgingAdapter struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewLodgingAdapter() *LodgingAdapter {
	key := os.Getenv("LODGING_API_KEY")
	if key == "" {
		log.Printf("lodging: LODGING_API_KEY is empty, adapter will return no candidates")
	}
	return &LodgingAdapter{
		HTTP:    newProviderHTTPClient(),
		BaseURL: getEnvWithDefault("LODGING_API_URL", "https://api.stayfinder.io"),
		APIKey:  key,
	}
}

func (a *LodgingAdapter) Category() pipeline.Category {
	return pipeline.CategoryLodging
}

func (a *LodgingAdapter) Fetch(ctx context.Context, query Query) []pipeline.CandidatePOI {
	if a.APIKey == "" {
		return nil
	}

	q := url.Values{}
	q.Set("city", query.City)
	q.Set("checkin", query.StartDate.Format("2006-01-02"))
	q.Set("nights", strconv.Itoa(query.DurationDays))
	q.Set("guests", strconv.Itoa(query.GroupSize))
	if query.BudgetLevel != "" {
		q.Set("tier", query.BudgetLevel)
	}
	q.Set("api_key", a.APIKey)

	var payload struct {
		Properties []struct {
			ID            string   `json:"id"`
			Name          string   `json:"name"`
			Address       string   `json:"address"`
			City          string   `json:"city"`
			Latitude      *float64 `json:"latitude"`
			Longitude     *float64 `json:"longitude"`
			NightlyRate   float64  `json:"nightly_rate"`
			Rating        float64  `json:"rating"`
			PropertyType  string   `json:"property_type"`
			ShortOverview string   `json:"short_overview"`
		} `json:"properties"`
	}
	if err := getJSON(ctx, a.HTTP, a.BaseURL, "/v2/properties/search", q, &payload); err != nil {
		log.Printf("lodging: search failed for %s: %v", query.City, err)
		return nil
	}

	candidates := make([]pipeline.CandidatePOI, 0, len(payload.Properties))
	for _, p := range payload.Properties {
		city := p.City
		if city == "" {
			city = query.City
		}
		candidates = append(candidates, pipeline.CandidatePOI{
			ProviderID:  p.ID,
			Name:        p.Name,
			Category:    pipeline.CategoryLodging,
			City:        city,
			Address:     p.Address,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			Cost:        p.NightlyRate,
			Rating:      p.Rating,
			Tags:        []string{p.PropertyType},
			Description: p.ShortOverview,
			Source:      "stayfinder",
		})
	}
	return candidates
}
