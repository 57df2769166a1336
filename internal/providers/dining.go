package providers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"

	"tripweaver/internal/pipeline"
)

// DiningAdapter queries the restaurant partner API for places to eat at the
// destination.
type DiningAdapter struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewDiningAdapter() *DiningAdapter {
	key := os.Getenv("DINING_API_KEY")
	if key == "" {
		log.Printf("dining: DINING_API_KEY is empty, adapter will return no candidates")
	}
	return &DiningAdapter{
		HTTP:    newProviderHTTPClient(),
		BaseURL: getEnvWithDefault("DINING_API_URL", "https://api.tablehopper.io"),
		APIKey:  key,
	}
}

func (a *DiningAdapter) Category() pipeline.Category {
	return pipeline.CategoryRestaurant
}

func (a *DiningAdapter) Fetch(ctx context.Context, query Query) []pipeline.CandidatePOI {
	if a.APIKey == "" {
		return nil
	}

	q := url.Values{}
	q.Set("near", query.City)
	q.Set("limit", "30")
	if query.BudgetLevel != "" {
		q.Set("price_tier", query.BudgetLevel)
	}
	q.Set("api_key", a.APIKey)

	var payload struct {
		Results []struct {
			FsqID       string   `json:"fsq_id"`
			Name        string   `json:"name"`
			Address     string   `json:"formatted_address"`
			Locality    string   `json:"locality"`
			Latitude    *float64 `json:"latitude"`
			Longitude   *float64 `json:"longitude"`
			AvgPrice    float64  `json:"avg_price"`
			Rating      float64  `json:"rating"`
			Hours       string   `json:"hours_display"`
			Cuisines    []string `json:"cuisines"`
			Description string   `json:"description"`
		} `json:"results"`
	}
	if err := getJSON(ctx, a.HTTP, a.BaseURL, "/v3/places/search", q, &payload); err != nil {
		log.Printf("dining: search failed for %s: %v", query.City, err)
		return nil
	}

	candidates := make([]pipeline.CandidatePOI, 0, len(payload.Results))
	for _, r := range payload.Results {
		city := r.Locality
		if city == "" {
			city = query.City
		}
		candidates = append(candidates, pipeline.CandidatePOI{
			ProviderID:   r.FsqID,
			Name:         r.Name,
			Category:     pipeline.CategoryRestaurant,
			City:         city,
			Address:      r.Address,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Cost:         r.AvgPrice,
			Rating:       r.Rating,
			OpeningHours: r.Hours,
			Tags:         r.Cuisines,
			Description:  r.Description,
			Source:       "tablehopper",
		})
	}
	return candidates
}
