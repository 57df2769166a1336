package providers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"tripweaver/internal/pipeline"
)

type MatrixPoint struct {
	ID  string
	Lat float64
	Lng float64
}

type MatrixEdge struct {
	DistanceMeters int
}

type DistanceMatrix map[string]map[string]MatrixEdge

// --------- In-memory cache per (A,B) pair ---------

type pairKey struct {
	Mode string
	A    string
	B    string
}

type matrixPairCacheEntry struct {
	Edge      MatrixEdge
	ExpiresAt time.Time
}

type MatrixPairCache interface {
	Get(k pairKey) (MatrixEdge, bool)
	Set(k pairKey, v MatrixEdge, ttl time.Duration)
}

type inMemoryPairCache struct {
	mu    sync.RWMutex
	store map[pairKey]matrixPairCacheEntry
}

func NewInMemoryPairCache() MatrixPairCache {
	return &inMemoryPairCache{store: make(map[pairKey]matrixPairCacheEntry)}
}

func (c *inMemoryPairCache) Get(k pairKey) (MatrixEdge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return MatrixEdge{}, false
	}
	return it.Edge, true
}

func (c *inMemoryPairCache) Set(k pairKey, v MatrixEdge, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = matrixPairCacheEntry{Edge: v, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Mapbox Matrix client (distance-only) ---------------

type DistanceMatrixService interface {
	ComputeDistances(ctx context.Context, points []MatrixPoint) (DistanceMatrix, error)
}

type MapboxMatrixClient struct {
	HTTP        *http.Client
	AccessToken string
	Cache       MatrixPairCache
	DefaultTTL  time.Duration
	Profile     string // "driving" or "walking"
}

func NewMapboxMatrixClient(cache MatrixPairCache) *MapboxMatrixClient {
	token := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if token == "" {
		log.Printf("transport: MAPBOX_ACCESS_TOKEN is empty, distance matrix calls will fail over to haversine")
	}
	return &MapboxMatrixClient{
		HTTP:        newProviderHTTPClient(),
		AccessToken: token,
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
		Profile:     getEnvWithDefault("MAPBOX_PROFILE", "walking"),
	}
}

func (c *MapboxMatrixClient) ComputeDistances(ctx context.Context, points []MatrixPoint) (DistanceMatrix, error) {
	n := len(points)
	if n == 0 {
		return DistanceMatrix{}, nil
	}
	if c.AccessToken == "" {
		return nil, fmt.Errorf("mapbox matrix: access token missing")
	}

	mode := c.Profile
	mat := make(DistanceMatrix, n)
	needCall := false

	for _, p := range points {
		mat[p.ID] = make(map[string]MatrixEdge, n)
	}

	// Serve what we can from cache first.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].ID][points[j].ID] = MatrixEdge{DistanceMeters: 0}
				continue
			}
			k := pairKey{Mode: mode, A: points[i].ID, B: points[j].ID}
			if v, ok := c.Cache.Get(k); ok {
				mat[points[i].ID][points[j].ID] = v
			} else {
				needCall = true
			}
		}
	}

	if !needCall {
		return mat, nil
	}

	coords := make([]string, 0, n)
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}
	coordStr := strings.Join(coords, ";")

	u := url.URL{
		Scheme: "https",
		Host:   "api.mapbox.com",
		Path:   fmt.Sprintf("/directions-matrix/v1/mapbox/%s/%s", mode, coordStr),
	}
	q := url.Values{}
	q.Set("annotations", "distance")
	q.Set("sources", "all")
	q.Set("destinations", "all")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox matrix http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("mapbox matrix bad status: %s", resp.Status)
	}

	var payload struct {
		Distances [][]*float64 `json:"distances"`
	}
	if err := decodeBody(resp, &payload); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].ID][points[j].ID] = MatrixEdge{DistanceMeters: 0}
				continue
			}
			dM := 0
			if payload.Distances != nil && i < len(payload.Distances) && j < len(payload.Distances[i]) && payload.Distances[i][j] != nil {
				dM = int(*payload.Distances[i][j] + 0.5)
			}
			edge := MatrixEdge{DistanceMeters: dM}
			mat[points[i].ID][points[j].ID] = edge
			c.Cache.Set(pairKey{Mode: mode, A: points[i].ID, B: points[j].ID}, edge, c.DefaultTTL)
		}
	}

	return mat, nil
}

// -------------- Transport legs adapter ---------------

// TransportAdapter produces the transfer legs of a trip: an arrival transfer
// into the destination on day one and a departure transfer on the last day.
// Both happen inside the destination city, between terminal and lodging, so
// they validate against the traveler being in that city.
type TransportAdapter struct{}

func NewTransportAdapter() *TransportAdapter {
	return &TransportAdapter{}
}

func (a *TransportAdapter) Category() pipeline.Category {
	return pipeline.CategoryTransport
}

var transferCostByMode = map[string]float64{
	"flight": 35,
	"train":  12,
	"bus":    8,
	"car":    0,
}

func (a *TransportAdapter) Fetch(ctx context.Context, q Query) []pipeline.CandidatePOI {
	mode := strings.ToLower(strings.TrimSpace(q.TransportMode))
	if mode == "" {
		mode = "flight"
	}
	terminal := terminalName(mode, q.City)
	cost := transferCostByMode[mode]

	return []pipeline.CandidatePOI{
		{
			Name:        fmt.Sprintf("Arrival transfer from %s", terminal),
			Category:    pipeline.CategoryTransport,
			City:        q.City,
			Address:     fmt.Sprintf("Terminal 1, %s", terminal),
			Cost:        cost,
			Description: fmt.Sprintf("Transfer from %s to your accommodation", terminal),
			Source:      "transport",
		},
		{
			Name:        fmt.Sprintf("Departure transfer to %s", terminal),
			Category:    pipeline.CategoryTransport,
			City:        q.City,
			Address:     fmt.Sprintf("Terminal 1, %s", terminal),
			Cost:        cost,
			Description: fmt.Sprintf("Transfer from your accommodation back to %s", terminal),
			Source:      "transport",
		},
	}
}

func terminalName(mode, city string) string {
	switch mode {
	case "train":
		return fmt.Sprintf("%s central station", city)
	case "bus":
		return fmt.Sprintf("%s bus terminal", city)
	default:
		return fmt.Sprintf("%s airport", city)
	}
}
