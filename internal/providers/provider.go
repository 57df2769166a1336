package providers

import (
	"context"
	"log"
	"sync"
	"time"

	"tripweaver/internal/pipeline"
)

// Query is the destination/date request shared by every adapter.
type Query struct {
	City          string
	StartDate     time.Time
	DurationDays  int
	Tags          []string
	BudgetLevel   string
	GroupSize     int
	TransportMode string
}

// Adapter fetches candidate points of interest for one data category. An
// adapter must never fail the run: on any error it logs a warning and
// returns an empty result set.
type Adapter interface {
	Category() pipeline.Category
	Fetch(ctx context.Context, q Query) []pipeline.CandidatePOI
}

type FetcherInterface interface {
	FetchAll(ctx context.Context, q Query) []pipeline.CandidatePOI
}

// Fetcher fans a query out to all adapters concurrently and fans the results
// back in once every adapter has settled. Any subset of adapters failing
// degrades the candidate pool but is never fatal.
type Fetcher struct {
	adapters []Adapter
}

func NewFetcher(adapters ...Adapter) FetcherInterface {
	return &Fetcher{adapters: adapters}
}

func (f *Fetcher) FetchAll(ctx context.Context, q Query) []pipeline.CandidatePOI {
	resultCh := make(chan []pipeline.CandidatePOI, len(f.adapters))

	var wg sync.WaitGroup
	for _, adapter := range f.adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			candidates := a.Fetch(ctx, q)
			log.Printf("providers: %s adapter returned %d candidates for %s", a.Category(), len(candidates), q.City)
			resultCh <- candidates
		}(adapter)
	}

	wg.Wait()
	close(resultCh)

	var all []pipeline.CandidatePOI
	for candidates := range resultCh {
		all = append(all, candidates...)
	}
	return all
}
