package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/pipeline"
	"tripweaver/internal/providers"
	"tripweaver/pkg/utils"
)

type fakeFetcher struct {
	candidates []pipeline.CandidatePOI
	block      bool
}

func (f *fakeFetcher) FetchAll(ctx context.Context, q providers.Query) []pipeline.CandidatePOI {
	if f.block {
		<-ctx.Done()
		return nil
	}
	return f.candidates
}

type messageRecorder struct {
	mu       sync.Mutex
	messages []response_models.StreamMessage
}

func (r *messageRecorder) record(msg response_models.StreamMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *messageRecorder) all() []response_models.StreamMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]response_models.StreamMessage(nil), r.messages...)
}

func newTestGenerationService(fetcher providers.FetcherInterface) GenerationServiceInterface {
	scoring := NewScoringService(nil)
	balance := NewBalanceService(nil)
	assembly := NewAssemblyService(&fakeEnricher{})
	return NewGenerationService(fetcher, scoring, balance, assembly)
}

func TestGenerateItineraryHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{candidates: testCandidates()}
	svc := newTestGenerationService(fetcher)

	rec := &messageRecorder{}
	trip, err := svc.GenerateItinerary(context.Background(), barcelonaPrefs(), rec.record)
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, "Barcelona", trip.Destination)
	assert.Len(t, trip.Days, 2)

	messages := rec.all()
	require.NotEmpty(t, messages)

	// One completed event per stage, in pipeline order.
	var stages []string
	for _, msg := range messages {
		if msg.Status == response_models.StreamStatusProgress {
			require.NotNil(t, msg.Event)
			assert.Equal(t, pipeline.EventCompleted, msg.Event.Status)
			stages = append(stages, msg.Event.Stage)
		}
	}
	assert.Equal(t, []string{
		pipeline.StageFetch,
		pipeline.StageDedup,
		pipeline.StageCluster,
		pipeline.StageBalance,
		pipeline.StageAssemble,
	}, stages)

	// Exactly one terminal message, and it is the last one.
	terminals := 0
	for _, msg := range messages {
		if msg.Status == response_models.StreamStatusDone || msg.Status == response_models.StreamStatusError {
			terminals++
		}
	}
	assert.Equal(t, 1, terminals)

	last := messages[len(messages)-1]
	assert.Equal(t, response_models.StreamStatusDone, last.Status)
	require.NotNil(t, last.Trip)
	assert.Equal(t, trip.ID, last.Trip.ID)
}

func TestGenerateItineraryRejectsMissingFields(t *testing.T) {
	svc := newTestGenerationService(&fakeFetcher{})

	rec := &messageRecorder{}
	prefs := request_models.TripPreferences{Destination: "Barcelona"}
	_, err := svc.GenerateItinerary(context.Background(), prefs, rec.record)

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMissingPreferences)
	assert.Contains(t, err.Error(), "origin")
	assert.Contains(t, err.Error(), "start_date")
	// No stream activity at all before validation passes.
	assert.Empty(t, rec.all())
}

func TestGenerateItineraryEmptyProviderPool(t *testing.T) {
	svc := newTestGenerationService(&fakeFetcher{candidates: nil})

	rec := &messageRecorder{}
	_, err := svc.GenerateItinerary(context.Background(), barcelonaPrefs(), rec.record)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNoCandidates)

	messages := rec.all()
	require.NotEmpty(t, messages)

	// An empty pool is not a fetch failure: fetch and dedup both complete
	// (with zero counts) and the run only fails downstream, where no day
	// plan can be built.
	type stageStatus struct{ stage, status string }
	var progress []stageStatus
	for _, msg := range messages {
		if msg.Status == response_models.StreamStatusProgress {
			require.NotNil(t, msg.Event)
			progress = append(progress, stageStatus{msg.Event.Stage, msg.Event.Status})
		}
	}
	assert.Equal(t, []stageStatus{
		{pipeline.StageFetch, pipeline.EventCompleted},
		{pipeline.StageDedup, pipeline.EventCompleted},
		{pipeline.StageCluster, pipeline.EventFailed},
	}, progress)
	assert.Equal(t, 0, messages[0].Event.Payload["candidates"])

	last := messages[len(messages)-1]
	assert.Equal(t, response_models.StreamStatusError, last.Status)
	assert.NotEmpty(t, last.Error)

	for _, msg := range messages {
		assert.NotEqual(t, response_models.StreamStatusDone, msg.Status)
	}
}

func TestGenerateItineraryClientCancellation(t *testing.T) {
	svc := newTestGenerationService(&fakeFetcher{block: true})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	rec := &messageRecorder{}
	_, err := svc.GenerateItinerary(ctx, barcelonaPrefs(), rec.record)
	require.Error(t, err)

	// A client going away is not a deadline breach.
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, utils.ErrGenerationDeadline)

	terminals := 0
	for _, msg := range rec.all() {
		switch msg.Status {
		case response_models.StreamStatusDone:
			t.Fatalf("cancelled run must never report done")
		case response_models.StreamStatusError:
			terminals++
		}
	}
	assert.Equal(t, 1, terminals)
}

func TestGenerateItineraryDeadline(t *testing.T) {
	t.Setenv("GENERATION_DEADLINE_SECONDS", "2")
	t.Setenv("GENERATION_HEARTBEAT_SECONDS", "1")

	svc := newTestGenerationService(&fakeFetcher{block: true})

	rec := &messageRecorder{}
	_, err := svc.GenerateItinerary(context.Background(), barcelonaPrefs(), rec.record)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrGenerationDeadline)

	messages := rec.all()
	require.NotEmpty(t, messages)

	heartbeats, terminals := 0, 0
	for _, msg := range messages {
		switch msg.Status {
		case response_models.StreamStatusGenerating:
			heartbeats++
		case response_models.StreamStatusDone:
			t.Fatalf("deadline run must never report done")
		case response_models.StreamStatusError:
			terminals++
		}
	}
	assert.GreaterOrEqual(t, heartbeats, 1)
	assert.Equal(t, 1, terminals)

	last := messages[len(messages)-1]
	assert.Equal(t, response_models.StreamStatusError, last.Status)
	assert.Contains(t, last.Error, "deadline")
}
