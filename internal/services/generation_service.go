package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/pipeline"
	"tripweaver/internal/providers"
	"tripweaver/pkg/utils"
)

type GenerationServiceInterface interface {
	// GenerateItinerary runs the whole pipeline, pushing stream messages to
	// emit as it goes. Exactly one terminal message ("done" or "error") is
	// pushed per call, no matter how the run ends.
	GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences, emit func(response_models.StreamMessage)) (*response_models.Itinerary, error)
}

func NewGenerationService(
	fetcher providers.FetcherInterface,
	scoring ScoringServiceInterface,
	balance BalanceServiceInterface,
	assembly AssemblyServiceInterface,
) GenerationServiceInterface {
	return &GenerationService{
		fetcher:   fetcher,
		scoring:   scoring,
		balance:   balance,
		assembly:  assembly,
		deadline:  secondsFromEnv("GENERATION_DEADLINE_SECONDS", 285),
		heartbeat: secondsFromEnv("GENERATION_HEARTBEAT_SECONDS", 10),
	}
}

type GenerationService struct {
	fetcher   providers.FetcherInterface
	scoring   ScoringServiceInterface
	balance   BalanceServiceInterface
	assembly  AssemblyServiceInterface
	deadline  time.Duration
	heartbeat time.Duration
}

type pipelineResult struct {
	trip *response_models.Itinerary
	err  error
}

func (s *GenerationService) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences, emit func(response_models.StreamMessage)) (*response_models.Itinerary, error) {
	if missing := prefs.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", utils.ErrMissingPreferences, missing)
	}

	sink := newEventSink(emit)

	runCtx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	resultCh := make(chan pipelineResult, 1)
	go s.run(runCtx, prefs, sink, resultCh)

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			if res.err != nil {
				sink.Terminal(response_models.ErrorMessage(res.err))
				return nil, res.err
			}
			sink.Terminal(response_models.DoneMessage(res.trip))
			return res.trip, nil

		case <-ticker.C:
			sink.Emit(response_models.HeartbeatMessage())

		case <-runCtx.Done():
			err := runCtx.Err()
			if errors.Is(err, context.DeadlineExceeded) {
				err = utils.ErrGenerationDeadline
			}
			log.Printf("generation: run for %s aborted: %v", prefs.Destination, err)
			sink.Terminal(response_models.ErrorMessage(err))
			return nil, err
		}
	}
}

func (s *GenerationService) run(ctx context.Context, prefs request_models.TripPreferences, sink *eventSink, resultCh chan<- pipelineResult) {
	fail := func(stage string, err error) {
		sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(stage, pipeline.EventFailed, map[string]interface{}{
			"reason": err.Error(),
		})))
		resultCh <- pipelineResult{err: err}
	}

	query := providers.Query{
		City:          prefs.Destination,
		StartDate:     prefs.Start(),
		DurationDays:  prefs.Days(),
		Tags:          prefs.ActivityTags,
		BudgetLevel:   prefs.BudgetLevel,
		GroupSize:     prefs.GroupSize,
		TransportMode: prefs.TransportMode,
	}

	// An empty pool is degraded quality, not a fetch failure: the stage
	// completes with a zero count and the shortfall surfaces downstream when
	// no day plan can be built.
	candidates := s.fetcher.FetchAll(ctx, query)
	sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(pipeline.StageFetch, pipeline.EventCompleted, map[string]interface{}{
		"candidates": len(candidates),
	})))

	engine := pipeline.NewDedupEngine(pipeline.DefaultDedupConfig())
	seen := pipeline.NewSeenSet()
	unique, dropped := engine.Filter(seen, candidates)
	sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(pipeline.StageDedup, pipeline.EventCompleted, map[string]interface{}{
		"kept":    len(unique),
		"dropped": dropped,
	})))

	draft, err := s.scoring.BuildDayPlans(ctx, prefs, unique)
	if err != nil {
		fail(pipeline.StageCluster, err)
		return
	}
	sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(pipeline.StageCluster, pipeline.EventCompleted, map[string]interface{}{
		"days": len(draft),
	})))

	balanced, usedFallback, err := s.balance.Balance(ctx, prefs, draft)
	if err != nil {
		fail(pipeline.StageBalance, err)
		return
	}
	sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(pipeline.StageBalance, pipeline.EventCompleted, map[string]interface{}{
		"used_fallback": usedFallback,
	})))

	trip, err := s.assembly.Assemble(ctx, prefs, balanced)
	if err != nil {
		fail(pipeline.StageAssemble, err)
		return
	}
	sink.Emit(response_models.ProgressMessage(pipeline.NewEvent(pipeline.StageAssemble, pipeline.EventCompleted, map[string]interface{}{
		"total_cost": trip.TotalCost,
	})))

	resultCh <- pipelineResult{trip: trip}
}

// eventSink serializes stream messages and enforces the one-terminal-message
// contract: after a terminal message every further emission is dropped.
type eventSink struct {
	mu       sync.Mutex
	emit     func(response_models.StreamMessage)
	terminal bool
}

func newEventSink(emit func(response_models.StreamMessage)) *eventSink {
	if emit == nil {
		emit = func(response_models.StreamMessage) {}
	}
	return &eventSink{emit: emit}
}

func (s *eventSink) Emit(msg response_models.StreamMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.emit(msg)
}

func (s *eventSink) Terminal(msg response_models.StreamMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.terminal = true
	s.emit(msg)
}

func secondsFromEnv(key string, fallback int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
