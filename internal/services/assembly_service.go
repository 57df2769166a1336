package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/pipeline"
	"tripweaver/pkg/utils"
)

type AssemblyServiceInterface interface {
	Assemble(ctx context.Context, prefs request_models.TripPreferences, days []response_models.DayPlan) (*response_models.Itinerary, error)
}

func NewAssemblyService(enricher AddressEnricherInterface) AssemblyServiceInterface {
	return &AssemblyService{enricher: enricher}
}

type AssemblyService struct {
	enricher AddressEnricherInterface
}

// Assemble runs the final quality gate: every kept item must carry an exact
// street-level address, every day must survive non-empty, and the whole
// timeline must replay cleanly against the traveler's physical location.
func (s *AssemblyService) Assemble(ctx context.Context, prefs request_models.TripPreferences, days []response_models.DayPlan) (*response_models.Itinerary, error) {
	if len(days) == 0 {
		return nil, utils.ErrEmptyDayPlan
	}

	assembled := make([]response_models.DayPlan, 0, len(days))
	for _, day := range days {
		kept := make([]response_models.ScheduledItem, 0, len(day.Items))
		for _, item := range day.Items {
			if hasStreetAddress(item.Address, item.City) {
				kept = append(kept, item)
				continue
			}
			if s.enricher != nil {
				if addr, ok := s.enricher.StreetAddress(ctx, item.City, item.Name); ok {
					log.Printf("assembly: upgraded address of %q to %q via catalog", item.Name, addr)
					item.Address = addr
					kept = append(kept, item)
					continue
				}
			}
			log.Printf("assembly: %s", exactAddressFailure(item))
		}

		if len(kept) == 0 {
			return nil, fmt.Errorf("day %d: %w", day.Day, utils.ErrEmptyDayPlan)
		}
		day.Items = kept
		assembled = append(assembled, day)
	}

	if err := replayTimeline(prefs, assembled); err != nil {
		return nil, err
	}

	total := 0.0
	for _, day := range assembled {
		for _, item := range day.Items {
			total += item.Cost
		}
		if day.Stay != nil {
			total += day.Stay.Cost
		}
	}

	return &response_models.Itinerary{
		ID:           uuid.New().String(),
		Title:        fmt.Sprintf("%d days in %s", len(assembled), prefs.Destination),
		Origin:       prefs.Origin,
		Destination:  prefs.Destination,
		StartDate:    prefs.Start().Format("2006-01-02"),
		DurationDays: len(assembled),
		Summary:      fmt.Sprintf("A %d-day trip from %s to %s.", len(assembled), prefs.Origin, prefs.Destination),
		Days:         assembled,
		TotalCost:    total,
		Currency:     "USD",
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// exactAddressFailure is the reason recorded for an item dropped by the
// address gate. It names the item and what it had instead of an exact
// street-level address.
func exactAddressFailure(item response_models.ScheduledItem) string {
	return fmt.Sprintf("dropping %q: no exact street-level address could be resolved (had %q)",
		item.Name, item.Address)
}

// hasStreetAddress reports whether addr is an exact street-level address: it
// must be present, differ from the bare city name, and look like a street
// line (a house number or a comma-separated locality).
func hasStreetAddress(addr, city string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	if strings.EqualFold(addr, strings.TrimSpace(city)) {
		return false
	}
	if strings.ContainsFunc(addr, unicode.IsDigit) {
		return true
	}
	return strings.Contains(addr, ",")
}

// replayTimeline re-walks the trip against a fresh location tracker: out the
// door at home, fly to the destination, live the days there, fly back. Any
// item in the wrong city at its point in the timeline fails assembly.
func replayTimeline(prefs request_models.TripPreferences, days []response_models.DayPlan) error {
	tracker := pipeline.NewLocationTracker(prefs.Origin)
	tracker.BoardFlight(prefs.Origin, prefs.Destination)
	tracker.LandFlight(prefs.Destination, prefs.Start())

	for _, day := range days {
		for _, item := range day.Items {
			if err := tracker.Validate(item.Name, item.City); err != nil {
				return fmt.Errorf("day %d: %w", day.Day, err)
			}
		}
	}

	tracker.BoardFlight(prefs.Destination, prefs.Origin)
	tracker.LandFlight(prefs.Origin, prefs.Start().AddDate(0, 0, len(days)))
	if err := tracker.Validate("return home", prefs.Origin); err != nil {
		return err
	}
	return nil
}
