package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

type TripServiceInterface interface {
	SaveGeneratedTrip(ctx context.Context, itinerary *response_models.Itinerary) error
	GetTripByID(ctx context.Context, tripID string) (*response_models.SavedTrip, error)
	ListTrips(ctx context.Context, page int, pageSize int) ([]response_models.SavedTrip, error)
}

func NewTripService(tripRepo repositories.TripRepository) TripServiceInterface {
	return &TripService{tripRepo: tripRepo}
}

type TripService struct {
	tripRepo repositories.TripRepository
}

func (t *TripService) SaveGeneratedTrip(ctx context.Context, itinerary *response_models.Itinerary) error {
	if itinerary == nil {
		return utils.ErrInvalidInput
	}

	payload, err := json.Marshal(itinerary)
	if err != nil {
		return utils.ErrInvalidInput
	}

	startDate, err := time.Parse("2006-01-02", itinerary.StartDate)
	if err != nil {
		startDate = time.Now()
	}

	trip := db_models.Trip{
		Title:        itinerary.Title,
		Origin:       itinerary.Origin,
		Destination:  itinerary.Destination,
		StartDate:    startDate,
		DurationDays: itinerary.DurationDays,
		TotalCost:    itinerary.TotalCost,
		Currency:     itinerary.Currency,
		Payload:      string(payload),
	}
	if id, err := uuid.Parse(itinerary.ID); err == nil {
		trip.ID = id
	}

	if err := t.tripRepo.SaveTrip(ctx, &trip); err != nil {
		log.Printf("trips: saving trip %s failed: %v", itinerary.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) GetTripByID(ctx context.Context, tripID string) (*response_models.SavedTrip, error) {
	if _, err := uuid.Parse(tripID); err != nil {
		return nil, utils.ErrInvalidInput
	}

	trip, err := t.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	saved := toSavedTrip(trip)

	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(trip.Payload), &itinerary); err == nil {
		saved.Itinerary = &itinerary
	} else {
		log.Printf("trips: payload of %s is not readable: %v", trip.ID, err)
	}

	return saved, nil
}

func (t *TripService) ListTrips(ctx context.Context, page int, pageSize int) ([]response_models.SavedTrip, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	trips, err := t.tripRepo.ListTrips(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SavedTrip, 0, len(trips))
	for i := range trips {
		result = append(result, *toSavedTrip(&trips[i]))
	}
	return result, nil
}

func toSavedTrip(trip *db_models.Trip) *response_models.SavedTrip {
	return &response_models.SavedTrip{
		ID:           trip.ID.String(),
		Title:        trip.Title,
		Origin:       trip.Origin,
		Destination:  trip.Destination,
		StartDate:    trip.StartDate.Format("2006-01-02"),
		DurationDays: trip.DurationDays,
		TotalCost:    trip.TotalCost,
		Currency:     trip.Currency,
		CreatedAt:    time.Unix(trip.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}
