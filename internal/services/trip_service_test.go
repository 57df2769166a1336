package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

type fakeTripRepo struct {
	saved *db_models.Trip
	trips map[string]*db_models.Trip
}

func (f *fakeTripRepo) SaveTrip(ctx context.Context, trip *db_models.Trip) error {
	f.saved = trip
	return nil
}

func (f *fakeTripRepo) GetTripByID(ctx context.Context, tripID string) (*db_models.Trip, error) {
	return f.trips[tripID], nil
}

func (f *fakeTripRepo) ListTrips(ctx context.Context, page int, pageSize int) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, t := range f.trips {
		out = append(out, *t)
	}
	return out, nil
}

func sampleItinerary() *response_models.Itinerary {
	return &response_models.Itinerary{
		ID:           uuid.New().String(),
		Title:        "2 days in Barcelona",
		Origin:       "Paris",
		Destination:  "Barcelona",
		StartDate:    "2026-09-10",
		DurationDays: 2,
		Days: []response_models.DayPlan{
			{Day: 1, Date: "2026-09-10", City: "Barcelona"},
			{Day: 2, Date: "2026-09-11", City: "Barcelona"},
		},
		TotalCost: 420,
		Currency:  "USD",
	}
}

func TestSaveGeneratedTrip(t *testing.T) {
	repo := &fakeTripRepo{}
	svc := NewTripService(repo)

	itinerary := sampleItinerary()
	require.NoError(t, svc.SaveGeneratedTrip(context.Background(), itinerary))

	require.NotNil(t, repo.saved)
	assert.Equal(t, itinerary.ID, repo.saved.ID.String())
	assert.Equal(t, "Barcelona", repo.saved.Destination)
	assert.Equal(t, 2, repo.saved.DurationDays)
	assert.Equal(t, 420.0, repo.saved.TotalCost)

	var stored response_models.Itinerary
	require.NoError(t, json.Unmarshal([]byte(repo.saved.Payload), &stored))
	assert.Len(t, stored.Days, 2)
}

func TestSaveGeneratedTripNil(t *testing.T) {
	svc := NewTripService(&fakeTripRepo{})
	assert.ErrorIs(t, svc.SaveGeneratedTrip(context.Background(), nil), utils.ErrInvalidInput)
}

func TestGetTripByID(t *testing.T) {
	itinerary := sampleItinerary()
	payload, err := json.Marshal(itinerary)
	require.NoError(t, err)

	id := uuid.MustParse(itinerary.ID)
	repo := &fakeTripRepo{trips: map[string]*db_models.Trip{
		itinerary.ID: {
			BaseModel:    db_models.BaseModel{ID: id, CreatedAt: time.Now().Unix()},
			Title:        itinerary.Title,
			Origin:       itinerary.Origin,
			Destination:  itinerary.Destination,
			StartDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			DurationDays: itinerary.DurationDays,
			TotalCost:    itinerary.TotalCost,
			Currency:     itinerary.Currency,
			Payload:      string(payload),
		},
	}}
	svc := NewTripService(repo)

	saved, err := svc.GetTripByID(context.Background(), itinerary.ID)
	require.NoError(t, err)
	assert.Equal(t, itinerary.ID, saved.ID)
	assert.Equal(t, "2026-09-10", saved.StartDate)
	require.NotNil(t, saved.Itinerary)
	assert.Len(t, saved.Itinerary.Days, 2)
}

func TestGetTripByIDValidation(t *testing.T) {
	svc := NewTripService(&fakeTripRepo{trips: map[string]*db_models.Trip{}})

	_, err := svc.GetTripByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.GetTripByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestListTripsPaginationValidation(t *testing.T) {
	svc := NewTripService(&fakeTripRepo{})

	_, err := svc.ListTrips(context.Background(), 0, 10)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.ListTrips(context.Background(), 1, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)

	_, err = svc.ListTrips(context.Background(), 1, 101)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}
