package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripweaver/internal/models/db_models"
)

type TripRepository interface {
	SaveTrip(ctx context.Context, trip *db_models.Trip) error
	GetTripByID(ctx context.Context, tripID string) (*db_models.Trip, error)
	ListTrips(ctx context.Context, page int, pageSize int) ([]db_models.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) SaveTrip(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) GetTripByID(ctx context.Context, tripID string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Where("id = ?", tripID).
		First(&trip).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListTrips(ctx context.Context, page int, pageSize int) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}
