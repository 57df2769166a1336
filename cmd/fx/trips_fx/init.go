package trips_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
)

var Module = fx.Provide(
	provideTripRepo,
	providePOIRecordRepo,
	provideTripService,
)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func providePOIRecordRepo(db *gorm.DB) repositories.POIRecordRepository {
	return repositories.NewPOIRecordRepository(db)
}

func provideTripService(tripRepo repositories.TripRepository) services.TripServiceInterface {
	return services.NewTripService(tripRepo)
}
