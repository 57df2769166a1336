package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the shared id and int64 timestamp columns.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().Unix()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().Unix()
	return nil
}

// Trip is a persisted generated itinerary. The pipeline hands the finished
// itinerary to the persistence layer exactly once; it is never mutated by the
// generation subsystem afterwards.
type Trip struct {
	BaseModel
	Title        string
	Origin       string
	Destination  string
	StartDate    time.Time
	DurationDays int
	TotalCost    float64
	Currency     string
	// Payload holds the full itinerary JSON as produced by the pipeline.
	Payload string `gorm:"type:jsonb"`
}
