package db_models

import (
	"github.com/pgvector/pgvector-go"
)

// POIRecord is a row of the reference catalog of known venues. The assembly
// stage consults it to upgrade a generic address to a street-level one.
type POIRecord struct {
	BaseModel
	Name          string
	CanonicalName string `gorm:"index"`
	City          string `gorm:"index"`
	Address       string
	Latitude      float64
	Longitude     float64
	Category      string
}

// POIEmbedding stores a name embedding per catalog row for similarity lookup
// when an exact canonical-name match fails.
type POIEmbedding struct {
	BaseModel
	PoiID     string          `gorm:"index"`
	Embedding pgvector.Vector `gorm:"type:vector(256)"`
}
