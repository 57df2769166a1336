package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"tripweaver/internal/models/db_models"
)

type POIRecordRepository interface {
	FindByCanonicalName(ctx context.Context, city string, canonicalName string) (*db_models.POIRecord, error)
	FindNearestByEmbedding(ctx context.Context, city string, vector pgvector.Vector) (*db_models.POIRecord, error)
	CreateRecord(ctx context.Context, record *db_models.POIRecord, embedding pgvector.Vector) error
}

type poiRecordRepository struct {
	db *gorm.DB
}

func NewPOIRecordRepository(db *gorm.DB) POIRecordRepository {
	return &poiRecordRepository{db: db}
}

func (r *poiRecordRepository) FindByCanonicalName(ctx context.Context, city string, canonicalName string) (*db_models.POIRecord, error) {
	var record db_models.POIRecord
	err := r.db.WithContext(ctx).
		Where("city = ? AND canonical_name = ?", city, canonicalName).
		First(&record).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindNearestByEmbedding returns the closest catalog row by cosine distance,
// or nil when nothing clears the similarity floor.
func (r *poiRecordRepository) FindNearestByEmbedding(ctx context.Context, city string, vector pgvector.Vector) (*db_models.POIRecord, error) {
	var rows []db_models.POIRecord

	query := `
        SELECT p.*
        FROM poi_records p
        JOIN poi_embeddings e ON e.poi_id = p.id::text
        WHERE p.city = $1
          AND (1 - (e.embedding <=> $2)) > 0.7
        ORDER BY e.embedding <=> $2
        LIMIT 1
    `

	err := r.db.WithContext(ctx).Raw(query, city, vector.String()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *poiRecordRepository) CreateRecord(ctx context.Context, record *db_models.POIRecord, embedding pgvector.Vector) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		emb := db_models.POIEmbedding{
			PoiID:     record.ID.String(),
			Embedding: embedding,
		}
		return tx.Create(&emb).Error
	})
}
