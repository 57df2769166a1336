package services

import (
	"context"
	"log"

	"tripweaver/internal/pipeline"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

// AddressEnricherInterface resolves a street-level address for a venue from
// the reference catalog when a provider only supplied a vague one.
type AddressEnricherInterface interface {
	StreetAddress(ctx context.Context, city, name string) (string, bool)
}

func NewCatalogAddressEnricher(records repositories.POIRecordRepository, embedder utils.EmbeddingClientInterface) AddressEnricherInterface {
	return &CatalogAddressEnricher{
		records:  records,
		embedder: embedder,
	}
}

type CatalogAddressEnricher struct {
	records  repositories.POIRecordRepository
	embedder utils.EmbeddingClientInterface
}

// StreetAddress tries an exact canonical-name match first, then a vector
// similarity lookup. Catalog misses and errors both report not-found; the
// catalog is best-effort and never fails a run.
func (e *CatalogAddressEnricher) StreetAddress(ctx context.Context, city, name string) (string, bool) {
	canonical := pipeline.CanonicalName(name)
	if canonical == "" {
		return "", false
	}

	record, err := e.records.FindByCanonicalName(ctx, city, canonical)
	if err != nil {
		log.Printf("enrich: catalog lookup for %q failed: %v", name, err)
		return "", false
	}
	if record != nil && record.Address != "" {
		return record.Address, true
	}

	vector, err := e.embedder.GetEmbedding(ctx, canonical)
	if err != nil {
		log.Printf("enrich: embedding %q failed: %v", name, err)
		return "", false
	}
	record, err = e.records.FindNearestByEmbedding(ctx, city, vector)
	if err != nil {
		log.Printf("enrich: similarity lookup for %q failed: %v", name, err)
		return "", false
	}
	if record != nil && record.Address != "" {
		return record.Address, true
	}
	return "", false
}
