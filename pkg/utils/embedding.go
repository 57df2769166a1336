package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingClientInterface turns text into a vector for nearest-neighbor
// lookups in the POI catalog.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

// EmbeddingDimensions must match the vector column width on poi_embeddings.
const EmbeddingDimensions = 256

// HashEmbeddingClient is a deterministic, dependency-free embedder. It hashes
// words onto a fixed-width vector, which is enough to rank near-identical
// venue names without paying for an embedding API on every enrichment lookup.
type HashEmbeddingClient struct{}

func NewHashEmbeddingClient() EmbeddingClientInterface {
	return &HashEmbeddingClient{}
}

func (c *HashEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

func (c *HashEmbeddingClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	vectors := make([]pgvector.Vector, len(texts))
	for i, text := range texts {
		vectors[i] = c.textToVector(text)
	}
	return vectors, nil
}

// textToVector creates a simple vector representation of text.
// For production-grade recall, swap in a proper embedding model.
func (c *HashEmbeddingClient) textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	vector := make([]float32, EmbeddingDimensions)

	// Use word hashing to populate vector
	for _, word := range words {
		hash := c.hashWord(word)
		for i := 0; i < EmbeddingDimensions; i++ {
			// Distribute word influence across dimensions
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	// Normalize the vector
	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *HashEmbeddingClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
