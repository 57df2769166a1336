package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(f float64) *float64 {
	return &f
}

func candidate(name, providerID string, lat, lng *float64) CandidatePOI {
	return CandidatePOI{
		ProviderID: providerID,
		Name:       name,
		Category:   CategoryActivity,
		City:       "Barcelona",
		Latitude:   lat,
		Longitude:  lng,
	}
}

func TestIsDuplicate(t *testing.T) {
	engine := NewDedupEngine(DefaultDedupConfig())

	tests := []struct {
		name      string
		a         CandidatePOI
		b         CandidatePOI
		duplicate bool
	}{
		{
			name:      "same provider id always matches",
			a:         candidate("Sagrada Familia", "poi-1", nil, nil),
			b:         candidate("Completely Different Name", "poi-1", nil, nil),
			duplicate: true,
		},
		{
			name:      "identical canonical name with coords missing on one side",
			a:         candidate("Park Güell", "", coord(41.4145), coord(2.1527)),
			b:         candidate("park guell", "", nil, nil),
			duplicate: true,
		},
		{
			name:      "aliased landmark within landmark radius",
			a:         candidate("La Sagrada Família", "", coord(41.4036), coord(2.1744)),
			b:         candidate("Basilica of the Sagrada Familia", "", coord(41.4180), coord(2.1744)), // ~1.6 km north
			duplicate: true,
		},
		{
			name:      "identical name but different branches beyond landmark radius",
			a:         candidate("Mercado Central", "", coord(41.4000), coord(2.1700)),
			b:         candidate("Mercado Central", "", coord(41.4350), coord(2.1700)), // ~3.9 km north
			duplicate: false,
		},
		{
			name:      "high token overlap inside venue radius",
			a:         candidate("Picasso Museum Barcelona", "", coord(41.3851), coord(2.1800)),
			b:         candidate("The Picasso Museum Barcelona", "", coord(41.3861), coord(2.1800)), // ~110 m
			duplicate: true,
		},
		{
			name:      "high token overlap but outside venue radius",
			a:         candidate("Picasso Museum Barcelona", "", coord(41.3851), coord(2.1800)),
			b:         candidate("The Picasso Museum Barcelona", "", coord(41.3951), coord(2.1800)), // ~1.1 km
			duplicate: false,
		},
		{
			name:      "long name containment inside venue radius",
			a:         candidate("Colosseum Underground Tour", "", coord(41.8902), coord(12.4922)),
			b:         candidate("Colosseum Underground", "", coord(41.8912), coord(12.4922)), // ~110 m
			duplicate: true,
		},
		{
			name:      "short names never match by containment",
			a:         candidate("Bar Luca", "", coord(41.3851), coord(2.1800)),
			b:         candidate("Luca", "", coord(41.3852), coord(2.1800)),
			duplicate: false,
		},
		{
			name:      "fuzzy rules require coordinates on both sides",
			a:         candidate("Picasso Museum Barcelona", "", coord(41.3851), coord(2.1800)),
			b:         candidate("The Picasso Museum Barcelona shop", "", nil, nil),
			duplicate: false,
		},
		{
			name:      "unrelated venues stay distinct",
			a:         candidate("Tapas Bar El Xampanyet", "", coord(41.3840), coord(2.1810)),
			b:         candidate("Bar Canete", "", coord(41.3790), coord(2.1720)),
			duplicate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.duplicate, engine.IsDuplicate(tt.a, tt.b))
			// Every rule is symmetric in its arguments.
			assert.Equal(t, engine.IsDuplicate(tt.a, tt.b), engine.IsDuplicate(tt.b, tt.a))
		})
	}
}

func TestFilterAgainstSeenSet(t *testing.T) {
	engine := NewDedupEngine(DefaultDedupConfig())
	seen := NewSeenSet()

	first, dropped := engine.Filter(seen, []CandidatePOI{
		candidate("La Sagrada Família", "", coord(41.4036), coord(2.1744)),
		candidate("Park Güell", "", coord(41.4145), coord(2.1527)),
	})
	require.Len(t, first, 2)
	assert.Equal(t, 0, dropped)

	// A second provider batch repeats one landmark under another wording.
	second, dropped := engine.Filter(seen, []CandidatePOI{
		candidate("Basilica of the Sagrada Familia", "", coord(41.4038), coord(2.1746)),
		candidate("Casa Batlló", "", coord(41.3917), coord(2.1650)),
	})
	require.Len(t, second, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "Casa Batlló", second[0].Name)
	assert.Equal(t, 3, seen.Len())
}
