package pipeline

import (
	"log"
	"strings"
)

// DedupConfig holds the matching thresholds. The defaults are empirically
// tuned; they are configuration rather than constants so individual engines
// can be recalibrated without touching matching code.
type DedupConfig struct {
	// SameLandmarkRadiusKM is the distance within which two identically
	// named candidates are considered the same landmark.
	SameLandmarkRadiusKM float64
	// SameVenueRadiusKM is the tight radius for fuzzy name matches.
	SameVenueRadiusKM float64
	// TokenOverlapThreshold is the minimum stopword-filtered token overlap
	// (intersection over the larger set) for a fuzzy match.
	TokenOverlapThreshold float64
	// SubstringMinLength is the minimum canonical-name length before a
	// containment match is considered.
	SubstringMinLength int
}

func DefaultDedupConfig() DedupConfig {
	return DedupConfig{
		SameLandmarkRadiusKM:  2.5,
		SameVenueRadiusKM:     0.35,
		TokenOverlapThreshold: 0.82,
		SubstringMinLength:    12,
	}
}

// DedupEngine collapses near-duplicate candidates surfaced by different
// providers into one canonical entry. It carries no state of its own; the
// seen set is supplied and owned by the caller.
type DedupEngine struct {
	cfg DedupConfig
}

func NewDedupEngine(cfg DedupConfig) *DedupEngine {
	return &DedupEngine{cfg: cfg}
}

// IsDuplicate reports whether a and b refer to the same place. The rules are
// evaluated in order and every rule is symmetric in its arguments.
func (e *DedupEngine) IsDuplicate(a, b CandidatePOI) bool {
	if a.ProviderID != "" && b.ProviderID != "" && a.ProviderID == b.ProviderID {
		return true
	}

	ca := CanonicalName(a.Name)
	cb := CanonicalName(b.Name)

	if ca != "" && ca == cb {
		if !a.HasCoordinates() || !b.HasCoordinates() {
			return true
		}
		if e.distanceKM(a, b) <= e.cfg.SameLandmarkRadiusKM {
			return true
		}
	}

	// The fuzzy rules need the tight radius, so both sides must carry
	// coordinates.
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return false
	}
	withinVenue := e.distanceKM(a, b) <= e.cfg.SameVenueRadiusKM

	if withinVenue && tokenOverlap(nameTokens(ca), nameTokens(cb)) >= e.cfg.TokenOverlapThreshold {
		return true
	}

	if withinVenue &&
		len(ca) >= e.cfg.SubstringMinLength && len(cb) >= e.cfg.SubstringMinLength &&
		(strings.Contains(ca, cb) || strings.Contains(cb, ca)) {
		return true
	}

	return false
}

// Filter appends the non-duplicate candidates to the caller-owned seen set
// and returns them, along with the number of candidates dropped.
func (e *DedupEngine) Filter(seen *SeenSet, candidates []CandidatePOI) ([]CandidatePOI, int) {
	accepted := make([]CandidatePOI, 0, len(candidates))
	dropped := 0

	for _, candidate := range candidates {
		duplicate := false
		for _, existing := range seen.Items() {
			if e.IsDuplicate(candidate, existing) {
				log.Printf("dedup: dropping %q from %s (duplicate of %q from %s)",
					candidate.Name, candidate.Source, existing.Name, existing.Source)
				duplicate = true
				break
			}
		}
		if duplicate {
			dropped++
			continue
		}
		seen.Add(candidate)
		accepted = append(accepted, candidate)
	}

	return accepted, dropped
}

func (e *DedupEngine) distanceKM(a, b CandidatePOI) float64 {
	return HaversineKM(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
}
