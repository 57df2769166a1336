package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/pipeline"
	"tripweaver/internal/providers"
	"tripweaver/pkg/utils"
)

type ScoringServiceInterface interface {
	BuildDayPlans(ctx context.Context, prefs request_models.TripPreferences, candidates []pipeline.CandidatePOI) ([]response_models.DayPlan, error)
}

func NewScoringService(matrix providers.DistanceMatrixService) ScoringServiceInterface {
	return &ScoringService{matrix: matrix}
}

type ScoringService struct {
	matrix providers.DistanceMatrixService
}

type scoredCandidate struct {
	poi   pipeline.CandidatePOI
	score float64
}

// activitiesPerDay maps pace to how many activities fit in one day.
var activitiesPerDay = map[string]int{
	"relaxed":  2,
	"standard": 3,
	"packed":   4,
}

// activitySlots maps pace to the HH:MM windows activities occupy, in order.
var activitySlots = map[string][][2]string{
	"relaxed":  {{"10:00", "12:00"}, {"15:00", "17:00"}},
	"standard": {{"09:00", "11:00"}, {"14:00", "16:00"}, {"16:30", "18:00"}},
	"packed":   {{"09:00", "10:30"}, {"10:45", "12:00"}, {"14:00", "15:30"}, {"16:00", "17:30"}},
}

// BuildDayPlans scores the candidate pool against the preferences, clusters
// activities by proximity so one day stays in one part of town, and lays the
// result out on the trip calendar with meals, a stay and the transfer legs.
func (s *ScoringService) BuildDayPlans(ctx context.Context, prefs request_models.TripPreferences, candidates []pipeline.CandidatePOI) ([]response_models.DayPlan, error) {
	byCategory := map[pipeline.Category][]pipeline.CandidatePOI{}
	for _, c := range candidates {
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}

	activities := s.rank(byCategory[pipeline.CategoryActivity], prefs)
	restaurants := s.rank(byCategory[pipeline.CategoryRestaurant], prefs)
	lodgings := s.rank(byCategory[pipeline.CategoryLodging], prefs)
	transfers := byCategory[pipeline.CategoryTransport]

	if len(activities) == 0 {
		return nil, utils.ErrNoCandidates
	}

	days := prefs.Days()
	pace := strings.ToLower(strings.TrimSpace(prefs.Pace))
	perDay, ok := activitiesPerDay[pace]
	if !ok {
		pace = "standard"
		perDay = activitiesPerDay[pace]
	}

	distances := s.distanceLookup(ctx, activities)
	clusters := s.clusterByProximity(activities, days, perDay, distances)

	stay := pickStay(lodgings)

	// Replay the traveler's physical timeline so no item lands in a city the
	// traveler is not in. Rejections here are logged and skipped, not fatal.
	tracker := pipeline.NewLocationTracker(prefs.Origin)
	tracker.BoardFlight(prefs.Origin, prefs.Destination)
	tracker.LandFlight(prefs.Destination, prefs.Start())

	place := func(day *response_models.DayPlan, item response_models.ScheduledItem) {
		if err := tracker.Validate(item.Name, item.City); err != nil {
			log.Printf("scoring: %v", err)
			return
		}
		day.Items = append(day.Items, item)
	}

	plans := make([]response_models.DayPlan, 0, days)
	mealIdx := 0
	for d := 1; d <= days; d++ {
		plan := response_models.DayPlan{
			Day:  d,
			Date: prefs.Start().AddDate(0, 0, d-1).Format("2006-01-02"),
			City: prefs.Destination,
			Stay: stay,
		}

		if d == 1 {
			if arr := pickTransfer(transfers, "Arrival"); arr != nil {
				place(&plan, transferItem(*arr, "08:00", "09:00"))
			}
		}

		slots := activitySlots[pace]
		for i, sc := range assignSlots(clusters[d-1], slots) {
			if sc == nil {
				continue
			}
			place(&plan, response_models.ScheduledItem{
				Kind:        "activity",
				Name:        sc.poi.Name,
				Description: sc.poi.Description,
				City:        sc.poi.City,
				Address:     sc.poi.Address,
				StartTime:   slots[i][0],
				EndTime:     slots[i][1],
				Cost:        sc.poi.Cost * float64(groupSize(prefs)),
				POIID:       sc.poi.ProviderID,
			})
		}

		if mealIdx < len(restaurants) {
			place(&plan, mealItem(restaurants[mealIdx].poi, "12:00", "13:30", prefs))
			mealIdx++
		}
		if mealIdx < len(restaurants) {
			place(&plan, mealItem(restaurants[mealIdx].poi, "19:00", "20:30", prefs))
			mealIdx++
		}

		if d == days {
			if dep := pickTransfer(transfers, "Departure"); dep != nil {
				place(&plan, transferItem(*dep, "21:00", "22:00"))
			}
		}

		sortItemsByStart(plan.Items)
		plans = append(plans, plan)
	}

	return plans, nil
}

// rank scores candidates and returns them best first with a deterministic
// tie-break on name.
func (s *ScoringService) rank(pois []pipeline.CandidatePOI, prefs request_models.TripPreferences) []scoredCandidate {
	scored := make([]scoredCandidate, 0, len(pois))
	for _, p := range pois {
		scored = append(scored, scoredCandidate{poi: p, score: scoreCandidate(p, prefs)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].poi.Name < scored[j].poi.Name
	})
	return scored
}

func scoreCandidate(p pipeline.CandidatePOI, prefs request_models.TripPreferences) float64 {
	score := p.Rating

	if p.Cost <= perItemBudget(prefs) {
		score += 2
	} else {
		score -= 1.5
	}

	wanted := map[string]bool{}
	for _, t := range prefs.ActivityTags {
		wanted[strings.ToLower(strings.TrimSpace(t))] = true
	}
	for _, t := range p.Tags {
		if wanted[strings.ToLower(strings.TrimSpace(t))] {
			score += 3
		}
	}

	return score
}

// perItemBudget derives a per-item cost ceiling from the budget level, or
// from the explicit amount when one was given.
func perItemBudget(prefs request_models.TripPreferences) float64 {
	if prefs.BudgetAmount > 0 {
		return prefs.BudgetAmount / float64(prefs.Days()*3)
	}
	switch strings.ToLower(prefs.BudgetLevel) {
	case "budget":
		return 25
	case "luxury":
		return 400
	default:
		return 75
	}
}

func groupSize(prefs request_models.TripPreferences) int {
	if prefs.GroupSize < 1 {
		return 1
	}
	return prefs.GroupSize
}

// distanceLookup asks the matrix provider for pairwise distances between all
// activities that carry coordinates. A provider failure degrades to haversine
// inside distanceKM, never fails the run.
func (s *ScoringService) distanceLookup(ctx context.Context, activities []scoredCandidate) providers.DistanceMatrix {
	points := make([]providers.MatrixPoint, 0, len(activities))
	for i, a := range activities {
		if a.poi.HasCoordinates() {
			points = append(points, providers.MatrixPoint{
				ID:  matrixID(a.poi, i),
				Lat: *a.poi.Latitude,
				Lng: *a.poi.Longitude,
			})
		}
	}
	if len(points) < 2 || s.matrix == nil {
		return nil
	}

	mat, err := s.matrix.ComputeDistances(ctx, points)
	if err != nil {
		log.Printf("scoring: distance matrix unavailable, using haversine fallback: %v", err)
		return nil
	}
	return mat
}

func matrixID(p pipeline.CandidatePOI, idx int) string {
	if p.ProviderID != "" {
		return p.ProviderID
	}
	return fmt.Sprintf("cand-%d", idx)
}

// distanceKM resolves the distance between two candidates, preferring the
// matrix edge and falling back to straight-line distance.
func distanceKM(a, b pipeline.CandidatePOI, aIdx, bIdx int, mat providers.DistanceMatrix) float64 {
	if mat != nil {
		if row, ok := mat[matrixID(a, aIdx)]; ok {
			if edge, ok := row[matrixID(b, bIdx)]; ok && edge.DistanceMeters > 0 {
				return float64(edge.DistanceMeters) / 1000.0
			}
		}
	}
	if a.HasCoordinates() && b.HasCoordinates() {
		return pipeline.HaversineKM(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
	}
	// Unknown distance: keep it neutral so coordinate-less candidates still
	// get scheduled.
	return 5
}

// clusterByProximity seeds each day with the best unused activity, then fills
// the day with its nearest unused neighbors.
func (s *ScoringService) clusterByProximity(activities []scoredCandidate, days, perDay int, mat providers.DistanceMatrix) [][]scoredCandidate {
	used := make([]bool, len(activities))
	clusters := make([][]scoredCandidate, days)

	for d := 0; d < days; d++ {
		seedIdx := -1
		for i := range activities {
			if !used[i] {
				seedIdx = i
				break
			}
		}
		if seedIdx == -1 {
			break
		}
		used[seedIdx] = true
		cluster := []scoredCandidate{activities[seedIdx]}

		for len(cluster) < perDay {
			nearest := -1
			nearestKM := 0.0
			for i := range activities {
				if used[i] {
					continue
				}
				km := distanceKM(activities[seedIdx].poi, activities[i].poi, seedIdx, i, mat)
				if nearest == -1 || km < nearestKM {
					nearest = i
					nearestKM = km
				}
			}
			if nearest == -1 {
				break
			}
			used[nearest] = true
			cluster = append(cluster, activities[nearest])
		}

		clusters[d] = cluster
	}

	return clusters
}

// assignSlots maps a day's cluster onto the pace's time slots, preferring an
// assignment where each venue is actually open during its slot. Candidates
// without parseable hours fit anywhere.
func assignSlots(cluster []scoredCandidate, slots [][2]string) []*scoredCandidate {
	assigned := make([]*scoredCandidate, len(slots))
	used := make([]bool, len(cluster))

	for si := range slots {
		pick := -1
		for ci := range cluster {
			if used[ci] {
				continue
			}
			if slotFits(slots[si], cluster[ci].poi.OpeningHours) {
				pick = ci
				break
			}
		}
		if pick == -1 {
			for ci := range cluster {
				if !used[ci] {
					pick = ci
					break
				}
			}
		}
		if pick == -1 {
			break
		}
		used[pick] = true
		sc := cluster[pick]
		assigned[si] = &sc
	}

	return assigned
}

var openingHoursPattern = regexp.MustCompile(`([01][0-9]|2[0-3]):[0-5][0-9]`)

// slotFits reports whether a venue with the given hours string is open for
// the whole slot. HH:MM strings compare correctly lexicographically.
func slotFits(slot [2]string, hours string) bool {
	window := openingHoursPattern.FindAllString(hours, 2)
	if len(window) < 2 {
		return true
	}
	return slot[0] >= window[0] && slot[1] <= window[1]
}

func pickStay(lodgings []scoredCandidate) *response_models.StayOption {
	if len(lodgings) == 0 {
		return nil
	}
	best := lodgings[0].poi
	return &response_models.StayOption{
		Name:    best.Name,
		Address: best.Address,
		City:    best.City,
		Cost:    best.Cost,
	}
}

func pickTransfer(transfers []pipeline.CandidatePOI, prefix string) *pipeline.CandidatePOI {
	for i := range transfers {
		if strings.HasPrefix(transfers[i].Name, prefix) {
			return &transfers[i]
		}
	}
	return nil
}

func transferItem(t pipeline.CandidatePOI, start, end string) response_models.ScheduledItem {
	return response_models.ScheduledItem{
		Kind:        "transfer",
		Name:        t.Name,
		Description: t.Description,
		City:        t.City,
		Address:     t.Address,
		StartTime:   start,
		EndTime:     end,
		Cost:        t.Cost,
	}
}

func mealItem(r pipeline.CandidatePOI, start, end string, prefs request_models.TripPreferences) response_models.ScheduledItem {
	return response_models.ScheduledItem{
		Kind:        "meal",
		Name:        r.Name,
		Description: r.Description,
		City:        r.City,
		Address:     r.Address,
		StartTime:   start,
		EndTime:     end,
		Cost:        r.Cost * float64(groupSize(prefs)),
		POIID:       r.ProviderID,
	}
}

func sortItemsByStart(items []response_models.ScheduledItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})
}
