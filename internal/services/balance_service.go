package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

type BalanceServiceInterface interface {
	// Balance hands the deterministic draft to the generative model for
	// pacing and narrative. The second return reports whether the draft was
	// used unchanged because the model failed or misbehaved.
	Balance(ctx context.Context, prefs request_models.TripPreferences, draft []response_models.DayPlan) ([]response_models.DayPlan, bool, error)
}

func NewBalanceService(client utils.BalancerClientInterface) BalanceServiceInterface {
	return &BalanceService{client: client}
}

type BalanceService struct {
	client utils.BalancerClientInterface
}

// retryBudget is the minimum time that must remain before the run deadline
// for a second model attempt to be worth making.
const retryBudget = 15 * time.Second

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (s *BalanceService) Balance(ctx context.Context, prefs request_models.TripPreferences, draft []response_models.DayPlan) ([]response_models.DayPlan, bool, error) {
	if len(draft) == 0 {
		return nil, false, utils.ErrEmptyDayPlan
	}
	if s.client == nil {
		return draft, true, nil
	}

	prompt := buildBalancePrompt(prefs, draft)

	for attempt := 1; attempt <= 2; attempt++ {
		if ctx.Err() != nil {
			break
		}
		if attempt > 1 {
			if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= retryBudget {
				log.Printf("balance: skipping retry, %s left before deadline", time.Until(deadline).Round(time.Second))
				break
			}
		}

		raw, err := s.client.BalancePlan(ctx, prompt, len(draft))
		if err != nil {
			log.Printf("balance: attempt %d failed: %v", attempt, err)
			continue
		}

		balanced, err := mergeBalancedPlan(draft, raw)
		if err != nil {
			log.Printf("balance: attempt %d returned unusable plan: %v (%v)", attempt, err, utils.ErrUnexpectedBehaviorOfAI)
			continue
		}
		return balanced, false, nil
	}

	log.Printf("balance: using deterministic draft unchanged")
	return draft, true, nil
}

func buildBalancePrompt(prefs request_models.TripPreferences, draft []response_models.DayPlan) string {
	draftJSON, err := json.Marshal(map[string]interface{}{"days": draft})
	if err != nil {
		draftJSON = []byte("{}")
	}

	pace := prefs.Pace
	if pace == "" {
		pace = "standard"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rebalance this %d-day trip to %s for a %s-paced %s group. Return **JSON only** with the same shape.\n",
		len(draft), prefs.Destination, pace, groupLabel(prefs))
	b.WriteString(`
Hard constraints:
- Keep exactly the same days and the same items on each day. Never invent, drop or move items between days.
- You may only change each item's start_time and end_time, the item order inside a day, and each day's "narrative".
- Times are HH:MM, start_time < end_time, no overlapping items within a day.
- Write a two-sentence narrative per day that sells the flow of the day.

Plan:
`)
	b.Write(draftJSON)
	b.WriteString("\n\nReturn JSON only. No comments, no markdown.")
	return b.String()
}

func groupLabel(prefs request_models.TripPreferences) string {
	if prefs.GroupType != "" {
		return prefs.GroupType
	}
	if prefs.GroupSize > 1 {
		return fmt.Sprintf("%d-person", prefs.GroupSize)
	}
	return "solo"
}

// mergeBalancedPlan validates the model output against the draft and merges
// the two: the model owns times, ordering and narrative, the draft owns
// everything else. Any structural deviation rejects the whole response.
func mergeBalancedPlan(draft []response_models.DayPlan, raw string) ([]response_models.DayPlan, error) {
	var got struct {
		Days []struct {
			Day       int    `json:"day"`
			Narrative string `json:"narrative"`
			Items     []struct {
				Name      string `json:"name"`
				StartTime string `json:"start_time"`
				EndTime   string `json:"end_time"`
			} `json:"items"`
		} `json:"days"`
	}
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(got.Days) != len(draft) {
		return nil, fmt.Errorf("expected %d days, got %d", len(draft), len(got.Days))
	}

	merged := make([]response_models.DayPlan, len(draft))
	for i, day := range got.Days {
		if day.Day != i+1 {
			return nil, fmt.Errorf("day %d has number %d", i+1, day.Day)
		}
		if len(day.Items) != len(draft[i].Items) {
			return nil, fmt.Errorf("day %d: expected %d items, got %d", day.Day, len(draft[i].Items), len(day.Items))
		}

		byName := make(map[string]response_models.ScheduledItem, len(draft[i].Items))
		for _, item := range draft[i].Items {
			byName[item.Name] = item
		}

		out := draft[i]
		out.Narrative = strings.TrimSpace(day.Narrative)
		out.Items = make([]response_models.ScheduledItem, 0, len(day.Items))

		seen := map[string]bool{}
		for _, item := range day.Items {
			base, ok := byName[item.Name]
			if !ok {
				return nil, fmt.Errorf("day %d: unknown item %q", day.Day, item.Name)
			}
			if seen[item.Name] {
				return nil, fmt.Errorf("day %d: item %q listed twice", day.Day, item.Name)
			}
			seen[item.Name] = true

			if !timePattern.MatchString(item.StartTime) || !timePattern.MatchString(item.EndTime) {
				return nil, fmt.Errorf("day %d: bad time on %q: %s-%s", day.Day, item.Name, item.StartTime, item.EndTime)
			}
			if item.StartTime >= item.EndTime {
				return nil, fmt.Errorf("day %d: %q ends before it starts", day.Day, item.Name)
			}

			base.StartTime = item.StartTime
			base.EndTime = item.EndTime
			out.Items = append(out.Items, base)
		}

		merged[i] = out
	}

	return merged, nil
}
