package pipeline

import "time"

// Stage names in pipeline order.
const (
	StageFetch    = "fetch_candidates"
	StageDedup    = "deduplicate"
	StageCluster  = "score_and_cluster"
	StageBalance  = "balance_plan"
	StageAssemble = "assemble_itinerary"
)

const (
	EventCompleted = "completed"
	EventFailed    = "failed"
)

// PipelineEvent is emitted once per stage transition for observability and
// streaming. Later stages never read events back.
type PipelineEvent struct {
	Stage     string                 `json:"stage"`
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

func NewEvent(stage, status string, payload map[string]interface{}) PipelineEvent {
	return PipelineEvent{
		Stage:     stage,
		Status:    status,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
