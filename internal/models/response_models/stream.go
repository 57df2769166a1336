package response_models

import (
	"strings"

	"tripweaver/internal/pipeline"
)

const (
	StreamStatusGenerating = "generating"
	StreamStatusProgress   = "progress"
	StreamStatusDone       = "done"
	StreamStatusError      = "error"
)

// maxStreamErrorLen bounds the error text carried in a terminal frame.
const maxStreamErrorLen = 240

// StreamMessage is one framed message of the generation event stream.
// Exactly one terminal message ("done" or "error") is emitted per run.
type StreamMessage struct {
	Status string                  `json:"status"`
	Event  *pipeline.PipelineEvent `json:"event,omitempty"`
	Trip   *Itinerary              `json:"trip,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func HeartbeatMessage() StreamMessage {
	return StreamMessage{Status: StreamStatusGenerating}
}

func ProgressMessage(event pipeline.PipelineEvent) StreamMessage {
	return StreamMessage{Status: StreamStatusProgress, Event: &event}
}

func DoneMessage(trip *Itinerary) StreamMessage {
	return StreamMessage{Status: StreamStatusDone, Trip: trip}
}

func ErrorMessage(err error) StreamMessage {
	return StreamMessage{Status: StreamStatusError, Error: SanitizeStreamError(err.Error())}
}

// SanitizeStreamError keeps error strings short and single-line, with the
// characters that would break stream framing stripped.
func SanitizeStreamError(msg string) string {
	replacer := strings.NewReplacer("\n", " ", "\r", " ", `"`, "'")
	msg = replacer.Replace(msg)
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) > maxStreamErrorLen {
		msg = msg[:maxStreamErrorLen-3] + "..."
	}
	return msg
}
