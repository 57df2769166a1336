package response_models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStreamError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain message unchanged",
			input:    "no usable candidates for destination",
			expected: "no usable candidates for destination",
		},
		{
			name:     "newlines and quotes flattened",
			input:    "model said:\n\"try again\"\r\nlater",
			expected: "model said: 'try again' later",
		},
		{
			name:     "long message truncated with ellipsis",
			input:    strings.Repeat("x", 500),
			expected: strings.Repeat("x", 237) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeStreamError(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len(got), 240)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage(errors.New("backend\nexploded"))
	assert.Equal(t, StreamStatusError, msg.Status)
	assert.Equal(t, "backend exploded", msg.Error)
	assert.Nil(t, msg.Trip)
}

func TestDoneMessageCarriesTrip(t *testing.T) {
	trip := &Itinerary{ID: "abc", Destination: "Barcelona"}
	msg := DoneMessage(trip)
	assert.Equal(t, StreamStatusDone, msg.Status)
	require.NotNil(t, msg.Trip)
	assert.Equal(t, "abc", msg.Trip.ID)
}
