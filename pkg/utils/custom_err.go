package utils

import "errors"

var (
	ErrTripNotFound           = errors.New("trip not found")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrInvalidInput           = errors.New("invalid input")
	ErrMissingPreferences     = errors.New("missing required preference fields")
	ErrGenerationDeadline     = errors.New("itinerary generation deadline exceeded")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from generative model")
	ErrEmptyDayPlan           = errors.New("generated plan contains an empty day")
	ErrNoCandidates           = errors.New("no usable candidates for destination")
)
