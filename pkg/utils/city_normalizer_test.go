package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCityName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "title-cases plain input", input: "barcelona", expected: "Barcelona"},
		{name: "collapses whitespace", input: "  new   york ", expected: "New York"},
		{name: "resolves abbreviation", input: "NYC", expected: "New York"},
		{name: "resolves historical name", input: "Saigon", expected: "Ho Chi Minh City"},
		{name: "diacritics still match aliases", input: "São Paulo", expected: "São Paulo"},
		{name: "empty stays empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCityName(tt.input))
		})
	}
}
