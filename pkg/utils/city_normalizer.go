package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cityAliases maps folded spellings of common user input to the canonical
// display name used throughout the pipeline.
var cityAliases = map[string]string{
	"nyc":           "New York",
	"new york city": "New York",
	"sf":            "San Francisco",
	"bcn":           "Barcelona",
	"cdmx":          "Mexico City",
	"bsas":          "Buenos Aires",
	"hcmc":          "Ho Chi Minh City",
	"saigon":        "Ho Chi Minh City",
	"la":            "Los Angeles",
	"rio":           "Rio de Janeiro",
}

var cityFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
var cityTitler = cases.Title(language.English)

// NormalizeCityName turns raw user text into a canonical display name:
// trimmed, whitespace-collapsed, title-cased, with common abbreviations
// resolved. It runs before preferences enter the pipeline.
func NormalizeCityName(raw string) string {
	trimmed := strings.Join(strings.Fields(strings.TrimSpace(raw)), " ")
	if trimmed == "" {
		return ""
	}

	folded, _, err := transform.String(cityFolder, trimmed)
	if err != nil {
		folded = trimmed
	}
	key := strings.ToLower(folded)
	if alias, ok := cityAliases[key]; ok {
		return alias
	}
	return cityTitler.String(strings.ToLower(trimmed))
}
