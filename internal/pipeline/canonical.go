package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// landmarkAliases maps differently-worded references to one shared key, so
// provider-specific wording does not defeat duplicate matching. Keys and
// values are already in canonical (folded) form.
var landmarkAliases = map[string]string{
	"sagrada familia":                  "basilica de la sagrada familia",
	"la sagrada familia":               "basilica de la sagrada familia",
	"basilica of the sagrada familia":  "basilica de la sagrada familia",
	"temple of the sagrada familia":    "basilica de la sagrada familia",
	"park guell":                       "parc guell",
	"guell park":                       "parc guell",
	"notre dame":                       "cathedrale notre dame de paris",
	"notre dame cathedral":             "cathedrale notre dame de paris",
	"cathedral of notre dame":          "cathedrale notre dame de paris",
	"eiffel":                           "tour eiffel",
	"eiffel tower":                     "tour eiffel",
	"the eiffel tower":                 "tour eiffel",
	"berlin wall mural":                "east side gallery",
	"berlin wall gallery":              "east side gallery",
	"st peters basilica":               "basilica di san pietro",
	"saint peters basilica":            "basilica di san pietro",
	"duomo":                            "duomo di milano",
	"milan cathedral":                  "duomo di milano",
	"big ben":                          "elizabeth tower",
	"statue of liberty national monument": "statue of liberty",
}

var nameStopwords = map[string]bool{
	"the": true, "of": true, "a": true, "an": true, "at": true, "in": true,
	"and": true, "de": true, "del": true, "la": true, "le": true, "les": true,
	"el": true, "los": true, "las": true, "da": true, "di": true, "du": true,
	"der": true, "die": true, "das": true, "san": true, "st": true,
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalName folds a free-text venue name into a comparable key: strip
// diacritics, lowercase, drop punctuation, collapse whitespace, then apply
// the landmark alias table.
func CanonicalName(name string) string {
	folded, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteRune(' ')
		}
	}
	canonical := strings.Join(strings.Fields(b.String()), " ")

	if alias, ok := landmarkAliases[canonical]; ok {
		return alias
	}
	return canonical
}

// nameTokens splits a canonical name into stopword-filtered tokens.
func nameTokens(canonical string) []string {
	fields := strings.Fields(canonical)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if nameStopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenOverlap is the size of the token intersection divided by the size of
// the larger token set.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	shared := 0
	for _, t := range b {
		if set[t] {
			shared++
		}
	}
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(shared) / float64(larger)
}

// NormalizeCityKey case-folds and trims a city name for exact-match
// comparison. No aliasing happens here; display aliases are resolved before
// preferences enter the pipeline.
func NormalizeCityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
