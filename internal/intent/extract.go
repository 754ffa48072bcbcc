// Package intent turns free-text questions into structured intents.
package intent

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/zer3az/chatbot/internal/catalog"
)

// shortInputTokens is the token count at or below which input is treated as a direct lookup.
const shortInputTokens = 2

// Intent is the structured reading of one question.
type Intent struct {
	Plants   []string       `json:"plants"`
	Zones    []catalog.Zone `json:"zones"`
	Traits   []Trait        `json:"traits"`
	Type     QuestionType   `json:"type"`
	Breeding bool           `json:"breeding"`
	Original string         `json:"original"`
}

// HasTrait reports whether the trait category was mentioned.
func (in Intent) HasTrait(t Trait) bool {
	return slices.Contains(in.Traits, t)
}

// Empty reports whether no plant, zone or trait was mentioned.
func (in Intent) Empty() bool {
	return len(in.Plants) == 0 && len(in.Zones) == 0 && len(in.Traits) == 0
}

// Extractor matches questions against the catalog and the keyword tables.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	plants []catalog.Plant
}

// NewExtractor creates an extractor over the plants of c.
func NewExtractor(c *catalog.Catalog) *Extractor {
	return &Extractor{plants: c.Plants()}
}

// Normalize lowercases and NFC-normalises text the way Extract does.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(text))
}

// Tokens returns the whitespace-separated words of text.
func Tokens(text string) []string {
	return strings.Fields(text)
}

// IsShort reports whether text has at most two words.
func IsShort(text string) bool {
	return len(Tokens(text)) <= shortInputTokens
}

// Extract reads the intent of text. It is a pure function of text and the static tables.
func (e *Extractor) Extract(text string) Intent {
	q := Normalize(text)

	in := Intent{
		Plants:   e.matchPlants(q),
		Zones:    matchAll(q, zoneKeywords),
		Traits:   matchAll(q, traitKeywords),
		Type:     TypeGeneral,
		Original: text,
	}
	if t, ok := matchFirst(q, typeKeywords); ok {
		in.Type = t
	}

	if IsShort(q) && !in.Empty() {
		switch {
		case len(in.Plants) > 0:
			in.Type = TypeWhat
		case len(in.Traits) > 0:
			in.Type = TypeRanking
		}
	}

	if containsAny(q, breedingKeywords) {
		in.Breeding = true
		in.Type = TypeBreeding
	}
	return in
}

// matchPlants collects plant names in catalog order. Matching is substring based,
// so one word can hit several plants ("wheat" hits both wheats).
func (e *Extractor) matchPlants(q string) []string {
	var out []string
	for _, p := range e.plants {
		if e.plantMatches(q, p) && !slices.Contains(out, p.CommonName) {
			out = append(out, p.CommonName)
		}
	}
	return out
}

func (e *Extractor) plantMatches(q string, p catalog.Plant) bool {
	common := Normalize(p.CommonName)
	scientific := Normalize(p.ScientificName)
	if strings.Contains(q, common) || strings.Contains(q, scientific) {
		return true
	}
	if containsAny(q, strings.Fields(common)) || containsAny(q, strings.Fields(scientific)) {
		return true
	}
	for _, alias := range p.Aliases {
		if strings.Contains(q, Normalize(alias)) {
			return true
		}
	}
	return false
}

func matchAll[T any](q string, sets []keywordSet[T]) []T {
	var out []T
	for _, set := range sets {
		if containsAny(q, set.keywords) {
			out = append(out, set.value)
		}
	}
	return out
}

func matchFirst[T any](q string, sets []keywordSet[T]) (T, bool) {
	for _, set := range sets {
		if containsAny(q, set.keywords) {
			return set.value, true
		}
	}
	var zero T
	return zero, false
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
