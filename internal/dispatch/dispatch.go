// Package dispatch answers questions locally from the catalog.
//
// Answers are produced by an ordered list of rules. The first rule whose
// predicate holds and whose renderer returns text wins; a renderer that
// returns "" hands the question on to the next rule. The last rule always
// answers, so Answer is total.
package dispatch

import (
	"strings"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/intent"
)

// ServiceName identifies answers produced by the local engine.
const ServiceName = "Flexible Data-Driven Fallback"

// query is what every rule sees: the raw text, its normalised form and its intent.
type query struct {
	raw    string
	text   string
	intent intent.Intent
}

func (q query) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(q.text, w) {
			return true
		}
	}
	return false
}

func (q query) firstPlant(c *catalog.Catalog) (catalog.Plant, bool) {
	if len(q.intent.Plants) == 0 {
		return catalog.Plant{}, false
	}
	return c.PlantByName(q.intent.Plants[0])
}

type rule struct {
	name   string
	when   func(q query) bool
	render func(q query) string
}

// Result is an answer together with the rule that produced it.
type Result struct {
	Text   string
	Rule   string
	Intent intent.Intent
}

// Dispatcher is immutable once built and safe for concurrent use.
type Dispatcher struct {
	catalog   *catalog.Catalog
	extractor *intent.Extractor
	rules     []rule
}

// New builds a dispatcher over c.
func New(c *catalog.Catalog) *Dispatcher {
	d := &Dispatcher{
		catalog:   c,
		extractor: intent.NewExtractor(c),
	}
	d.rules = []rule{
		{name: "short", when: isShort, render: d.renderShort},
		{name: "breeding", when: isBreeding, render: d.renderBreeding},
		{name: "comparison", when: isComparison, render: d.renderComparison},
		{name: "better", when: isBetter, render: d.renderBetter},
		{name: "characteristics", when: isCharacteristics, render: d.renderCharacteristics},
		{name: "plant-ranking", when: isPlantRanking, render: d.renderPlantRanking},
		{name: "plant", when: hasPlant, render: d.renderPlant},
		{name: "zone", when: hasZone, render: d.renderZone},
		{name: "trait-ranking", when: isType(intent.TypeRanking), render: d.renderTraitRanking},
		{name: "recommendation", when: isType(intent.TypeRecommendation), render: d.renderRecommendation},
		{name: "trait-listing", when: hasTrait, render: d.renderTraitListing},
		{name: "help", when: always, render: d.renderHelp},
	}
	return d
}

// Catalog returns the catalog answers are drawn from.
func (d *Dispatcher) Catalog() *catalog.Catalog {
	return d.catalog
}

// Extract exposes the extractor used for dispatch.
func (d *Dispatcher) Extract(text string) intent.Intent {
	return d.extractor.Extract(text)
}

// Answer returns the local answer to text. It never returns an empty string.
func (d *Dispatcher) Answer(text string) string {
	return d.Dispatch(text).Text
}

// Dispatch runs the rules and reports which one answered.
func (d *Dispatcher) Dispatch(text string) Result {
	q := query{
		raw:    strings.TrimSpace(text),
		text:   intent.Normalize(text),
		intent: d.extractor.Extract(text),
	}
	for _, r := range d.rules {
		if !r.when(q) {
			continue
		}
		if out := r.render(q); out != "" {
			return Result{Text: out, Rule: r.name, Intent: q.intent}
		}
	}
	// unreachable: help always renders
	return Result{Text: helpText, Rule: "help", Intent: q.intent}
}

// Rules lists rule names in evaluation order.
func (d *Dispatcher) Rules() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.name
	}
	return names
}

func isShort(q query) bool { return intent.IsShort(q.raw) }

func isBreeding(q query) bool { return q.intent.Breeding }

func isComparison(q query) bool {
	return (q.has("compare", "vs", "versus") || q.intent.Type == intent.TypeComparison) &&
		len(q.intent.Plants) >= 2
}

func isBetter(q query) bool {
	return q.has("better") || (q.has("which") && q.has("one", "is"))
}

func isCharacteristics(q query) bool {
	return q.has("characteristic", "traits", "properties")
}

func isPlantRanking(q query) bool {
	return q.has("ranking") && len(q.intent.Plants) > 0
}

func hasPlant(q query) bool { return len(q.intent.Plants) > 0 }

func hasZone(q query) bool { return len(q.intent.Zones) > 0 }

func hasTrait(q query) bool { return len(q.intent.Traits) > 0 }

func always(query) bool { return true }

func isType(t intent.QuestionType) func(query) bool {
	return func(q query) bool { return q.intent.Type == t }
}
