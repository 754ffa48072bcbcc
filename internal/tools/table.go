// Package tools exposes catalog operations as named tools with JSON parameters.
//
// The table is built once by New and never changes afterwards. The same table
// serves the HTTP tool endpoints, the LLM function-calling loop and the MCP server.
package tools

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/dispatch"
)

var (
	// ErrUnknownTool is returned by Execute for a name that is not in the table.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidParams is returned when parameters fail decoding or validation.
	ErrInvalidParams = errors.New("invalid parameters")
)

// Param describes one tool parameter.
type Param struct {
	Name        string
	Type        string // string | integer | object
	Description string
	Required    bool
	Enum        []string
	Properties  []Param // for object parameters
}

// Handler runs a tool against decoded parameters.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Tool is one entry of the table.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	handler     Handler
}

// Definition is the JSON form of a tool served to clients.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Table is the immutable tool registry.
type Table struct {
	tools  []Tool
	byName map[string]int
}

// New builds the table over the catalog and the local dispatcher.
func New(c *catalog.Catalog, d *dispatch.Dispatcher) *Table {
	h := &handlers{catalog: c, dispatcher: d}

	tools := []Tool{
		{
			Name:        "search_plants",
			Description: "Search for plants by name, scientific name, or zone",
			Params:      []Param{{Name: "query", Type: "string", Description: "Search term", Required: true}},
			handler:     h.searchPlants,
		},
		{
			Name:        "get_plant_details",
			Description: "Get detailed information about a specific plant",
			Params:      []Param{plantIDParam("plant_id", "Plant ID")},
			handler:     h.plantDetails,
		},
		{
			Name:        "calculate_trait_similarity",
			Description: "Calculate trait similarity between two plants",
			Params:      pairParams(),
			handler:     h.traitSimilarity,
		},
		{
			Name:        "get_plants_by_zone",
			Description: "Get all plants for a specific climate zone",
			Params:      []Param{zoneParam()},
			handler:     h.plantsByZone,
		},
		{
			Name:        "predict_hybridization",
			Description: "Predict hybridization success between two plants",
			Params:      pairParams(),
			handler:     h.predictHybridization,
		},
		{
			Name:        "check_compatibility",
			Description: "Look up the cross-compatibility of two plants",
			Params:      pairParams(),
			handler:     h.compatibility,
		},
		{
			Name:        "rank_plants",
			Description: "Rank all plants by a metric, highest first",
			Params: []Param{{
				Name: "metric", Type: "string", Description: "Metric to rank by", Required: true,
				Enum: metricNames(),
			}},
			handler: h.rankPlants,
		},
		{
			Name:        "get_zone_statistics",
			Description: "Get statistics about a climate zone",
			Params:      []Param{zoneParam()},
			handler:     h.zoneStatistics,
		},
		{
			Name:        "get_recommendations",
			Description: "Get plant recommendations based on criteria",
			Params: []Param{{
				Name: "criteria", Type: "object", Description: "Search criteria (zone, target_trait)", Required: true,
				Properties: []Param{
					{Name: "zone", Type: "string", Description: "Climate zone"},
					{Name: "target_trait", Type: "string", Description: "Trait to look for, e.g. drought"},
				},
			}},
			handler: h.recommendations,
		},
		{
			Name:        "generate_detailed_report",
			Description: "Generate comprehensive breeding analysis report with characteristics analysis and improvement recommendations",
			Params:      pairParams(),
			handler:     h.detailedReport,
		},
		{
			Name:        "answer_question",
			Description: "Answer ANY question about plants, zones, traits using keyword extraction",
			Params:      []Param{{Name: "question", Type: "string", Description: "User's question", Required: true}},
			handler:     h.answerQuestion,
		},
	}

	t := &Table{tools: tools, byName: make(map[string]int, len(tools))}
	for i, tl := range tools {
		t.byName[tl.Name] = i
	}
	return t
}

func plantIDParam(name, desc string) Param {
	return Param{Name: name, Type: "integer", Description: desc, Required: true}
}

func pairParams() []Param {
	return []Param{
		plantIDParam("plant_a_id", "First plant ID"),
		plantIDParam("plant_b_id", "Second plant ID"),
	}
}

func zoneParam() Param {
	zones := make([]string, len(catalog.Zones))
	for i, z := range catalog.Zones {
		zones[i] = string(z)
	}
	return Param{
		Name: "zone", Type: "string", Required: true, Enum: zones,
		Description: "Climate zone (Northern, High Plateau, or Sahara)",
	}
}

func metricNames() []string {
	out := make([]string, len(catalog.Metrics))
	for i, m := range catalog.Metrics {
		out[i] = string(m)
	}
	return out
}

// Tools returns the entries in registration order.
func (t *Table) Tools() []Tool {
	return slices.Clone(t.tools)
}

// Names returns the tool names in registration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.tools))
	for i, tl := range t.tools {
		out[i] = tl.Name
	}
	return out
}

// Lookup returns the named tool.
func (t *Table) Lookup(name string) (Tool, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Tool{}, false
	}
	return t.tools[i], true
}

// Definitions returns every tool with a JSON-schema parameter block.
func (t *Table) Definitions() []Definition {
	out := make([]Definition, len(t.tools))
	for i, tl := range t.tools {
		out[i] = tl.Definition()
	}
	return out
}

// Definition renders the tool for clients.
func (tl Tool) Definition() Definition {
	return Definition{
		Name:        tl.Name,
		Description: tl.Description,
		Parameters:  objectSchema(tl.Params),
	}
}

func objectSchema(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		prop := map[string]any{"type": p.Type, "description": p.Description}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Type == "object" {
			sub := objectSchema(p.Properties)
			prop["properties"] = sub["properties"]
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{"type": "object", "properties": props, "required": required}
}

// Execute runs the named tool. A nil params map is treated as empty.
func (t *Table) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	tl, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]any{}
	}
	return tl.handler(ctx, params)
}
