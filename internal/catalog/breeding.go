package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Compatibility levels used by the cross-compatibility table.
const (
	CompatHigh    = "High"
	CompatGood    = "Good"
	CompatLimited = "Limited"
	CompatLow     = "Low"
	CompatNone    = "Not compatible"
)

// Compatibility is the outcome of a cross-compatibility lookup.
type Compatibility struct {
	PlantA    string `json:"plant_a"`
	PlantB    string `json:"plant_b"`
	Level     string `json:"level"`
	Note      string `json:"note"`
	FromTable bool   `json:"from_table"`
}

type pair struct{ a, b string }

var compatibilityTable = map[pair]Compatibility{
	{"Bread Wheat", "Durum Wheat"}: {
		Level: CompatHigh,
		Note:  "Same genus (Triticum). Crosses set seed readily; the pentaploid F1 is partly fertile and backcrossing restores full fertility.",
	},
	{"Bread Wheat", "Barley"}: {
		Level: CompatLow,
		Note:  "Intergeneric cross. Needs embryo rescue and chromosome doubling; untreated hybrids are sterile.",
	},
	{"Durum Wheat", "Barley"}: {
		Level: CompatLow,
		Note:  "Intergeneric cross. Feasible with embryo rescue, as in tritordeum (wild barley × durum wheat).",
	},
	{"Sorghum", "Corn"}: {
		Level: CompatNone,
		Note:  "Different genera (Sorghum × Zea). No viable hybrids; combine traits through separate programmes.",
	},
	{"Alfalfa", "Bread Wheat"}: {
		Level: CompatNone,
		Note:  "Legume × grass. Not sexually compatible; alfalfa works best as a nitrogen-fixing rotation partner.",
	},
	{"Alfalfa", "Corn"}: {
		Level: CompatNone,
		Note:  "Legume × grass. Not sexually compatible; alfalfa works best as a nitrogen-fixing rotation partner.",
	},
}

// Compatibility looks up the cross-compatibility of two plants.
// The table is keyed by ordered pairs and tried in both orders; unknown pairs fall back to a same-zone heuristic.
func (c *Catalog) Compatibility(a, b Plant) Compatibility {
	if entry, ok := compatibilityTable[pair{a.CommonName, b.CommonName}]; ok {
		entry.FromTable = true
		return withPlants(entry, a, b)
	}
	if entry, ok := compatibilityTable[pair{b.CommonName, a.CommonName}]; ok {
		entry.FromTable = true
		return withPlants(entry, a, b)
	}

	if a.CommonName == b.CommonName {
		return withPlants(Compatibility{
			Level: CompatHigh,
			Note:  "Same species. Use intraspecific crosses between lines to combine traits.",
		}, a, b)
	}
	if a.OptimalZone == b.OptimalZone {
		return withPlants(Compatibility{
			Level: CompatGood,
			Note:  fmt.Sprintf("Both are adapted to the %s zone, so environmental adaptation is shared.", a.OptimalZone),
		}, a, b)
	}
	return withPlants(Compatibility{
		Level: CompatLimited,
		Note:  fmt.Sprintf("Different optimal zones (%s: %s, %s: %s); expect adaptation trade-offs in F2.", a.CommonName, a.OptimalZone, b.CommonName, b.OptimalZone),
	}, a, b)
}

func withPlants(entry Compatibility, a, b Plant) Compatibility {
	entry.PlantA = a.CommonName
	entry.PlantB = b.CommonName
	return entry
}

// Partners returns the plants that cross best with p, best level first, at most limit entries.
func (c *Catalog) Partners(p Plant, limit int) []Compatibility {
	rank := map[string]int{CompatHigh: 0, CompatGood: 1, CompatLimited: 2, CompatLow: 3, CompatNone: 4}
	var out []Compatibility
	for _, other := range c.plants {
		if other.CommonName == p.CommonName {
			continue
		}
		cm := c.Compatibility(p, other)
		if cm.Level == CompatNone {
			continue
		}
		out = append(out, cm)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Level] < rank[out[j].Level]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Prediction levels.
const (
	LevelHigh     = "High"
	LevelModerate = "Moderate"
	LevelLow      = "Low"
)

const sameZoneBonus = 15

// Prediction is the estimated outcome of crossing two plants.
type Prediction struct {
	PlantA         string   `json:"plant_a"`
	PlantB         string   `json:"plant_b"`
	SuccessRate    int      `json:"success_rate"`
	Confidence     float64  `json:"confidence"`
	SharedTraits   []string `json:"shared_traits"`
	Compatibility  string   `json:"compatibility"`
	Recommendation string   `json:"recommendation"`
}

// PredictHybridization estimates hybridization success from trait similarity and zone match.
// The rate is clamped to [20, 95].
func PredictHybridization(a, b Plant) Prediction {
	ov := TraitOverlap(a, b)

	rate := ov.Similarity
	if a.OptimalZone == b.OptimalZone {
		rate += sameZoneBonus
	}
	rate = math.Min(95, math.Max(20, rate))

	pred := Prediction{
		PlantA:       a.CommonName,
		PlantB:       b.CommonName,
		SuccessRate:  int(math.Round(rate)),
		Confidence:   round2(0.6 + ov.Similarity/200),
		SharedTraits: ov.Shared,
	}
	switch {
	case rate >= 70:
		pred.Compatibility = LevelHigh
		pred.Recommendation = "These species show high compatibility for hybridization."
	case rate >= 50:
		pred.Compatibility = LevelModerate
		pred.Recommendation = "Moderate compatibility. Additional testing recommended."
	default:
		pred.Compatibility = LevelLow
		pred.Recommendation = "Low compatibility. Consider alternative combinations."
	}
	return pred
}

// PlantRef is a short plant reference used in summaries.
type PlantRef struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
}

// TraitCount counts how many plants in a group carry a trait.
type TraitCount struct {
	Trait string `json:"trait"`
	Count int    `json:"count"`
}

// ZoneStats summarises the plants adapted to a zone.
type ZoneStats struct {
	Zone         string       `json:"zone"`
	PlantCount   int          `json:"plant_count"`
	Plants       []PlantRef   `json:"plants"`
	CommonTraits []TraitCount `json:"common_traits"`
}

// ZoneStatistics reports plant count and the traits shared by at least two plants of the zone.
func (c *Catalog) ZoneStatistics(zone string) ZoneStats {
	plants := c.PlantsInZone(zone)

	counts := map[string]int{}
	var order []string
	for _, p := range plants {
		for _, t := range p.Traits {
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	stats := ZoneStats{
		Zone:         zone,
		PlantCount:   len(plants),
		Plants:       []PlantRef{},
		CommonTraits: []TraitCount{},
	}
	for _, p := range plants {
		stats.Plants = append(stats.Plants, PlantRef{Name: p.CommonName, ScientificName: p.ScientificName})
	}
	for _, t := range order {
		if counts[t] >= 2 {
			stats.CommonTraits = append(stats.CommonTraits, TraitCount{Trait: t, Count: counts[t]})
		}
	}
	sort.SliceStable(stats.CommonTraits, func(i, j int) bool {
		return stats.CommonTraits[i].Count > stats.CommonTraits[j].Count
	})
	return stats
}

// Criteria filters recommendations.
type Criteria struct {
	Zone        string `json:"zone" mapstructure:"zone"`
	TargetTrait string `json:"target_trait" mapstructure:"target_trait"`
}

const maxRecommendations = 5

// Recommend returns up to five plants matching the zone and a trait substring.
func (c *Catalog) Recommend(cr Criteria) []Plant {
	out := []Plant{}
	zone := Fold(strings.TrimSpace(cr.Zone))
	trait := Fold(strings.TrimSpace(cr.TargetTrait))
	for _, p := range c.plants {
		if zone != "" && Fold(string(p.OptimalZone)) != zone {
			continue
		}
		if trait != "" && !hasTraitLike(p, trait) {
			continue
		}
		out = append(out, p)
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}

func hasTraitLike(p Plant, fragment string) bool {
	for _, t := range p.Traits {
		if strings.Contains(Fold(t), fragment) {
			return true
		}
	}
	return false
}
