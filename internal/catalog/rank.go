package catalog

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Metric is a numeric plant attribute that plants can be ranked by.
type Metric string

const (
	MetricDrought  Metric = "drought"
	MetricSalinity Metric = "salinity"
	MetricDisease  Metric = "disease"
	MetricYield    Metric = "yield"
	MetricGenome   Metric = "genome"
)

// Metrics lists every rankable metric.
var Metrics = []Metric{MetricDrought, MetricSalinity, MetricDisease, MetricYield, MetricGenome}

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	m := Metric(Fold(s))
	if slices.Contains(Metrics, m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q (supported: drought, salinity, disease, yield, genome)", s)
}

// Score returns the value of the metric for p.
func (m Metric) Score(p Plant) int {
	switch m {
	case MetricDrought:
		return p.Resistance.Drought
	case MetricSalinity:
		return p.Resistance.Salinity
	case MetricDisease:
		return p.Resistance.Disease
	case MetricYield:
		return p.YieldPotential
	case MetricGenome:
		return p.GenomeSize
	default:
		return 0
	}
}

// RankBy returns every plant sorted by the metric, highest first.
// Equal scores keep catalog order.
func (c *Catalog) RankBy(m Metric) []Plant {
	ranked := slices.Clone(c.plants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return m.Score(ranked[i]) > m.Score(ranked[j])
	})
	return ranked
}

// Rank returns the 1-indexed position of the named plant under the metric, or 0.
func (c *Catalog) Rank(m Metric, commonName string) int {
	for i, p := range c.RankBy(m) {
		if p.CommonName == commonName {
			return i + 1
		}
	}
	return 0
}

// Best returns the top plant for the metric. The first plant in catalog order wins ties.
func (c *Catalog) Best(m Metric) (Plant, bool) {
	ranked := c.RankBy(m)
	if len(ranked) == 0 {
		return Plant{}, false
	}
	return ranked[0], true
}

// Overlap describes how two trait sets relate.
type Overlap struct {
	Shared     []string `json:"shared_traits"`
	OnlyA      []string `json:"unique_to_a"`
	OnlyB      []string `json:"unique_to_b"`
	Similarity float64  `json:"similarity"`
}

// TraitOverlap compares the trait sets of two plants.
// Similarity is |shared| / |union| * 100 rounded to two decimals, or 0 when both sets are empty.
func TraitOverlap(a, b Plant) Overlap {
	setA := toSet(a.Traits)
	setB := toSet(b.Traits)

	ov := Overlap{Shared: []string{}, OnlyA: []string{}, OnlyB: []string{}}
	union := make(map[string]struct{}, len(setA)+len(setB))
	for t := range setA {
		union[t] = struct{}{}
		if _, ok := setB[t]; ok {
			ov.Shared = append(ov.Shared, t)
		} else {
			ov.OnlyA = append(ov.OnlyA, t)
		}
	}
	for t := range setB {
		union[t] = struct{}{}
		if _, ok := setA[t]; !ok {
			ov.OnlyB = append(ov.OnlyB, t)
		}
	}
	slices.Sort(ov.Shared)
	slices.Sort(ov.OnlyA)
	slices.Sort(ov.OnlyB)

	if len(union) > 0 {
		ov.Similarity = round2(float64(len(ov.Shared)) / float64(len(union)) * 100)
	}
	return ov
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
