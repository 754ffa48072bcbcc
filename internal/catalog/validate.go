package catalog

import (
	"errors"
	"fmt"
	"slices"
)

const (
	minScore = 0
	maxScore = 10
)

// Validate reports every record that breaks the catalog invariants. Scores must
// stay within 0-10 and traits must come from TraitVocabulary. Zone references
// must resolve both ways.
func (c *Catalog) Validate() error {
	var errs []error
	ids := map[int]bool{}

	for _, p := range c.plants {
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("plant %d: duplicate id", p.ID))
		}
		ids[p.ID] = true

		scores := []struct {
			name  string
			value int
		}{
			{"drought", p.Resistance.Drought},
			{"salinity", p.Resistance.Salinity},
			{"disease", p.Resistance.Disease},
			{"yield", p.YieldPotential},
			{"genetic diversity", p.GeneticDiversity},
		}
		for _, s := range scores {
			if s.value < minScore || s.value > maxScore {
				errs = append(errs, fmt.Errorf("plant %d: %s score %d outside %d-%d", p.ID, s.name, s.value, minScore, maxScore))
			}
		}

		for _, t := range p.Traits {
			if !slices.Contains(TraitVocabulary, t) {
				errs = append(errs, fmt.Errorf("plant %d: unknown trait %q", p.ID, t))
			}
		}

		if !c.hasZone(p.OptimalZone) {
			errs = append(errs, fmt.Errorf("plant %d: unknown zone %q", p.ID, p.OptimalZone))
		}
	}

	for _, z := range c.zones {
		for _, name := range z.BestPlants {
			if _, ok := c.PlantByName(name); !ok {
				errs = append(errs, fmt.Errorf("zone %s: best plant %q not in catalog", z.Name, name))
			}
		}
	}

	return errors.Join(errs...)
}

func (c *Catalog) hasZone(name Zone) bool {
	for _, z := range c.zones {
		if z.Name == name {
			return true
		}
	}
	return false
}
