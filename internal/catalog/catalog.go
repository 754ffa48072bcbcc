// Package catalog holds the static plant and climate zone data served by the chatbot.
package catalog

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrPlantNotFound is returned when a plant id or name does not resolve.
var ErrPlantNotFound = errors.New("plant not found")

// Zone identifies one of the platform's climate zones.
type Zone string

const (
	ZoneNorthern    Zone = "Northern"
	ZoneHighPlateau Zone = "High Plateau"
	ZoneSahara      Zone = "Sahara"
)

// Zones lists every zone in display order.
var Zones = []Zone{ZoneNorthern, ZoneHighPlateau, ZoneSahara}

// Resistance holds the 0-10 stress resistance scores of a plant.
type Resistance struct {
	Drought  int `json:"drought"`
	Salinity int `json:"salinity"`
	Disease  int `json:"disease"`
}

// Plant is an immutable catalog record.
type Plant struct {
	ID               int        `json:"id"`
	CommonName       string     `json:"common_name"`
	ScientificName   string     `json:"scientific_name"`
	Icon             string     `json:"icon"`
	GenomeSize       int        `json:"genome_size"`
	Rainfall         string     `json:"rainfall"`
	Temperature      string     `json:"temperature"`
	DroughtTolerance string     `json:"drought_tolerance"`
	Resistance       Resistance `json:"resistance"`
	OptimalZone      Zone       `json:"zone"`
	YieldPotential   int        `json:"yield_potential"`
	GeneticDiversity int        `json:"genetic_diversity"`
	Traits           []string   `json:"traits"`
	Aliases          []string   `json:"-"`
}

// HasTrait reports whether the plant carries the given trait tag.
func (p Plant) HasTrait(tag string) bool {
	return slices.Contains(p.Traits, tag)
}

// ZoneRecord describes a climate zone.
type ZoneRecord struct {
	Name        Zone     `json:"name"`
	Rainfall    string   `json:"rainfall"`
	Temperature string   `json:"temperature"`
	Soil        string   `json:"soil"`
	Suitability float64  `json:"suitability"`
	BestPlants  []string `json:"best_plants"`
}

// Catalog is a read-only view over plants and zones. It is safe for concurrent use.
type Catalog struct {
	plants []Plant
	zones  []ZoneRecord
}

// New builds a catalog from the given records. Order is preserved and used to break ties.
func New(plants []Plant, zones []ZoneRecord) *Catalog {
	return &Catalog{
		plants: slices.Clone(plants),
		zones:  slices.Clone(zones),
	}
}

// Default returns the shipped catalog.
func Default() *Catalog {
	return New(defaultPlants, defaultZones)
}

// Plants returns all plants in catalog order.
func (c *Catalog) Plants() []Plant {
	return slices.Clone(c.plants)
}

// ZoneRecords returns all zones in catalog order.
func (c *Catalog) ZoneRecords() []ZoneRecord {
	return slices.Clone(c.zones)
}

// Len returns the number of plants.
func (c *Catalog) Len() int {
	return len(c.plants)
}

// PlantByID returns the plant with the given id.
func (c *Catalog) PlantByID(id int) (Plant, bool) {
	for _, p := range c.plants {
		if p.ID == id {
			return p, true
		}
	}
	return Plant{}, false
}

// PlantByName returns the plant whose common name equals name exactly.
func (c *Catalog) PlantByName(name string) (Plant, bool) {
	for _, p := range c.plants {
		if p.CommonName == name {
			return p, true
		}
	}
	return Plant{}, false
}

// FindPlant resolves a common name, scientific name or alias, ignoring case.
func (c *Catalog) FindPlant(nameOrAlias string) (Plant, bool) {
	q := Fold(strings.TrimSpace(nameOrAlias))
	if q == "" {
		return Plant{}, false
	}
	for _, p := range c.plants {
		if q == Fold(p.CommonName) || q == Fold(p.ScientificName) {
			return p, true
		}
	}
	for _, p := range c.plants {
		for _, alias := range p.Aliases {
			if q == Fold(alias) {
				return p, true
			}
		}
	}
	return Plant{}, false
}

// Zone returns the zone record with the given name, ignoring case.
func (c *Catalog) Zone(name string) (ZoneRecord, bool) {
	q := Fold(strings.TrimSpace(name))
	for _, z := range c.zones {
		if Fold(string(z.Name)) == q {
			return z, true
		}
	}
	return ZoneRecord{}, false
}

// PlantsInZone returns the plants whose optimal zone matches, in catalog order.
func (c *Catalog) PlantsInZone(zone string) []Plant {
	q := Fold(strings.TrimSpace(zone))
	var out []Plant
	for _, p := range c.plants {
		if Fold(string(p.OptimalZone)) == q {
			out = append(out, p)
		}
	}
	return out
}

// Search matches the query against common name, scientific name and zone.
func (c *Catalog) Search(query string) []Plant {
	q := Fold(query)
	out := []Plant{}
	for _, p := range c.plants {
		if strings.Contains(Fold(p.CommonName), q) ||
			strings.Contains(Fold(p.ScientificName), q) ||
			strings.Contains(Fold(string(p.OptimalZone)), q) {
			out = append(out, p)
		}
	}
	return out
}

// Fold lowercases and NFC-normalises s for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
