package dispatch

import (
	"fmt"
	"strings"

	"github.com/zer3az/chatbot/internal/catalog"
)

const maxBreedingPartners = 3

var (
	definitionPhrases  = []string{"what is", "what's", "define", "definition", "meaning", "qu'est", "c'est quoi", "ما هو", "ما هي", "ماهو"}
	crossWords         = []string{"cross", "breed", "hybrid", "croise", "croisement", "تهجين", "تزاوج"}
	inheritanceWords   = []string{"inherit", "heredity", "gene", "génétique", "hérédité", "dominant", "recessive", "وراثة", "جينات"}
	breedingMethodWord = []string{"method", "technique", "how to", "how do", "how can", "comment", "طريقة", "كيف"}
)

const hybridizationDefinition = "**Plant hybridization** is the crossing of two genetically different parents to combine their traits in one offspring.\n\n" +
	"• The first generation (F1) often shows hybrid vigor (heterosis)\n" +
	"• From the F2 onward traits segregate, and breeders select stable lines\n" +
	"• Parents are chosen for complementary traits, for example drought resistance with high yield\n\n" +
	"Ask: 'Can I cross Bread Wheat with Durum Wheat?'"

const inheritanceText = "**Trait inheritance in crop breeding:**\n" +
	"• Dominant traits show in the F1 when one parent carries them\n" +
	"• Recessive traits reappear in about one F2 plant in four (Mendelian 3:1)\n" +
	"• Yield and drought resistance are quantitative: many genes, gradual gains under selection\n" +
	"• Bread Wheat is hexaploid and Durum Wheat tetraploid, so single genes have a buffered effect\n"

const breedingMethodsText = "**Common breeding methods:**\n" +
	"1. Pedigree selection: cross two parents, then select individual lines from the F2 onward\n" +
	"2. Backcrossing: recover an elite parent while keeping one donor trait\n" +
	"3. Bulk breeding: advance whole populations under local stress and select late\n" +
	"4. Marker-assisted selection: screen seedlings for DNA markers linked to target traits\n" +
	"5. Hybrid seed production: cross inbred lines every season (Corn, Sorghum)\n"

const breedingTipsText = "**Breeding tips:**\n" +
	"• Combine complementary parents: one strong in drought resistance, one in yield\n" +
	"• Parents from the same zone share environmental adaptation\n" +
	"• Crosses within a genus (Bread Wheat × Durum Wheat) succeed far more often than intergeneric ones\n" +
	"• Plan six to eight years from the first cross to variety release\n\n" +
	"Ask: 'Can I cross wheat and barley?' or 'breeding tips for the Sahara'"

// renderBreeding answers genetics and hybridization questions. Its sub-rules are
// tried in order and the generic tips always answer.
func (d *Dispatcher) renderBreeding(q query) string {
	plants := q.intent.Plants
	switch {
	case len(plants) == 0 && q.has(definitionPhrases...):
		return hybridizationDefinition
	case len(plants) >= 2:
		return d.renderCrossCompatibility(plants[0], plants[1])
	case len(plants) == 1 && q.has(crossWords...):
		return d.renderPartners(plants[0])
	case q.has(inheritanceWords...):
		return inheritanceText
	case q.has(breedingMethodWord...):
		return breedingMethodsText
	case len(q.intent.Zones) > 0:
		return d.renderZoneBreedingTips(q.intent.Zones[0])
	}
	return breedingTipsText
}

func (d *Dispatcher) renderCrossCompatibility(nameA, nameB string) string {
	a, okA := d.catalog.PlantByName(nameA)
	b, okB := d.catalog.PlantByName(nameB)
	if !okA || !okB {
		return ""
	}
	cm := d.catalog.Compatibility(a, b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Crossing %s × %s**\n\n", a.CommonName, b.CommonName)
	fmt.Fprintf(&sb, "• Compatibility: %s\n", cm.Level)
	fmt.Fprintf(&sb, "• %s\n", cm.Note)
	if cm.Level != catalog.CompatNone {
		pred := catalog.PredictHybridization(a, b)
		fmt.Fprintf(&sb, "• Predicted success: %d%% (%s)\n", pred.SuccessRate, pred.Compatibility)
		if len(pred.SharedTraits) > 0 {
			labels := make([]string, len(pred.SharedTraits))
			for i, t := range pred.SharedTraits {
				labels[i] = catalog.TraitLabel(t)
			}
			fmt.Fprintf(&sb, "• Shared traits: %s\n", strings.Join(labels, ", "))
		}
	}
	return sb.String()
}

func (d *Dispatcher) renderPartners(name string) string {
	p, ok := d.catalog.PlantByName(name)
	if !ok {
		return ""
	}
	partners := d.catalog.Partners(p, maxBreedingPartners)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Best crossing partners for %s:**\n", p.CommonName)
	if len(partners) == 0 {
		sb.WriteString("• No sexually compatible partner in the catalog\n")
	}
	for _, cm := range partners {
		fmt.Fprintf(&sb, "• %s: %s\n", cm.PlantB, cm.Level)
	}
	return sb.String()
}

func (d *Dispatcher) renderZoneBreedingTips(zone catalog.Zone) string {
	z, ok := d.catalog.Zone(string(zone))
	if !ok {
		return ""
	}
	stats := d.catalog.ZoneStatistics(string(zone))

	names := make([]string, len(stats.Plants))
	for i, p := range stats.Plants {
		names[i] = p.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Breeding tips for the %s zone:**\n", z.Name)
	fmt.Fprintf(&sb, "• Adapted parents: %s\n", strings.Join(names, ", "))
	for _, tc := range stats.CommonTraits {
		fmt.Fprintf(&sb, "• Shared by %d local plants: %s\n", tc.Count, catalog.TraitLabel(tc.Trait))
	}
	fmt.Fprintf(&sb, "• Select under local conditions: %s rainfall, %s\n", z.Rainfall, z.Temperature)
	fmt.Fprintf(&sb, "• Soil: %s\n", z.Soil)
	return sb.String()
}
