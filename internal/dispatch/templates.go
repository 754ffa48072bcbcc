package dispatch

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/intent"
)

var printer = message.NewPrinter(language.English)

// mbp formats a genome size as "17,000 Mbp".
func mbp(n int) string {
	return printer.Sprintf("%d Mbp", n)
}

const shortHelpText = "I can help with:\n" +
	"• Just say plant name: 'wheat', 'sorghum'\n" +
	"• Or trait: 'drought', 'yield'\n" +
	"• Or ask: 'ranking of sorghum', 'compare wheat barley'\n" +
	"\nPlants: Wheat, Barley, Corn, Sorghum, Alfalfa"

const genericCharacteristicsText = "Available plant characteristics:\n" +
	"• Genome size, Climate needs, Drought/Salinity/Disease resistance\n" +
	"• Yield potential, Optimal zone\n\n" +
	"Ask: 'What are the characteristics of [plant name]?'"

const helpText = "I can help with:\n" +
	"• Plant info: 'What is wheat?'\n" +
	"• Rankings: 'What is the ranking of sorghum?'\n" +
	"• Characteristics: 'What are the characteristics?'\n" +
	"• Comparisons: 'Compare wheat with barley'\n" +
	"• Best plants: 'Which is better for drought?'\n" +
	"\nAvailable: Bread Wheat, Barley, Corn, Sorghum, Durum Wheat, Alfalfa"

func (d *Dispatcher) renderShort(q query) string {
	in := q.intent
	switch {
	case len(in.Plants) > 0 && len(in.Traits) == 0:
		p, ok := q.firstPlant(d.catalog)
		if !ok {
			return ""
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "**%s %s**\n", p.CommonName, p.Icon)
		fmt.Fprintf(&sb, "• Drought: %d/10\n", p.Resistance.Drought)
		fmt.Fprintf(&sb, "• Yield: %d/10\n", p.YieldPotential)
		fmt.Fprintf(&sb, "• Zone: %s\n", p.OptimalZone)
		fmt.Fprintf(&sb, "• Genome: %s\n", mbp(p.GenomeSize))
		return sb.String()

	case len(in.Traits) > 0 && len(in.Plants) == 0:
		switch in.Traits[0] {
		case intent.TraitDrought:
			return d.numberedRanking("**Drought Resistance:**\n", catalog.MetricDrought)
		case intent.TraitYield:
			return d.numberedRanking("**Yield Potential:**\n", catalog.MetricYield)
		}
		return ""

	case in.Empty() && !in.Breeding:
		return shortHelpText
	}
	return ""
}

func (d *Dispatcher) numberedRanking(title string, m catalog.Metric) string {
	var sb strings.Builder
	sb.WriteString(title)
	for i, p := range d.catalog.RankBy(m) {
		fmt.Fprintf(&sb, "%d. %s: %d/10\n", i+1, p.CommonName, m.Score(p))
	}
	return sb.String()
}

func (d *Dispatcher) bulletRanking(title string, m catalog.Metric) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, p := range d.catalog.RankBy(m) {
		fmt.Fprintf(&sb, "- %s: %d/10\n", p.CommonName, m.Score(p))
	}
	return sb.String()
}

func (d *Dispatcher) renderComparison(q query) string {
	a, okA := d.catalog.PlantByName(q.intent.Plants[0])
	b, okB := d.catalog.PlantByName(q.intent.Plants[1])
	if !okA || !okB {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s vs %s**\n\n", a.CommonName, b.CommonName)
	for _, p := range []catalog.Plant{a, b} {
		fmt.Fprintf(&sb, "%s **%s:**\n", p.Icon, p.CommonName)
		fmt.Fprintf(&sb, "  • Drought: %d/10\n", p.Resistance.Drought)
		fmt.Fprintf(&sb, "  • Yield: %d/10\n", p.YieldPotential)
		fmt.Fprintf(&sb, "  • Zone: %s\n\n", p.OptimalZone)
	}

	switch da, db := a.Resistance.Drought, b.Resistance.Drought; {
	case da > db:
		fmt.Fprintf(&sb, "✅ %s is better for drought\n", a.CommonName)
	case db > da:
		fmt.Fprintf(&sb, "✅ %s is better for drought\n", b.CommonName)
	default:
		fmt.Fprintf(&sb, "⚖️ %s and %s are equally drought resistant (%d/10)\n", a.CommonName, b.CommonName, da)
	}
	switch ya, yb := a.YieldPotential, b.YieldPotential; {
	case ya > yb:
		fmt.Fprintf(&sb, "✅ %s has higher yield\n", a.CommonName)
	case yb > ya:
		fmt.Fprintf(&sb, "✅ %s has higher yield\n", b.CommonName)
	default:
		fmt.Fprintf(&sb, "⚖️ %s and %s have equal yield (%d/10)\n", a.CommonName, b.CommonName, ya)
	}
	return sb.String()
}

const maxSameZonePartners = 3

func (d *Dispatcher) renderBetter(q query) string {
	if p, ok := q.firstPlant(d.catalog); ok {
		var sb strings.Builder
		fmt.Fprintf(&sb, "**For crossing/breeding with %s:**\n\n", p.CommonName)
		sb.WriteString("Best compatibility partners would be plants from similar zones:\n")
		n := 0
		for _, other := range d.catalog.PlantsInZone(string(p.OptimalZone)) {
			if other.CommonName == p.CommonName {
				continue
			}
			fmt.Fprintf(&sb, "• %s (same %s zone, yield: %d/10)\n", other.CommonName, other.OptimalZone, other.YieldPotential)
			if n++; n == maxSameZonePartners {
				break
			}
		}
		if n == 0 {
			fmt.Fprintf(&sb, "• No other plant in the catalog shares the %s zone\n", p.OptimalZone)
		}
		return sb.String()
	}

	switch {
	case q.has("drought"):
		return d.best("✅ **Best for drought:** %s (%d/10)\n", catalog.MetricDrought)
	case q.has("yield"):
		return d.best("✅ **Best for yield:** %s (%d/10)\n", catalog.MetricYield)
	}
	return ""
}

func (d *Dispatcher) best(format string, m catalog.Metric) string {
	p, ok := d.catalog.Best(m)
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, p.CommonName, m.Score(p))
}

func (d *Dispatcher) renderCharacteristics(q query) string {
	p, ok := q.firstPlant(d.catalog)
	if !ok {
		return genericCharacteristicsText
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s Characteristics:**\n", p.CommonName)
	fmt.Fprintf(&sb, "• Genome: %s\n", mbp(p.GenomeSize))
	fmt.Fprintf(&sb, "• Climate: %s, %s\n", p.Temperature, p.Rainfall)
	fmt.Fprintf(&sb, "• Drought Resistance: %d/10\n", p.Resistance.Drought)
	fmt.Fprintf(&sb, "• Salinity Resistance: %d/10\n", p.Resistance.Salinity)
	fmt.Fprintf(&sb, "• Disease Resistance: %d/10\n", p.Resistance.Disease)
	fmt.Fprintf(&sb, "• Yield Potential: %d/10\n", p.YieldPotential)
	fmt.Fprintf(&sb, "• Optimal Zone: %s\n", p.OptimalZone)
	return sb.String()
}

func (d *Dispatcher) renderPlantRanking(q query) string {
	p, ok := q.firstPlant(d.catalog)
	if !ok {
		return ""
	}
	total := d.catalog.Len()
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s Rankings:**\n", p.CommonName)
	fmt.Fprintf(&sb, "• Drought: #%d/%d (%d/10)\n", d.catalog.Rank(catalog.MetricDrought, p.CommonName), total, p.Resistance.Drought)
	fmt.Fprintf(&sb, "• Yield: #%d/%d (%d/10)\n", d.catalog.Rank(catalog.MetricYield, p.CommonName), total, p.YieldPotential)
	fmt.Fprintf(&sb, "• Salinity: %d/10\n", p.Resistance.Salinity)
	fmt.Fprintf(&sb, "• Disease: %d/10\n", p.Resistance.Disease)
	return sb.String()
}

func (d *Dispatcher) renderPlant(q query) string {
	p, ok := q.firstPlant(d.catalog)
	if !ok {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s (%s) %s**\n", p.CommonName, p.ScientificName, p.Icon)
	fmt.Fprintf(&sb, "- Genome: %s\n", mbp(p.GenomeSize))
	fmt.Fprintf(&sb, "- Climate: %s, %s rainfall\n", p.Temperature, p.Rainfall)
	fmt.Fprintf(&sb, "- Drought: %d/10 (%s)\n", p.Resistance.Drought, p.DroughtTolerance)
	fmt.Fprintf(&sb, "- Salinity: %d/10\n", p.Resistance.Salinity)
	fmt.Fprintf(&sb, "- Yield: %d/10\n", p.YieldPotential)
	fmt.Fprintf(&sb, "- Zone: %s\n", p.OptimalZone)
	return sb.String()
}

func (d *Dispatcher) renderZone(q query) string {
	z, ok := d.catalog.Zone(string(q.intent.Zones[0]))
	if !ok {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s Zone**\n", z.Name)
	fmt.Fprintf(&sb, "- Rainfall: %s\n", z.Rainfall)
	fmt.Fprintf(&sb, "- Temperature: %s\n", z.Temperature)
	fmt.Fprintf(&sb, "- Best Plants: %s\n", strings.Join(z.BestPlants, ", "))
	fmt.Fprintf(&sb, "- Suitability: %v/10\n", z.Suitability)
	return sb.String()
}

func (d *Dispatcher) renderTraitRanking(q query) string {
	switch {
	case q.intent.HasTrait(intent.TraitDrought):
		return d.numberedRanking("**Drought Resistance Rankings:**\n", catalog.MetricDrought)
	case q.intent.HasTrait(intent.TraitYield):
		return d.numberedRanking("**Yield Rankings:**\n", catalog.MetricYield)
	}
	return ""
}

func (d *Dispatcher) renderRecommendation(q query) string {
	if q.has("drought") {
		return d.best("**Best for Drought:** %s (%d/10)\n", catalog.MetricDrought)
	}
	if len(q.intent.Zones) > 0 {
		z, ok := d.catalog.Zone(string(q.intent.Zones[0]))
		if ok {
			return fmt.Sprintf("**Recommended for %s:** %s\n", z.Name, strings.Join(z.BestPlants, ", "))
		}
	}
	return ""
}

func (d *Dispatcher) renderTraitListing(q query) string {
	switch q.intent.Traits[0] {
	case intent.TraitDrought:
		return d.bulletRanking("**Drought Resistance:**\n", catalog.MetricDrought)
	case intent.TraitYield:
		return d.bulletRanking("**Yield Potential:**\n", catalog.MetricYield)
	}
	return ""
}

func (d *Dispatcher) renderHelp(query) string {
	return helpText
}
