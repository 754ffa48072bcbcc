package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report is a breeding analysis of a cross between two plants.
type Report struct {
	Title              string             `json:"title"`
	ExecutiveSummary   ExecutiveSummary   `json:"executive_summary"`
	ParentAnalysis     ParentAnalysis     `json:"parent_analysis"`
	TraitCompatibility TraitCompatibility `json:"trait_compatibility"`
	HybridPrediction   HybridPrediction   `json:"hybridization_prediction"`
	ExpectedF1         ExpectedF1         `json:"expected_f1_characteristics"`
	Improvements       Improvements       `json:"improvement_recommendations"`
	EnvironmentalFit   EnvironmentalFit   `json:"environmental_adaptability"`
	RiskAssessment     RiskAssessment     `json:"risk_assessment"`
	Conclusion         Conclusion         `json:"conclusion"`
}

type ExecutiveSummary struct {
	ParentSpecies       []string `json:"parent_species"`
	ScientificNames     []string `json:"scientific_names"`
	SuccessProbability  int      `json:"success_probability"`
	ConfidenceLevel     float64  `json:"confidence_level"`
	CompatibilityRating string   `json:"compatibility_rating"`
	KeyFinding          string   `json:"key_finding"`
}

type ParentProfile struct {
	Name           string   `json:"name"`
	ScientificName string   `json:"scientific_name"`
	Zone           Zone     `json:"zone"`
	Traits         []string `json:"traits"`
	Strengths      []string `json:"strengths"`
	Limitations    []string `json:"limitations"`
}

type ParentAnalysis struct {
	PlantA ParentProfile `json:"plant_a"`
	PlantB ParentProfile `json:"plant_b"`
}

type TraitCompatibility struct {
	SharedTraits         []string `json:"shared_traits"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	ComplementaryTraits  []string `json:"complementary_traits"`
	PotentialConflicts   []string `json:"potential_conflicts"`
	TraitInteractions    string   `json:"trait_interactions"`
}

type HybridPrediction struct {
	SuccessRate        int     `json:"success_rate"`
	Confidence         float64 `json:"confidence"`
	GeneticBasis       string  `json:"genetic_basis"`
	ExpectedVigor      string  `json:"expected_vigor"`
	SegregationPattern string  `json:"segregation_pattern"`
}

type ExpectedF1 struct {
	DominantTraits  []string          `json:"dominant_traits"`
	YieldPrediction string            `json:"yield_prediction"`
	QualityMetrics  map[string]string `json:"quality_metrics"`
	StressTolerance map[string]string `json:"stress_tolerance"`
}

type Improvements struct {
	ShortTerm         []string          `json:"short_term"`
	LongTerm          []string          `json:"long_term"`
	SelectionCriteria map[string]string `json:"selection_criteria"`
	BreedingTimeline  []TimelineStep    `json:"breeding_timeline"`
}

// TimelineStep is one generation milestone of a breeding programme.
type TimelineStep struct {
	Stage       string `json:"stage"`
	Description string `json:"description"`
}

type EnvironmentalFit struct {
	OptimalZones        []string `json:"optimal_zones"`
	ClimateRequirements string   `json:"climate_requirements"`
	SoilPreferences     string   `json:"soil_preferences"`
	WaterManagement     string   `json:"water_management"`
}

// Risk pairs a risk with its mitigation.
type Risk struct {
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
}

type RiskAssessment struct {
	TechnicalRisks       []Risk   `json:"technical_risks"`
	EnvironmentalRisks   []Risk   `json:"environmental_risks"`
	MarketRisks          []Risk   `json:"market_risks"`
	MitigationStrategies []string `json:"mitigation_strategies"`
}

type Conclusion struct {
	OverallRecommendation string   `json:"overall_recommendation"`
	ConfidenceLevel       string   `json:"confidence_level"`
	NextSteps             []string `json:"next_steps"`
	ExpectedTimeline      string   `json:"expected_timeline"`
	InvestmentPriority    string   `json:"investment_priority"`
}

// DetailedReport builds the full breeding analysis for a × b.
func DetailedReport(a, b Plant) Report {
	pred := PredictHybridization(a, b)
	ov := TraitOverlap(a, b)

	return Report{
		Title: fmt.Sprintf("Plant Breeding Analysis Report: %s × %s", a.CommonName, b.CommonName),
		ExecutiveSummary: ExecutiveSummary{
			ParentSpecies:       []string{a.CommonName, b.CommonName},
			ScientificNames:     []string{a.ScientificName, b.ScientificName},
			SuccessProbability:  pred.SuccessRate,
			ConfidenceLevel:     pred.Confidence,
			CompatibilityRating: pred.Compatibility,
			KeyFinding: fmt.Sprintf("The cross between %s and %s shows %s compatibility with a %d%% predicted success rate.",
				a.CommonName, b.CommonName, strings.ToLower(pred.Compatibility), pred.SuccessRate),
		},
		ParentAnalysis: ParentAnalysis{
			PlantA: profile(a),
			PlantB: profile(b),
		},
		TraitCompatibility: TraitCompatibility{
			SharedTraits:         ov.Shared,
			SimilarityPercentage: ov.Similarity,
			ComplementaryTraits:  complementaryTraits(a, b),
			PotentialConflicts:   conflicts(a, b, ov),
			TraitInteractions:    traitInteractions(ov.Similarity),
		},
		HybridPrediction: HybridPrediction{
			SuccessRate:        pred.SuccessRate,
			Confidence:         pred.Confidence,
			GeneticBasis:       geneticBasis(a, b, ov),
			ExpectedVigor:      hybridVigor(ov.Similarity),
			SegregationPattern: "Expected Mendelian inheritance in F2 generation",
		},
		ExpectedF1: ExpectedF1{
			DominantTraits:  f1Traits(a, ov),
			YieldPrediction: yieldImprovement(ov.Similarity),
			QualityMetrics: map[string]string{
				"protein_content":   "Expected stable or improved based on parent mid-range",
				"grain_quality":     "F1 typically shows intermediate to superior quality",
				"nutritional_value": "Combination of parent nutritional profiles",
			},
			StressTolerance: stressTolerance(a, b),
		},
		Improvements: Improvements{
			ShortTerm: shortTerm(pred),
			LongTerm: []string{
				"Develop F2 population of 500+ plants for selection",
				"Implement marker-assisted selection for target traits",
				"Conduct multi-location trials across target zones",
				"Establish pure line selection program by F4-F5",
				"Initiate variety registration process after F6 stabilization",
			},
			SelectionCriteria: map[string]string{
				"primary_traits":        "Yield, disease resistance, climate adaptation",
				"secondary_traits":      "Quality metrics, stress tolerance, maturity period",
				"elimination_criteria":  "Severe disease susceptibility, poor vigor, off-types",
				"advancement_threshold": "Top 10% based on multi-trait index",
			},
			BreedingTimeline: timeline(pred.SuccessRate),
		},
		EnvironmentalFit: EnvironmentalFit{
			OptimalZones:        optimalZones(a, b),
			ClimateRequirements: climateNeeds(a, b),
			SoilPreferences:     "Well-drained loamy soil, pH 6.0-7.5, moderate to high fertility",
			WaterManagement:     waterNeeds(a, b),
		},
		RiskAssessment: RiskAssessment{
			TechnicalRisks: technicalRisks(pred.SuccessRate),
			EnvironmentalRisks: []Risk{
				{Risk: "Climate variability", Mitigation: "Multi-location testing and adaptive trait selection"},
				{Risk: "Pest and disease pressure", Mitigation: "Integrate resistance screening in early generations"},
			},
			MarketRisks: []Risk{
				{Risk: "Market acceptance of new variety", Mitigation: "Farmer participatory trials and early stakeholder engagement"},
				{Risk: "Competing varieties", Mitigation: "Focus on unique trait combinations and performance advantages"},
			},
			MitigationStrategies: []string{
				"Implement rigorous quality control throughout breeding process",
				"Maintain genetic diversity in breeding populations",
				"Use molecular markers for trait validation",
				"Conduct regular performance evaluations",
				"Establish backup crosses for genetic security",
			},
		},
		Conclusion: Conclusion{
			OverallRecommendation: pred.Recommendation,
			ConfidenceLevel:       pred.Compatibility,
			NextSteps:             nextSteps(pred.SuccessRate),
			ExpectedTimeline:      expectedTimeline(pred.SuccessRate),
			InvestmentPriority:    investmentPriority(pred.SuccessRate),
		},
	}
}

// TraitLabel turns a trait tag such as "drought_resistance" into "Drought Resistance".
func TraitLabel(tag string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}

func profile(p Plant) ParentProfile {
	return ParentProfile{
		Name:           p.CommonName,
		ScientificName: p.ScientificName,
		Zone:           p.OptimalZone,
		Traits:         p.Traits,
		Strengths:      strengths(p),
		Limitations:    limitations(p),
	}
}

func strengths(p Plant) []string {
	var out []string
	if p.HasTrait(TraitDroughtResistance) {
		out = append(out, "Excellent drought tolerance for water-scarce conditions")
	}
	if p.HasTrait(TraitHighYield) {
		out = append(out, "Superior yield potential for commercial production")
	}
	if p.HasTrait(TraitDiseaseResistance) {
		out = append(out, "Strong disease resistance reduces chemical inputs")
	}
	if p.HasTrait(TraitColdTolerance) {
		out = append(out, "Cold hardiness extends growing season")
	}
	if p.HasTrait(TraitHeatTolerance) {
		out = append(out, "Heat tolerance suitable for warm climates")
	}
	if len(out) == 0 {
		out = append(out, fmt.Sprintf("Well-adapted to %s climate zone", p.OptimalZone))
	}
	return out
}

func limitations(p Plant) []string {
	var out []string
	if !p.HasTrait(TraitDroughtResistance) {
		out = append(out, "May require consistent irrigation")
	}
	if !p.HasTrait(TraitDiseaseResistance) {
		out = append(out, "Susceptibility to common diseases may require monitoring")
	}
	if p.OptimalZone == ZoneNorthern {
		out = append(out, "Limited adaptability to extreme heat conditions")
	}
	if len(out) == 0 {
		out = append(out, "Zone-specific adaptation may limit geographic range")
	}
	return out
}

func complementaryTraits(a, b Plant) []string {
	var out []string
	if a.HasTrait(TraitHighYield) && b.HasTrait(TraitDiseaseResistance) {
		out = append(out, "High yield from parent A + disease resistance from parent B = robust production")
	}
	if a.HasTrait(TraitDroughtResistance) && b.HasTrait(TraitHeatTolerance) {
		out = append(out, "Combined stress tolerance for challenging environments")
	}
	if a.HasTrait(TraitColdTolerance) && b.HasTrait(TraitAdaptability) {
		out = append(out, "Extended geographic range potential")
	}
	if len(out) == 0 {
		out = append(out, "Shared traits may reinforce beneficial characteristics in offspring")
	}
	return out
}

func conflicts(a, b Plant, ov Overlap) []string {
	var out []string
	if a.OptimalZone != b.OptimalZone {
		out = append(out, fmt.Sprintf("Different climate adaptations (%s vs %s) may require careful F2 selection", a.OptimalZone, b.OptimalZone))
	}
	if len(ov.Shared) == 0 {
		out = append(out, "Limited trait overlap may result in variable F1 expression")
	}
	if len(out) == 0 {
		out = append(out, "No major conflicts detected - favorable for hybridization")
	}
	return out
}

func traitInteractions(similarity float64) string {
	switch {
	case similarity > 60:
		return "High genetic similarity suggests stable trait inheritance with predictable outcomes."
	case similarity > 30:
		return "Moderate similarity allows for trait recombination and potential heterosis effects."
	default:
		return "Low similarity may lead to wide segregation in F2; careful selection required."
	}
}

func geneticBasis(a, b Plant, ov Overlap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The prediction is based on %d shared genetic traits. ", len(ov.Shared))
	if a.OptimalZone == b.OptimalZone {
		sb.WriteString("Both parents are adapted to the same climate zone, indicating compatible environmental gene networks. ")
	}
	if len(ov.Shared) >= 2 {
		sb.WriteString("Multiple shared traits suggest recent common ancestry and high crossability.")
	} else {
		sb.WriteString("Limited trait overlap suggests genetic distance; F1 may show hybrid vigor but F2 segregation expected.")
	}
	return sb.String()
}

func hybridVigor(similarity float64) string {
	switch {
	case similarity >= 30 && similarity <= 70:
		return "High - Optimal genetic distance for heterosis expression"
	case similarity > 70:
		return "Moderate - Close relatives may show less heterosis"
	default:
		return "Variable - Wide genetic distance may produce unpredictable results"
	}
}

func f1Traits(a Plant, ov Overlap) []string {
	var out []string
	for _, t := range ov.Shared {
		out = append(out, TraitLabel(t)+" (inherited from both parents)")
	}
	for i, t := range ov.OnlyA {
		if i == 2 {
			break
		}
		out = append(out, fmt.Sprintf("%s (likely from %s)", TraitLabel(t), a.CommonName))
	}
	if len(out) == 0 {
		return []string{"Variable trait expression expected"}
	}
	return out
}

func yieldImprovement(similarity float64) string {
	switch {
	case similarity > 60:
		return "Expected 10-20% yield improvement through hybrid vigor"
	case similarity > 30:
		return "Expected 15-30% yield improvement with optimal heterosis"
	default:
		return "Variable yield response; selection required in F2"
	}
}

func stressTolerance(a, b Plant) map[string]string {
	has := func(tag string) bool { return a.HasTrait(tag) || b.HasTrait(tag) }
	level := func(tag, otherwise string) string {
		if has(tag) {
			return "High"
		}
		return otherwise
	}
	return map[string]string{
		"drought": level(TraitDroughtResistance, "Moderate"),
		"heat":    level(TraitHeatTolerance, "Moderate"),
		"cold":    level(TraitColdTolerance, "Moderate"),
		"disease": level(TraitDiseaseResistance, "Requires monitoring"),
	}
}

func shortTerm(pred Prediction) []string {
	focus := "shared traits"
	if n := len(pred.SharedTraits); n > 0 {
		focus = strings.Join(pred.SharedTraits[:min(n, 2)], ", ")
	}
	out := []string{
		"Conduct initial test crosses with 20-50 plants",
		"Monitor F1 for hybrid vigor and " + focus,
		"Document phenotypic observations throughout growth cycle",
		"Assess F1 uniformity and performance metrics",
	}
	if pred.SuccessRate < 60 {
		out = append(out, "Consider multiple crossing attempts to ensure success")
	}
	return out
}

func releaseYear(successRate int) int {
	if successRate > 70 {
		return 6
	}
	return 7
}

func timeline(successRate int) []TimelineStep {
	return []TimelineStep{
		{Stage: "F1_generation", Description: "Year 1 - Initial cross and F1 production"},
		{Stage: "F2_generation", Description: "Year 2 - Population development and initial selection"},
		{Stage: "F3_F4", Description: "Years 3-4 - Line advancement and trait fixation"},
		{Stage: "F5_F6", Description: "Years 5-6 - Yield trials and variety testing"},
		{Stage: "release", Description: fmt.Sprintf("Year %d - Variety release (subject to trials)", releaseYear(successRate))},
	}
}

func optimalZones(a, b Plant) []string {
	if a.OptimalZone == b.OptimalZone {
		return []string{string(a.OptimalZone), "Adjacent transitional zones"}
	}
	return []string{string(a.OptimalZone), string(b.OptimalZone), "Intermediate climate zones"}
}

func climateNeeds(a, b Plant) string {
	switch {
	case a.OptimalZone == ZoneNorthern || b.OptimalZone == ZoneNorthern:
		return "Cool to moderate temperatures (15-25°C), adequate rainfall"
	case a.OptimalZone == ZoneSahara || b.OptimalZone == ZoneSahara:
		return "High heat tolerance (25-40°C), minimal rainfall, drought-adapted"
	default:
		return "Moderate temperatures (18-28°C), seasonal rainfall patterns"
	}
}

func waterNeeds(a, b Plant) string {
	if a.HasTrait(TraitDroughtResistance) || b.HasTrait(TraitDroughtResistance) {
		return "Moderate water needs; 300-500mm annual rainfall or supplemental irrigation"
	}
	return "Regular irrigation required; 500-800mm annual rainfall equivalent"
}

func technicalRisks(successRate int) []Risk {
	var out []Risk
	if successRate < 60 {
		out = append(out, Risk{
			Risk:       "Lower success probability",
			Mitigation: "Increase crossing attempts, use experienced technicians",
		})
	}
	return append(out, Risk{
		Risk:       "F2 segregation variability",
		Mitigation: "Large F2 population (500+ plants) for adequate selection",
	})
}

func nextSteps(successRate int) []string {
	out := []string{
		"Review parent materials and confirm trait characterization",
		"Plan crossing schedule and resource allocation",
		"Prepare field plots and experimental design",
	}
	if successRate > 70 {
		return append(out, "Proceed with confidence to large-scale crossing program")
	}
	return append(out, "Consider pilot crosses before full-scale program")
}

func expectedTimeline(successRate int) string {
	years := releaseYear(successRate)
	return fmt.Sprintf("%d-%d years from initial cross to variety release", years, years+2)
}

func investmentPriority(successRate int) string {
	switch {
	case successRate >= 80:
		return "High Priority - Excellent success probability justifies immediate investment"
	case successRate >= 60:
		return "Medium-High Priority - Good success probability with managed risk"
	case successRate >= 40:
		return "Medium Priority - Consider as part of diversified breeding portfolio"
	default:
		return "Low Priority - High risk; recommend alternative crosses"
	}
}
