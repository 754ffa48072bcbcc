package catalog

// Trait tags used across plant records.
const (
	TraitDroughtResistance        = "drought_resistance"
	TraitExtremeDroughtResistance = "extreme_drought_resistance"
	TraitHighYield                = "high_yield"
	TraitDiseaseResistance        = "disease_resistance"
	TraitColdTolerance            = "cold_tolerance"
	TraitHeatTolerance            = "heat_tolerance"
	TraitAdaptability             = "adaptability"
	TraitHighProtein              = "high_protein"
	TraitLowWaterNeeds            = "low_water_needs"
)

// TraitVocabulary is the closed set of trait tags a plant may carry.
var TraitVocabulary = []string{
	TraitDroughtResistance, TraitExtremeDroughtResistance, TraitHighYield,
	TraitDiseaseResistance, TraitColdTolerance, TraitHeatTolerance,
	TraitAdaptability, TraitHighProtein, TraitLowWaterNeeds,
}

var defaultPlants = []Plant{
	{
		ID: 1, CommonName: "Bread Wheat", ScientificName: "Triticum aestivum", Icon: "🌾",
		GenomeSize: 17000, Rainfall: "400-600mm", Temperature: "15-25°C",
		DroughtTolerance: "Moderate", Resistance: Resistance{Drought: 6, Salinity: 4, Disease: 7},
		OptimalZone: ZoneNorthern, YieldPotential: 8, GeneticDiversity: 7,
		Traits:  []string{TraitDroughtResistance, TraitHighYield, TraitDiseaseResistance},
		Aliases: []string{"wheat", "blé", "قمح", "soft wheat"},
	},
	{
		ID: 2, CommonName: "Barley", ScientificName: "Hordeum vulgare", Icon: "🌾",
		GenomeSize: 5100, Rainfall: "300-500mm", Temperature: "12-22°C",
		DroughtTolerance: "High", Resistance: Resistance{Drought: 8, Salinity: 7, Disease: 6},
		OptimalZone: ZoneHighPlateau, YieldPotential: 7, GeneticDiversity: 6,
		Traits:  []string{TraitColdTolerance, TraitDroughtResistance, TraitAdaptability},
		Aliases: []string{"orge", "شعير"},
	},
	{
		ID: 3, CommonName: "Corn", ScientificName: "Zea mays", Icon: "🌽",
		GenomeSize: 2300, Rainfall: "500-800mm", Temperature: "20-30°C",
		DroughtTolerance: "Low", Resistance: Resistance{Drought: 4, Salinity: 3, Disease: 5},
		OptimalZone: ZoneNorthern, YieldPotential: 9, GeneticDiversity: 8,
		Traits:  []string{TraitHighYield, TraitHeatTolerance},
		Aliases: []string{"maize", "maïs", "ذرة"},
	},
	{
		ID: 4, CommonName: "Sorghum", ScientificName: "Sorghum bicolor", Icon: "🌾",
		GenomeSize: 730, Rainfall: "400-600mm", Temperature: "25-35°C",
		DroughtTolerance: "Very High", Resistance: Resistance{Drought: 9, Salinity: 6, Disease: 7},
		OptimalZone: ZoneSahara, YieldPotential: 7, GeneticDiversity: 8,
		Traits:  []string{TraitExtremeDroughtResistance, TraitHeatTolerance, TraitLowWaterNeeds},
		Aliases: []string{"sorgo", "ذرة رفيعة", "بشنة"},
	},
	{
		ID: 5, CommonName: "Durum Wheat", ScientificName: "Triticum durum", Icon: "🌾",
		GenomeSize: 12000, Rainfall: "350-550mm", Temperature: "15-25°C",
		DroughtTolerance: "Moderate", Resistance: Resistance{Drought: 7, Salinity: 5, Disease: 6},
		OptimalZone: ZoneHighPlateau, YieldPotential: 7, GeneticDiversity: 6,
		Traits:  []string{TraitHighProtein, TraitDroughtResistance, TraitHeatTolerance},
		Aliases: []string{"blé dur", "قمح صلب"},
	},
	{
		ID: 6, CommonName: "Alfalfa", ScientificName: "Medicago sativa", Icon: "🌿",
		GenomeSize: 900, Rainfall: "450-750mm", Temperature: "15-28°C",
		DroughtTolerance: "Moderate", Resistance: Resistance{Drought: 7, Salinity: 6, Disease: 7},
		OptimalZone: ZoneNorthern, YieldPotential: 8, GeneticDiversity: 7,
		Traits:  []string{TraitDroughtResistance, TraitDiseaseResistance, TraitAdaptability},
		Aliases: []string{"luzerne", "فصة", "lucerne"},
	},
}

var defaultZones = []ZoneRecord{
	{
		Name: ZoneNorthern, Rainfall: "400-800mm", Temperature: "10-30°C",
		Soil: "Clay-loam, fertile", Suitability: 8.5,
		BestPlants: []string{"Bread Wheat", "Corn", "Alfalfa"},
	},
	{
		Name: ZoneHighPlateau, Rainfall: "200-400mm", Temperature: "5-35°C",
		Soil: "Sandy-loam, alkaline", Suitability: 7.2,
		BestPlants: []string{"Barley", "Durum Wheat", "Sorghum"},
	},
	{
		Name: ZoneSahara, Rainfall: "50-200mm", Temperature: "15-45°C",
		Soil: "Sandy, poor organic matter", Suitability: 4.8,
		BestPlants: []string{"Sorghum"},
	},
}
