package intent

import "github.com/zer3az/chatbot/internal/catalog"

// Trait is a trait category a question can mention.
type Trait string

const (
	TraitDrought     Trait = "drought"
	TraitSalinity    Trait = "salinity"
	TraitDisease     Trait = "disease"
	TraitYield       Trait = "yield"
	TraitGenome      Trait = "genome"
	TraitRainfall    Trait = "rainfall"
	TraitTemperature Trait = "temperature"
)

// QuestionType is the coarse classification of a question.
type QuestionType string

const (
	TypeRecommendation  QuestionType = "recommendation"
	TypeRanking         QuestionType = "ranking"
	TypeComparison      QuestionType = "comparison"
	TypeWhat            QuestionType = "what"
	TypeCharacteristics QuestionType = "characteristics"
	TypeBreeding        QuestionType = "breeding"
	TypeGeneral         QuestionType = "general"
)

type keywordSet[T any] struct {
	value    T
	keywords []string
}

// Keyword tables cover English, French and Arabic (including Algerian usage).
// Order matters: it is the order matches are reported in.

var zoneKeywords = []keywordSet[catalog.Zone]{
	{catalog.ZoneNorthern, []string{"northern", "north", "coastal", "nord", "côtier", "شمال"}},
	{catalog.ZoneHighPlateau, []string{"plateau", "high plateau", "hauts plateaux", "الهضاب"}},
	{catalog.ZoneSahara, []string{"sahara", "southern", "south", "desert", "sud", "صحراء", "جنوب"}},
}

var traitKeywords = []keywordSet[Trait]{
	{TraitDrought, []string{"drought", "dry", "sécheresse", "sec", "جفاف"}},
	{TraitSalinity, []string{"salinity", "salt", "salinité", "sel", "ملوحة"}},
	{TraitDisease, []string{"disease", "resistance", "maladie", "résistance", "مرض", "مقاومة"}},
	{TraitYield, []string{"yield", "production", "rendement", "إنتاج"}},
	{TraitGenome, []string{"genome", "génome", "جينوم"}},
	{TraitRainfall, []string{"rain", "rainfall", "pluie", "précipitation", "أمطار"}},
	{TraitTemperature, []string{"temperature", "temp", "température", "حرارة"}},
}

// typeKeywords is evaluated in priority order; the first hit wins.
var typeKeywords = []keywordSet[QuestionType]{
	{TypeRecommendation, []string{"best", "recommend", "meilleur", "recommand", "أفضل", "نصح"}},
	{TypeRanking, []string{"rank", "ranking", "position", "classement", "ترتيب"}},
	{TypeComparison, []string{"compare", "vs", "versus", "comparer", "مقارنة"}},
	{TypeWhat, []string{"what", "tell", "about", "info", "describe", "qu'est", "quoi", "ماذا", "ما هو"}},
	{TypeCharacteristics, []string{"characteristic", "trait", "property", "caractéristique", "propriété", "خصائص"}},
}

var breedingKeywords = []string{
	"breed", "cross", "hybrid", "genetic", "inherit", "heredity", "pollinat",
	"croisement", "hybridation", "génétique", "hérédité",
	"تهجين", "وراثة", "تزاوج", "تلقيح", "جينات",
}
