package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zer3az/chatbot/internal/catalog"
)

func newTestExtractor() *Extractor {
	return NewExtractor(catalog.Default())
}

func TestExtract_Plants(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single word matches both wheats", "wheat", []string{"Bread Wheat", "Durum Wheat"}},
		{"comparison keeps catalog order", "compare wheat barley", []string{"Bread Wheat", "Barley", "Durum Wheat"}},
		{"scientific name", "tell me about Zea mays", []string{"Corn"}},
		{"french alias", "parlez-moi de l'orge", []string{"Barley"}},
		{"arabic alias", "قمح", []string{"Bread Wheat"}},
		{"arabic substring double counts", "ذرة رفيعة", []string{"Corn", "Sorghum"}},
		{"uppercase", "SORGHUM", []string{"Sorghum"}},
		{"no plant", "hello there", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).Plants)
		})
	}
}

func TestExtract_ZonesAndTraits(t *testing.T) {
	e := newTestExtractor()

	in := e.Extract("which crops handle salt and dry weather in the south or the north?")
	assert.Equal(t, []catalog.Zone{catalog.ZoneNorthern, catalog.ZoneSahara}, in.Zones)
	assert.Equal(t, []Trait{TraitDrought, TraitSalinity}, in.Traits)

	in = e.Extract("rendement dans les hauts plateaux")
	assert.Equal(t, []catalog.Zone{catalog.ZoneHighPlateau}, in.Zones)
	assert.True(t, in.HasTrait(TraitYield))
	assert.False(t, in.HasTrait(TraitGenome))
}

func TestExtract_QuestionType(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		text string
		want QuestionType
	}{
		{"what is the best plant for drought?", TypeRecommendation},
		{"what is the ranking of sorghum?", TypeRanking},
		{"compare wheat with barley", TypeComparison},
		{"tell me about alfalfa please", TypeWhat},
		{"list the characteristics of corn", TypeCharacteristics},
		{"hello there my friend", TypeGeneral},
		{"sorghum", TypeWhat},
		{"corn yield", TypeWhat},
		{"drought", TypeRanking},
		{"g", TypeGeneral},
		{"can I cross wheat and barley?", TypeBreeding},
		{"تهجين القمح", TypeBreeding},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).Type)
		})
	}
}

func TestExtract_BreedingOverridesShortInput(t *testing.T) {
	in := newTestExtractor().Extract("hybrid wheat")

	assert.True(t, in.Breeding)
	assert.Equal(t, TypeBreeding, in.Type)
	assert.Equal(t, "hybrid wheat", in.Original)
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor()
	for _, text := range []string{"", "wheat", "compare wheat barley", "best for drought", "مقارنة", "g"} {
		assert.Equal(t, e.Extract(text), e.Extract(text), text)
	}
}

func TestIntent_Empty(t *testing.T) {
	e := newTestExtractor()

	assert.True(t, e.Extract("g").Empty())
	assert.False(t, e.Extract("sahara").Empty())
}
