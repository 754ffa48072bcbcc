package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/dispatch"
)

var validate = validator.New()

type handlers struct {
	catalog    *catalog.Catalog
	dispatcher *dispatch.Dispatcher
}

type queryArgs struct {
	Query string `json:"query" validate:"required"`
}

type plantArgs struct {
	PlantID int `json:"plant_id" validate:"required,min=1"`
}

type pairArgs struct {
	PlantAID int `json:"plant_a_id" validate:"required,min=1"`
	PlantBID int `json:"plant_b_id" validate:"required,min=1"`
}

type zoneArgs struct {
	Zone string `json:"zone" validate:"required"`
}

type metricArgs struct {
	Metric string `json:"metric" validate:"required"`
}

type criteriaArgs struct {
	Criteria catalog.Criteria `json:"criteria"`
}

type questionArgs struct {
	Question string `json:"question" validate:"required"`
}

// decode maps loosely typed JSON parameters onto args and validates them.
// Numbers may arrive as float64 or as strings.
func decode(params map[string]any, args any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           args,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := validate.Struct(args); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidParams, formatValidationErrors(verrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func (h *handlers) plant(id int) (catalog.Plant, error) {
	p, ok := h.catalog.PlantByID(id)
	if !ok {
		return catalog.Plant{}, fmt.Errorf("%w: id %d", catalog.ErrPlantNotFound, id)
	}
	return p, nil
}

func (h *handlers) pair(params map[string]any) (catalog.Plant, catalog.Plant, error) {
	var args pairArgs
	if err := decode(params, &args); err != nil {
		return catalog.Plant{}, catalog.Plant{}, err
	}
	a, err := h.plant(args.PlantAID)
	if err != nil {
		return catalog.Plant{}, catalog.Plant{}, err
	}
	b, err := h.plant(args.PlantBID)
	if err != nil {
		return catalog.Plant{}, catalog.Plant{}, err
	}
	return a, b, nil
}

func (h *handlers) searchPlants(_ context.Context, params map[string]any) (any, error) {
	var args queryArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	return h.catalog.Search(args.Query), nil
}

func (h *handlers) plantDetails(_ context.Context, params map[string]any) (any, error) {
	var args plantArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	return h.plant(args.PlantID)
}

// Similarity is the result of calculate_trait_similarity.
type Similarity struct {
	PlantA               string   `json:"plant_a"`
	PlantB               string   `json:"plant_b"`
	SharedTraits         []string `json:"shared_traits"`
	UniqueToA            []string `json:"unique_to_a"`
	UniqueToB            []string `json:"unique_to_b"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
}

func (h *handlers) traitSimilarity(_ context.Context, params map[string]any) (any, error) {
	a, b, err := h.pair(params)
	if err != nil {
		return nil, err
	}
	ov := catalog.TraitOverlap(a, b)
	return Similarity{
		PlantA:               a.CommonName,
		PlantB:               b.CommonName,
		SharedTraits:         ov.Shared,
		UniqueToA:            ov.OnlyA,
		UniqueToB:            ov.OnlyB,
		SimilarityPercentage: ov.Similarity,
	}, nil
}

func (h *handlers) plantsByZone(_ context.Context, params map[string]any) (any, error) {
	var args zoneArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	plants := h.catalog.PlantsInZone(args.Zone)
	if plants == nil {
		plants = []catalog.Plant{}
	}
	return plants, nil
}

func (h *handlers) predictHybridization(_ context.Context, params map[string]any) (any, error) {
	a, b, err := h.pair(params)
	if err != nil {
		return nil, err
	}
	return catalog.PredictHybridization(a, b), nil
}

func (h *handlers) compatibility(_ context.Context, params map[string]any) (any, error) {
	a, b, err := h.pair(params)
	if err != nil {
		return nil, err
	}
	return h.catalog.Compatibility(a, b), nil
}

// RankEntry is one line of rank_plants.
type RankEntry struct {
	Rank  int    `json:"rank"`
	Plant string `json:"plant"`
	Score int    `json:"score"`
}

func (h *handlers) rankPlants(_ context.Context, params map[string]any) (any, error) {
	var args metricArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	m, err := catalog.ParseMetric(args.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	ranked := h.catalog.RankBy(m)
	out := make([]RankEntry, len(ranked))
	for i, p := range ranked {
		out[i] = RankEntry{Rank: i + 1, Plant: p.CommonName, Score: m.Score(p)}
	}
	return out, nil
}

func (h *handlers) zoneStatistics(_ context.Context, params map[string]any) (any, error) {
	var args zoneArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	return h.catalog.ZoneStatistics(args.Zone), nil
}

func (h *handlers) recommendations(_ context.Context, params map[string]any) (any, error) {
	var args criteriaArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	return h.catalog.Recommend(args.Criteria), nil
}

func (h *handlers) detailedReport(_ context.Context, params map[string]any) (any, error) {
	a, b, err := h.pair(params)
	if err != nil {
		return nil, err
	}
	return catalog.DetailedReport(a, b), nil
}

func (h *handlers) answerQuestion(_ context.Context, params map[string]any) (any, error) {
	var args questionArgs
	if err := decode(params, &args); err != nil {
		return nil, err
	}
	return h.dispatcher.Answer(args.Question), nil
}
