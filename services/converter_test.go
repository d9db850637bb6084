package services

import (
	"context"
	"testing"

	"nutriengine/models"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveGramsMassPassesThrough(t *testing.T) {
	grams, _ := effectiveGrams(context.Background(), newMemStore(),
		FoodItemInput{Name: "arroz", Kind: ByNameAndMass, Grams: 200},
		Resolution{Kind: MatchFallback}, nil)
	assert.Equal(t, 200.0, grams)
}

// Scenario: 200 ml with no density entry defaults to 1.0 g/ml.
func TestEffectiveGramsVolumeDefaultDensity(t *testing.T) {
	store := newMemStore()
	store.addFood(1, "Suco de laranja", "", f64(45), 10.4, 0.7, 0.2, 0.1, 1)

	grams, notes := effectiveGrams(context.Background(), store,
		FoodItemInput{Name: "suco", Kind: ByNameAndVolume, ML: 200},
		Resolution{Kind: MatchAlias, FoodID: 1}, nil)

	assert.Equal(t, 200.0, grams)
	assert.NotEmpty(t, notes)
}

func TestEffectiveGramsVolumeWithDensity(t *testing.T) {
	store := newMemStore()
	store.addFood(1, "Azeite de oliva", "", nil, 0, 0, 100, 0, 0)
	store.densities[1] = 0.92

	grams, _ := effectiveGrams(context.Background(), store,
		FoodItemInput{Name: "azeite", Kind: ByNameAndVolume, ML: 100},
		Resolution{Kind: MatchAlias, FoodID: 1}, nil)

	assert.InDelta(t, 92.0, grams, 1e-9)
}

func TestEffectiveGramsDefaultsTo100(t *testing.T) {
	grams, notes := effectiveGrams(context.Background(), newMemStore(),
		FoodItemInput{Name: "banana", Kind: ByName},
		Resolution{Kind: MatchFallback}, nil)

	assert.Equal(t, 100.0, grams)
	assert.Contains(t, notes[0], "defaulted to 100 g")
}

func TestEffectiveGramsYieldThenEPF(t *testing.T) {
	store := newMemStore()
	store.addFood(1, "Arroz branco cru", models.StateRaw, f64(358), 78.8, 7.2, 0.3, 1.6, 1)
	store.yields[yieldKey{id: 1, from: models.StateRaw, to: models.StateCooked}] = 2.5
	store.epfs[1] = 0.9

	grams, notes := effectiveGrams(context.Background(), store,
		FoodItemInput{Name: "arroz", Kind: ByNameAndMass, Grams: 100, State: models.StateCooked},
		Resolution{Kind: MatchAlias, FoodID: 1, State: models.StateRaw}, nil)

	// 100 g * 2.5 yield * 0.9 edible portion
	assert.InDelta(t, 225.0, grams, 1e-9)
	assert.Len(t, notes, 2)
}

func TestEffectiveGramsNoYieldWhenStatesAgree(t *testing.T) {
	store := newMemStore()
	store.addFood(1, "Arroz branco cozido", models.StateCooked, f64(130), 28, 2.7, 0.3, 0.4, 1)
	store.yields[yieldKey{id: 1, from: models.StateRaw, to: models.StateCooked}] = 2.5

	grams, _ := effectiveGrams(context.Background(), store,
		FoodItemInput{Name: "arroz", Kind: ByNameAndMass, Grams: 100, State: models.StateCooked},
		Resolution{Kind: MatchAlias, FoodID: 1, State: models.StateCooked}, nil)

	assert.Equal(t, 100.0, grams)
}

func TestEffectiveGramsTraceRecordsConversions(t *testing.T) {
	store := newMemStore()
	store.addFood(1, "Leite integral", "", f64(61), 4.7, 3.2, 3.3, 0, 40)
	store.densities[1] = 1.03

	trace := &DebugTrace{}
	effectiveGrams(context.Background(), store,
		FoodItemInput{Name: "leite", Kind: ByNameAndVolume, ML: 250},
		Resolution{Kind: MatchAlias, FoodID: 1}, trace)

	assert.Len(t, trace.Conversions, 1)
	assert.Equal(t, "density", trace.Conversions[0].Kind)
	assert.InDelta(t, 1.03, trace.Conversions[0].Factor, 1e-9)
}
