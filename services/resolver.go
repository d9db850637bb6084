package services

import (
	"context"
	"fmt"

	"nutriengine/logger"
	"nutriengine/models"

	"go.uber.org/zap"
)

// MatchKind labels which lookup path produced a resolution. The precedence
// order is fixed and total: alias beats canonical-exact beats fallback beats
// recipe expansion; none is terminal.
type MatchKind string

const (
	MatchAlias     MatchKind = "alias"
	MatchCanonical MatchKind = "canonical"
	MatchFallback  MatchKind = "fallback"
	MatchRecipe    MatchKind = "recipe"
	MatchNone      MatchKind = "none"
)

// Resolution is the outcome of the matching chain for one input name,
// before any quantity conversion.
type Resolution struct {
	Kind          MatchKind
	FoodID        uint // 0 for fallback/recipe/none matches
	CanonicalName string
	State         string
	Per100g       models.Per100g
	Recipe        *models.Recipe
	Notes         []string
}

// Resolver runs the matching precedence chain against the nutrient store
// and the static fallback table. A store error on any single lookup is
// logged and treated as a miss for that path; it never aborts the chain.
type Resolver struct {
	store    NutrientStore
	fallback *FallbackTable
	log      *zap.Logger
}

func NewResolver(store NutrientStore, fallback *FallbackTable) *Resolver {
	return &Resolver{store: store, fallback: fallback, log: logger.L()}
}

// Resolve matches one item. normName is the pre-normalized name and aliasID
// the prefetched stage-1 alias hit for it (0 = miss); the alias stage is
// batched across the whole request by the caller.
func (r *Resolver) Resolve(ctx context.Context, rawName, normName, declaredState string, aliasID uint, trace *DebugTrace) Resolution {
	// 1) alias -> canonical food
	if aliasID != 0 {
		food, err := r.store.LookupFood(ctx, aliasID)
		if err != nil {
			r.log.Warn("alias food lookup failed, treating as miss",
				zap.String("name", rawName), zap.Uint("food_id", aliasID), zap.Error(err))
		}
		if food != nil {
			return r.fromFood(MatchAlias, food, rawName, normName, declaredState, trace)
		}
	}

	// 2) canonical exact on the original, non-normalized name
	food, err := r.store.LookupCanonicalExact(ctx, rawName)
	if err != nil {
		r.log.Warn("canonical lookup failed, treating as miss",
			zap.String("name", rawName), zap.Error(err))
	}
	if food != nil {
		return r.fromFood(MatchCanonical, food, rawName, normName, declaredState, trace)
	}

	// 3) static fallback table
	if e, ok := r.fallback.Lookup(normName, declaredState); ok {
		trace.addLookup(rawName, string(MatchFallback), 0)
		return Resolution{
			Kind:          MatchFallback,
			CanonicalName: e.CanonicalName,
			State:         e.State,
			Per100g:       e.Per100gVector(),
		}
	}

	// 4) composite recipe
	recipe, err := r.store.LookupRecipe(ctx, rawName)
	if err != nil {
		r.log.Warn("recipe lookup failed, treating as miss",
			zap.String("name", rawName), zap.Error(err))
	}
	if recipe != nil {
		trace.addLookup(rawName, string(MatchRecipe), 0)
		return Resolution{
			Kind:          MatchRecipe,
			CanonicalName: recipe.Name,
			Recipe:        recipe,
		}
	}

	// 5) unmatched
	trace.addLookup(rawName, string(MatchNone), 0)
	return Resolution{Kind: MatchNone, CanonicalName: rawName}
}

// fromFood builds a resolution from a store-backed match, applying the
// raw/cooked consistency rule: when the declared state contradicts the
// matched record's state and a dedicated state-consistent fallback entry
// exists, that entry wins. Raw and cooked legumes differ by roughly 2-3x
// per 100 g, so a state mismatch dwarfs any other matching error.
func (r *Resolver) fromFood(kind MatchKind, food *models.CanonicalFood, rawName, normName, declaredState string, trace *DebugTrace) Resolution {
	if declaredState != "" && food.State != "" && declaredState != food.State {
		if e, ok := r.fallback.LookupState(normName, declaredState); ok {
			trace.addLookup(rawName, string(MatchFallback), 0)
			return Resolution{
				Kind:          MatchFallback,
				CanonicalName: e.CanonicalName,
				State:         e.State,
				Per100g:       e.Per100gVector(),
				Notes: []string{fmt.Sprintf("state-consistent fallback %q preferred over %q (%s vs %s)",
					e.CanonicalName, food.Name, declaredState, food.State)},
			}
		}
	}

	trace.addLookup(rawName, string(kind), food.ID)
	res := Resolution{
		Kind:          kind,
		FoodID:        food.ID,
		CanonicalName: food.Name,
		State:         food.State,
		Per100g:       food.Per100g(),
	}
	if declaredState != "" && food.State != "" && declaredState != food.State {
		res.Notes = append(res.Notes, fmt.Sprintf("declared state %s differs from matched record state %s",
			declaredState, food.State))
	}
	return res
}
