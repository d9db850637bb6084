package services

import (
	"context"
	"fmt"

	"nutriengine/logger"

	"go.uber.org/zap"
)

const defaultPortionGrams = 100

// effectiveGrams turns a resolved item's declared quantity into an effective
// edible mass. Baseline first: grams as given, else ml * density (default
// 1.0 g/ml), else the 100 g default so per-100g values act as the unscaled
// result. The yield factor for a declared state transition and the edible
// portion factor then apply as multipliers; each is a no-op when its table
// has no entry. Factor lookups need a store-backed food id, so fallback
// matches only get the baseline.
func effectiveGrams(ctx context.Context, store NutrientStore, in FoodItemInput, res Resolution, trace *DebugTrace) (float64, []string) {
	log := logger.L()
	var notes []string
	var grams float64

	switch in.Kind {
	case ByNameAndMass:
		grams = in.Grams
	case ByNameAndVolume:
		density := 1.0
		if res.FoodID != 0 {
			d, ok, err := store.LookupDensity(ctx, res.FoodID)
			if err != nil {
				log.Warn("density lookup failed, using default 1.0 g/ml",
					zap.String("name", in.Name), zap.Error(err))
			} else if ok {
				density = d
			}
		}
		grams = in.ML * density
		trace.addConversion(in.Name, "density", density, grams)
		notes = append(notes, fmt.Sprintf("%.0f ml converted at %.2f g/ml", in.ML, density))
	default:
		grams = defaultPortionGrams
		trace.addConversion(in.Name, "default_100g", 1, grams)
		notes = append(notes, "no quantity given; defaulted to 100 g")
	}

	if in.State != "" && res.State != "" && in.State != res.State && res.FoodID != 0 {
		factor, ok, err := store.LookupYield(ctx, res.FoodID, res.State, in.State)
		if err != nil {
			log.Warn("yield lookup failed, skipping state conversion",
				zap.String("name", in.Name), zap.Error(err))
		} else if ok && factor > 0 {
			grams *= factor
			trace.addConversion(in.Name, "yield", factor, grams)
			notes = append(notes, fmt.Sprintf("yield %.2f applied (%s -> %s)", factor, res.State, in.State))
		}
	}

	if res.FoodID != 0 {
		epf, ok, err := store.LookupEPF(ctx, res.FoodID)
		if err != nil {
			log.Warn("epf lookup failed, assuming fully edible",
				zap.String("name", in.Name), zap.Error(err))
		} else if ok && epf > 0 {
			grams *= epf
			trace.addConversion(in.Name, "epf", epf, grams)
			if epf != 1.0 {
				notes = append(notes, fmt.Sprintf("edible portion factor %.2f applied", epf))
			}
		}
	}

	return grams, notes
}
