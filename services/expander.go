package services

import (
	"context"
	"fmt"

	"nutriengine/logger"
	"nutriengine/models"

	"go.uber.org/zap"
)

// expandRecipe decomposes a composite dish into its weighted components and
// sums their scaled nutrients. When targetGrams is set every component is
// scaled by targetGrams / baseTotal before lookup, preserving
// proportionality; otherwise the recipe's natural mass is used as-is.
// Components are pre-linked by food id so each lookup is a plain nutrient
// fetch, not a recursive matching chain.
func expandRecipe(ctx context.Context, store NutrientStore, recipe *models.Recipe, targetGrams *float64, trace *DebugTrace) (gramsEffective float64, nutrients models.NutrientVector, notes []string) {
	log := logger.L()
	base := recipe.BaseTotalGrams()

	scale := 1.0
	gramsEffective = base
	if targetGrams != nil && *targetGrams > 0 && base > 0 {
		scale = *targetGrams / base
		gramsEffective = *targetGrams
	}

	notes = append(notes, fmt.Sprintf("recipe expanded: %d components, scale %.3f", len(recipe.Components), scale))
	for _, comp := range recipe.Components {
		food, err := store.LookupFood(ctx, comp.FoodID)
		if err != nil {
			log.Warn("recipe component lookup failed, skipping",
				zap.String("recipe", recipe.Name), zap.Uint("food_id", comp.FoodID), zap.Error(err))
		}
		if food == nil {
			notes = append(notes, fmt.Sprintf("component food #%d not found; skipped", comp.FoodID))
			continue
		}
		scaled := comp.Grams * scale
		trace.addConversion(recipe.Name, "recipe_component", scale, scaled)
		nutrients = nutrients.Add(food.Per100g().Scale(scaled))
	}
	return gramsEffective, nutrients, notes
}
