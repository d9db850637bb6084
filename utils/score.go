package utils

import (
	"math"

	"nutriengine/models"
)

// MealAssessment is the deterministic quality verdict for a set of aggregate
// totals: a 0-100 score plus human-readable warnings and suggestions.
type MealAssessment struct {
	Score       int
	Warnings    []string
	Suggestions []string
}

// mealRule is one row of the scoring table. Penalties are independent and
// additive; warning and suggestion are optional per rule.
type mealRule struct {
	applies    func(t models.NutrientVector) bool
	warning    string
	penalty    int
	suggestion string
}

// Thresholds follow the nutrition guidance the rules were tuned against:
// single-meal calorie band 300-900 kcal, >=5 g fiber, <=1200 mg sodium,
// and at least 0.10 g protein per kcal.
var mealRules = []mealRule{
	{
		applies: func(t models.NutrientVector) bool { return t.Kcal > 900 },
		warning: "calories elevated",
		penalty: 15,
	},
	{
		applies: func(t models.NutrientVector) bool { return t.Kcal < 300 },
		warning: "calories very low",
		penalty: 10,
	},
	{
		applies:    func(t models.NutrientVector) bool { return t.FiberG < 5 },
		warning:    "low fiber",
		penalty:    15,
		suggestion: "add vegetables or whole grains to raise fiber",
	},
	{
		applies:    func(t models.NutrientVector) bool { return t.SodiumMg > 1200 },
		warning:    "sodium elevated",
		penalty:    20,
		suggestion: "reduce salt and processed sauces",
	},
	{
		applies: func(t models.NutrientVector) bool {
			return t.ProteinG/math.Max(1, t.Kcal) < 0.10
		},
		warning: "low protein density",
		penalty: 20,
	},
	{
		applies:    func(t models.NutrientVector) bool { return t.FatG > 35 },
		suggestion: "prefer grilled or baked preparations",
	},
	{
		applies:    func(t models.NutrientVector) bool { return t.CarbsG > 120 },
		suggestion: "swap refined carbs for whole-grain alternatives",
	},
}

// ScoreMeal evaluates the rule table against aggregate totals.
// score = max(0, 100 - sum of penalties); every matching rule reports.
// Rule order is fixed so identical totals always produce byte-identical
// warning and suggestion lists.
func ScoreMeal(totals models.NutrientVector) MealAssessment {
	out := MealAssessment{
		Warnings:    []string{},
		Suggestions: []string{},
	}
	penalty := 0
	for _, r := range mealRules {
		if !r.applies(totals) {
			continue
		}
		if r.warning != "" {
			out.Warnings = append(out.Warnings, r.warning)
		}
		if r.suggestion != "" {
			out.Suggestions = append(out.Suggestions, r.suggestion)
		}
		penalty += r.penalty
	}
	out.Score = 100 - penalty
	if out.Score < 0 {
		out.Score = 0
	}
	return out
}
