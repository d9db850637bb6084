package models

import "math"

// NutrientVector is a computed nutrient amount for some mass of food.
// Field order matters for JSON output: responses must serialize totals
// identically across runs.
type NutrientVector struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
}

func (v NutrientVector) Add(o NutrientVector) NutrientVector {
	return NutrientVector{
		Kcal:     v.Kcal + o.Kcal,
		ProteinG: v.ProteinG + o.ProteinG,
		CarbsG:   v.CarbsG + o.CarbsG,
		FatG:     v.FatG + o.FatG,
		FiberG:   v.FiberG + o.FiberG,
		SodiumMg: v.SodiumMg + o.SodiumMg,
	}
}

// Rounded applies the presentation rounding used for aggregate totals:
// kcal and sodium to the nearest integer, gram fields to one decimal.
// Intermediate per-item values are never rounded, only the final sum.
func (v NutrientVector) Rounded() NutrientVector {
	return NutrientVector{
		Kcal:     math.Round(v.Kcal),
		ProteinG: round1(v.ProteinG),
		CarbsG:   round1(v.CarbsG),
		FatG:     round1(v.FatG),
		FiberG:   round1(v.FiberG),
		SodiumMg: math.Round(v.SodiumMg),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Per100g holds source nutrient values per 100 g of edible mass.
// Kcal is nullable: macro-only records derive energy as 4C + 4P + 9F.
type Per100g struct {
	Kcal     *float64
	CarbsG   float64
	ProteinG float64
	FatG     float64
	FiberG   float64
	SodiumMg float64
}

func (p Per100g) KcalOrDerived() float64 {
	if p.Kcal != nil {
		return *p.Kcal
	}
	return 4*p.CarbsG + 4*p.ProteinG + 9*p.FatG
}

// Scale returns the nutrient amounts for the given edible mass in grams,
// strictly linear: field * grams / 100.
func (p Per100g) Scale(grams float64) NutrientVector {
	factor := grams / 100.0
	return NutrientVector{
		Kcal:     p.KcalOrDerived() * factor,
		ProteinG: p.ProteinG * factor,
		CarbsG:   p.CarbsG * factor,
		FatG:     p.FatG * factor,
		FiberG:   p.FiberG * factor,
		SodiumMg: p.SodiumMg * factor,
	}
}
