package models

import "gorm.io/gorm"

// Recipe is a named composite dish whose natural total mass is the sum of
// its component grams. Components are pre-linked to canonical foods by id,
// so expansion does a plain nutrient lookup instead of re-running the
// alias/fallback chain.
type Recipe struct {
	gorm.Model
	Name           string `gorm:"not null"`
	NameNormalized string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Components     []RecipeComponent
}

type RecipeComponent struct {
	gorm.Model
	RecipeID uint    `gorm:"not null;index"`
	FoodID   uint    `gorm:"not null"`
	Grams    float64 `gorm:"not null"`
}

// BaseTotalGrams is the recipe's natural total mass.
func (r *Recipe) BaseTotalGrams() float64 {
	var total float64
	for _, c := range r.Components {
		total += c.Grams
	}
	return total
}
