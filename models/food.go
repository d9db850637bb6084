package models

import "gorm.io/gorm"

// Preparation states recognized across the food tables.
const (
	StateRaw     = "raw"
	StateCooked  = "cooked"
	StateGrilled = "grilled"
	StateFried   = "fried"
)

// CanonicalFood is the authoritative nutrient record a name resolves to.
// Nutrient columns are per 100 g of edible mass. Kcal is nullable; records
// imported without energy derive it as 4*carbs + 4*protein + 9*fat.
type CanonicalFood struct {
	gorm.Model
	Name           string `gorm:"not null;index"`
	NameNormalized string `gorm:"index"`
	State          string // raw|cooked|grilled|fried, empty when not state-tagged

	Kcal     *float64
	CarbsG   float64
	ProteinG float64
	FatG     float64
	FiberG   float64
	SodiumMg float64

	// Extra fat absorbed per 100 g when the food is fried. Zero for most
	// records.
	OilAbsorptionGPer100g float64
}

func (f *CanonicalFood) Per100g() Per100g {
	return Per100g{
		Kcal:     f.Kcal,
		CarbsG:   f.CarbsG,
		ProteinG: f.ProteinG,
		FatG:     f.FatG,
		FiberG:   f.FiberG,
		SodiumMg: f.SodiumMg,
	}
}

// FoodAlias maps a normalized alternate spelling/synonym to a canonical food.
// Many-to-one; lookups are exact on the normalized key.
type FoodAlias struct {
	gorm.Model
	AliasNormalized string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FoodID          uint   `gorm:"not null;index"`
}

// FoodDensity converts a volume quantity (ml) to mass. Used only when the
// input specifies volume and no mass.
type FoodDensity struct {
	gorm.Model
	FoodID     uint    `gorm:"uniqueIndex;not null"`
	GramsPerML float64 `gorm:"not null"`
}

// EdiblePortion stores the fraction (0,1] of purchased mass that is edible.
type EdiblePortion struct {
	gorm.Model
	FoodID uint    `gorm:"uniqueIndex;not null"`
	EPF    float64 `gorm:"not null"`
}

// CookingYield is the mass multiplier for a state transition, e.g. raw rice
// roughly 2.5x when cooked, raw meat ~0.7x when grilled.
type CookingYield struct {
	gorm.Model
	FoodID    uint   `gorm:"not null;index:idx_yield_lookup"`
	FromState string `gorm:"not null;index:idx_yield_lookup"`
	ToState   string `gorm:"not null;index:idx_yield_lookup"`
	Factor    float64
}
