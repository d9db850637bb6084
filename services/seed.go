package services

import (
	"fmt"
	"os"

	"nutriengine/models"
	"nutriengine/utils"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed file shapes. Foods carry their aliases and factor tables inline;
// recipe components reference foods by name so the file stays hand-editable.
type seedFile struct {
	Foods   []seedFood   `yaml:"foods"`
	Recipes []seedRecipe `yaml:"recipes"`
}

type seedFood struct {
	Name          string          `yaml:"name"`
	State         string          `yaml:"state"`
	Per100g       fallbackPer100g `yaml:"per_100g"`
	Aliases       []string        `yaml:"aliases"`
	DensityGML    *float64        `yaml:"density_g_ml"`
	EPF           *float64        `yaml:"epf"`
	OilAbsorption float64         `yaml:"oil_absorption_g_per_100g"`
	Yields        []seedYield     `yaml:"yields"`
}

type seedYield struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Factor float64 `yaml:"factor"`
}

type seedRecipe struct {
	Name       string `yaml:"name"`
	Components []struct {
		Food  string  `yaml:"food"`
		Grams float64 `yaml:"grams"`
	} `yaml:"components"`
}

// SeedFromFile loads canonical foods, aliases, factor tables and recipes
// from a YAML file into the store. Ops tooling only: the engine itself
// never writes. Foods are upserted by normalized name + state so re-running
// a seed is idempotent.
func SeedFromFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	foodIDs := make(map[string]uint, len(f.Foods))
	for _, sf := range f.Foods {
		if sf.Name == "" {
			return fmt.Errorf("seed food with empty name")
		}
		norm := utils.NormalizeName(sf.Name)
		food := models.CanonicalFood{
			Name:                  sf.Name,
			NameNormalized:        norm,
			State:                 utils.NormalizeState(sf.State),
			Kcal:                  sf.Per100g.Kcal,
			CarbsG:                sf.Per100g.CarbsG,
			ProteinG:              sf.Per100g.ProteinG,
			FatG:                  sf.Per100g.FatG,
			FiberG:                sf.Per100g.FiberG,
			SodiumMg:              sf.Per100g.SodiumMg,
			OilAbsorptionGPer100g: sf.OilAbsorption,
		}

		var existing models.CanonicalFood
		err := db.Where("name_normalized = ? AND state = ?", norm, food.State).First(&existing).Error
		switch {
		case err == nil:
			food.ID = existing.ID
			food.CreatedAt = existing.CreatedAt
			if err := db.Save(&food).Error; err != nil {
				return fmt.Errorf("update food %q: %w", sf.Name, err)
			}
		case err == gorm.ErrRecordNotFound:
			if err := db.Create(&food).Error; err != nil {
				return fmt.Errorf("create food %q: %w", sf.Name, err)
			}
		default:
			return fmt.Errorf("query food %q: %w", sf.Name, err)
		}
		foodIDs[norm] = food.ID

		for _, alias := range sf.Aliases {
			row := models.FoodAlias{AliasNormalized: utils.NormalizeName(alias), FoodID: food.ID}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "alias_normalized"}},
				DoUpdates: clause.AssignmentColumns([]string{"food_id"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert alias %q: %w", alias, err)
			}
		}
		if sf.DensityGML != nil {
			row := models.FoodDensity{FoodID: food.ID, GramsPerML: *sf.DensityGML}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "food_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"grams_per_ml"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert density for %q: %w", sf.Name, err)
			}
		}
		if sf.EPF != nil {
			row := models.EdiblePortion{FoodID: food.ID, EPF: *sf.EPF}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "food_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"epf"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert epf for %q: %w", sf.Name, err)
			}
		}
		for _, y := range sf.Yields {
			var yrow models.CookingYield
			err := db.Where("food_id = ? AND from_state = ? AND to_state = ?",
				food.ID, utils.NormalizeState(y.From), utils.NormalizeState(y.To)).First(&yrow).Error
			if err == gorm.ErrRecordNotFound {
				yrow = models.CookingYield{
					FoodID:    food.ID,
					FromState: utils.NormalizeState(y.From),
					ToState:   utils.NormalizeState(y.To),
				}
			} else if err != nil {
				return fmt.Errorf("query yield for %q: %w", sf.Name, err)
			}
			yrow.Factor = y.Factor
			if err := db.Save(&yrow).Error; err != nil {
				return fmt.Errorf("upsert yield for %q: %w", sf.Name, err)
			}
		}
	}

	for _, sr := range f.Recipes {
		norm := utils.NormalizeName(sr.Name)
		var recipe models.Recipe
		err := db.Where("name_normalized = ?", norm).First(&recipe).Error
		if err == gorm.ErrRecordNotFound {
			recipe = models.Recipe{Name: sr.Name, NameNormalized: norm}
			if err := db.Create(&recipe).Error; err != nil {
				return fmt.Errorf("create recipe %q: %w", sr.Name, err)
			}
		} else if err != nil {
			return fmt.Errorf("query recipe %q: %w", sr.Name, err)
		}

		// Components are replaced wholesale; partial edits to a composite
		// dish are not meaningful.
		if err := db.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeComponent{}).Error; err != nil {
			return fmt.Errorf("clear components for %q: %w", sr.Name, err)
		}
		for _, c := range sr.Components {
			foodID, ok := foodIDs[utils.NormalizeName(c.Food)]
			if !ok {
				var food models.CanonicalFood
				if err := db.Where("name_normalized = ?", utils.NormalizeName(c.Food)).First(&food).Error; err != nil {
					return fmt.Errorf("recipe %q references unknown food %q", sr.Name, c.Food)
				}
				foodID = food.ID
			}
			comp := models.RecipeComponent{RecipeID: recipe.ID, FoodID: foodID, Grams: c.Grams}
			if err := db.Create(&comp).Error; err != nil {
				return fmt.Errorf("create component for %q: %w", sr.Name, err)
			}
		}
	}
	return nil
}
