package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nutriengine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
foods:
  - name: Arroz branco cozido
    state: cozido
    per_100g: { kcal: 130, carbs_g: 28.0, protein_g: 2.7, fat_g: 0.3, fiber_g: 0.4, sodium_mg: 1 }
    aliases: [arroz, arroz branco]
  - name: Arroz branco cru
    state: cru
    per_100g: { kcal: 358, carbs_g: 78.8, protein_g: 7.2, fat_g: 0.3, fiber_g: 1.6, sodium_mg: 1 }
    density_g_ml: 0.85
    epf: 0.95
    yields:
      - { from: cru, to: cozido, factor: 2.5 }
  - name: Molho bolonhesa
    state: cozido
    per_100g: { kcal: 120, carbs_g: 6, protein_g: 8, fat_g: 7, fiber_g: 1, sodium_mg: 350 }

recipes:
  - name: Arroz com molho
    components:
      - { food: Arroz branco cozido, grams: 200 }
      - { food: Molho bolonhesa, grams: 100 }
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedFromFile(t *testing.T) {
	db := openTestDB(t)
	path := writeSeedFile(t, seedYAML)

	require.NoError(t, SeedFromFile(db, path))

	var foods, aliases, yields int64
	db.Model(&models.CanonicalFood{}).Count(&foods)
	db.Model(&models.FoodAlias{}).Count(&aliases)
	db.Model(&models.CookingYield{}).Count(&yields)
	assert.Equal(t, int64(3), foods)
	assert.Equal(t, int64(2), aliases)
	assert.Equal(t, int64(1), yields)

	store := NewGormStore(db)
	hits, err := store.LookupAliasBatch(context.Background(), []string{"arroz"})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	food, err := store.LookupFood(context.Background(), hits["arroz"])
	require.NoError(t, err)
	require.NotNil(t, food)
	assert.Equal(t, models.StateCooked, food.State)
	require.NotNil(t, food.Kcal)
	assert.Equal(t, 130.0, *food.Kcal)

	recipe, err := store.LookupRecipe(context.Background(), "arroz com molho")
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, 300.0, recipe.BaseTotalGrams())
}

func TestSeedFromFileIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	path := writeSeedFile(t, seedYAML)

	require.NoError(t, SeedFromFile(db, path))
	require.NoError(t, SeedFromFile(db, path))

	var foods, aliases, densities, components int64
	db.Model(&models.CanonicalFood{}).Count(&foods)
	db.Model(&models.FoodAlias{}).Count(&aliases)
	db.Model(&models.FoodDensity{}).Count(&densities)
	db.Model(&models.RecipeComponent{}).Count(&components)
	assert.Equal(t, int64(3), foods)
	assert.Equal(t, int64(2), aliases)
	assert.Equal(t, int64(1), densities)
	assert.Equal(t, int64(2), components)
}

func TestSeedFromFileUnknownRecipeFoodFails(t *testing.T) {
	db := openTestDB(t)
	path := writeSeedFile(t, `
recipes:
  - name: Prato misterioso
    components:
      - { food: ingrediente fantasma, grams: 100 }
`)

	err := SeedFromFile(db, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown food")
}

func TestSeedFromFileMissingFile(t *testing.T) {
	db := openTestDB(t)
	err := SeedFromFile(db, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
