package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutriengine/models"
	"nutriengine/utils"

	"github.com/agnivade/levenshtein"
	"gorm.io/gorm"
)

// NutrientStore is the read-only query contract the engine consumes. The
// engine never writes through it; timeouts and retries are the
// implementation's concern.
//
// LookupAliasBatch resolves all normalized names of a request in one round
// trip; the remaining methods are per-item because they only run for the
// subset of items each stage still owns.
type NutrientStore interface {
	LookupAliasBatch(ctx context.Context, normalized []string) (map[string]uint, error)
	LookupCanonicalExact(ctx context.Context, name string) (*models.CanonicalFood, error)
	LookupFood(ctx context.Context, id uint) (*models.CanonicalFood, error)
	LookupDensity(ctx context.Context, id uint) (float64, bool, error)
	LookupEPF(ctx context.Context, id uint) (float64, bool, error)
	LookupYield(ctx context.Context, id uint, from, to string) (float64, bool, error)
	LookupRecipe(ctx context.Context, name string) (*models.Recipe, error)
}

// GormStore implements NutrientStore on the relational food-composition
// tables.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LookupAliasBatch(ctx context.Context, normalized []string) (map[string]uint, error) {
	out := make(map[string]uint, len(normalized))
	if len(normalized) == 0 {
		return out, nil
	}
	var rows []models.FoodAlias
	err := s.db.WithContext(ctx).
		Where("alias_normalized IN ?", normalized).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("alias batch lookup: %w", err)
	}
	for _, r := range rows {
		out[r.AliasNormalized] = r.FoodID
	}
	return out, nil
}

// LookupCanonicalExact is the second, deliberately stricter matching path:
// case-insensitive exact match on the original name first, then substring.
// Among several substring candidates the one closest to the query by edit
// distance wins; prepared states break remaining ties, then the lowest id.
func (s *GormStore) LookupCanonicalExact(ctx context.Context, name string) (*models.CanonicalFood, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var exact models.CanonicalFood
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&exact).Error
	if err == nil {
		return &exact, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("canonical exact lookup: %w", err)
	}

	var candidates []models.CanonicalFood
	err = s.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		Limit(10).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("canonical substring lookup: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	bestDist := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(best.Name))
	for _, c := range candidates[1:] {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c.Name))
		switch {
		case d < bestDist:
			best, bestDist = c, d
		case d == bestDist && statePriority(c.State) < statePriority(best.State):
			best = c
		}
	}
	return &best, nil
}

// statePriority prefers prepared-state records when names tie: a bare
// "arroz" should land on the cooked record, not the raw one.
func statePriority(state string) int {
	switch state {
	case models.StateCooked:
		return 0
	case models.StateGrilled:
		return 1
	case models.StateFried:
		return 2
	case models.StateRaw:
		return 3
	default:
		return 4
	}
}

func (s *GormStore) LookupFood(ctx context.Context, id uint) (*models.CanonicalFood, error) {
	var food models.CanonicalFood
	err := s.db.WithContext(ctx).First(&food, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("food lookup id=%d: %w", id, err)
	}
	return &food, nil
}

func (s *GormStore) LookupDensity(ctx context.Context, id uint) (float64, bool, error) {
	var row models.FoodDensity
	err := s.db.WithContext(ctx).Where("food_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("density lookup id=%d: %w", id, err)
	}
	return row.GramsPerML, true, nil
}

func (s *GormStore) LookupEPF(ctx context.Context, id uint) (float64, bool, error) {
	var row models.EdiblePortion
	err := s.db.WithContext(ctx).Where("food_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("epf lookup id=%d: %w", id, err)
	}
	return row.EPF, true, nil
}

func (s *GormStore) LookupYield(ctx context.Context, id uint, from, to string) (float64, bool, error) {
	var row models.CookingYield
	err := s.db.WithContext(ctx).
		Where("food_id = ? AND from_state = ? AND to_state = ?", id, from, to).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("yield lookup id=%d %s->%s: %w", id, from, to, err)
	}
	return row.Factor, true, nil
}

func (s *GormStore) LookupRecipe(ctx context.Context, name string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Components").
		Where("name_normalized = ?", utils.NormalizeName(name)).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recipe lookup %q: %w", name, err)
	}
	return &recipe, nil
}
