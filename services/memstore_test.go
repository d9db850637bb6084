package services

import (
	"context"
	"sort"
	"strings"

	"nutriengine/models"
)

// memStore is an in-memory NutrientStore for engine tests. Error fields let
// individual lookups be forced to fail.
type memStore struct {
	foods     map[uint]*models.CanonicalFood
	aliases   map[string]uint
	densities map[uint]float64
	epfs      map[uint]float64
	yields    map[yieldKey]float64
	recipes   map[string]*models.Recipe

	aliasBatchErr error
	foodErr       error
	canonicalErr  error
}

type yieldKey struct {
	id       uint
	from, to string
}

func newMemStore() *memStore {
	return &memStore{
		foods:     map[uint]*models.CanonicalFood{},
		aliases:   map[string]uint{},
		densities: map[uint]float64{},
		epfs:      map[uint]float64{},
		yields:    map[yieldKey]float64{},
		recipes:   map[string]*models.Recipe{},
	}
}

func (m *memStore) addFood(id uint, name, state string, kcal *float64, carbs, protein, fat, fiber, sodium float64) *models.CanonicalFood {
	f := &models.CanonicalFood{
		Name:     name,
		State:    state,
		Kcal:     kcal,
		CarbsG:   carbs,
		ProteinG: protein,
		FatG:     fat,
		FiberG:   fiber,
		SodiumMg: sodium,
	}
	f.ID = id
	m.foods[id] = f
	return f
}

func (m *memStore) LookupAliasBatch(_ context.Context, normalized []string) (map[string]uint, error) {
	if m.aliasBatchErr != nil {
		return nil, m.aliasBatchErr
	}
	out := map[string]uint{}
	for _, n := range normalized {
		if id, ok := m.aliases[n]; ok {
			out[n] = id
		}
	}
	return out, nil
}

func (m *memStore) LookupCanonicalExact(_ context.Context, name string) (*models.CanonicalFood, error) {
	if m.canonicalErr != nil {
		return nil, m.canonicalErr
	}
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return nil, nil
	}
	ids := make([]uint, 0, len(m.foods))
	for id := range m.foods {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if strings.ToLower(m.foods[id].Name) == lowered {
			return m.foods[id], nil
		}
	}
	for _, id := range ids {
		if strings.Contains(strings.ToLower(m.foods[id].Name), lowered) {
			return m.foods[id], nil
		}
	}
	return nil, nil
}

func (m *memStore) LookupFood(_ context.Context, id uint) (*models.CanonicalFood, error) {
	if m.foodErr != nil {
		return nil, m.foodErr
	}
	return m.foods[id], nil
}

func (m *memStore) LookupDensity(_ context.Context, id uint) (float64, bool, error) {
	d, ok := m.densities[id]
	return d, ok, nil
}

func (m *memStore) LookupEPF(_ context.Context, id uint) (float64, bool, error) {
	e, ok := m.epfs[id]
	return e, ok, nil
}

func (m *memStore) LookupYield(_ context.Context, id uint, from, to string) (float64, bool, error) {
	f, ok := m.yields[yieldKey{id: id, from: from, to: to}]
	return f, ok, nil
}

func (m *memStore) LookupRecipe(_ context.Context, name string) (*models.Recipe, error) {
	r, ok := m.recipes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, nil
	}
	return r, nil
}

func emptyFallback() *FallbackTable {
	t, err := LoadFallbackTable([]byte("version: 1\nentries: []\n"))
	if err != nil {
		panic(err)
	}
	return t
}

func f64(v float64) *float64 { return &v }
