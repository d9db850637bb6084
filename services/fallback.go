package services

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"nutriengine/models"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var embeddedFallback []byte

// FallbackEntry is one row of the static fallback table: a normalized key
// mapped to per-100g values, optionally tagged with a preparation state.
type FallbackEntry struct {
	Key           string          `yaml:"key"`
	CanonicalName string          `yaml:"canonical_name"`
	State         string          `yaml:"state"`
	Per100g       fallbackPer100g `yaml:"per_100g"`
}

type fallbackPer100g struct {
	Kcal     *float64 `yaml:"kcal"`
	CarbsG   float64  `yaml:"carbs_g"`
	ProteinG float64  `yaml:"protein_g"`
	FatG     float64  `yaml:"fat_g"`
	FiberG   float64  `yaml:"fiber_g"`
	SodiumMg float64  `yaml:"sodium_mg"`
}

func (e *FallbackEntry) Per100gVector() models.Per100g {
	return models.Per100g{
		Kcal:     e.Per100g.Kcal,
		CarbsG:   e.Per100g.CarbsG,
		ProteinG: e.Per100g.ProteinG,
		FatG:     e.Per100g.FatG,
		FiberG:   e.Per100g.FiberG,
		SodiumMg: e.Per100g.SodiumMg,
	}
}

// FallbackTable is the lowest-trust matching source. It exists because some
// common dish names are volatile in the live store; matches against it are
// flagged match_kind=fallback. The table ships as versioned data so
// corrections do not require a rebuild.
type FallbackTable struct {
	byKey map[string][]*FallbackEntry
}

type fallbackFile struct {
	Version int             `yaml:"version"`
	Entries []FallbackEntry `yaml:"entries"`
}

// LoadFallbackTable parses a fallback table from YAML bytes.
func LoadFallbackTable(raw []byte) (*FallbackTable, error) {
	var f fallbackFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fallback table: %w", err)
	}
	t := &FallbackTable{byKey: make(map[string][]*FallbackEntry, len(f.Entries))}
	for i := range f.Entries {
		e := &f.Entries[i]
		if e.Key == "" {
			return nil, fmt.Errorf("fallback entry %d: empty key", i)
		}
		t.byKey[e.Key] = append(t.byKey[e.Key], e)
	}
	return t, nil
}

// LoadFallbackTableFile reads the table from path, or the embedded default
// when path is empty.
func LoadFallbackTableFile(path string) (*FallbackTable, error) {
	raw := embeddedFallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fallback table %s: %w", path, err)
		}
		raw = b
	}
	return LoadFallbackTable(raw)
}

var (
	defaultFallbackOnce sync.Once
	defaultFallback     *FallbackTable
)

// DefaultFallbackTable returns the table configured via FALLBACK_TABLE_PATH,
// falling back to the embedded default. Parsed once per process.
func DefaultFallbackTable() *FallbackTable {
	defaultFallbackOnce.Do(func() {
		t, err := LoadFallbackTableFile(os.Getenv("FALLBACK_TABLE_PATH"))
		if err != nil {
			// The embedded default always parses; only an unreadable
			// override file lands here.
			panic("fallback table: " + err.Error())
		}
		defaultFallback = t
	})
	return defaultFallback
}

// Lookup returns the entry for a normalized key. When state is non-empty a
// state-consistent entry is preferred; otherwise the first entry for the key
// wins (file order, so the table's default state leads).
func (t *FallbackTable) Lookup(key, state string) (*FallbackEntry, bool) {
	entries := t.byKey[key]
	if len(entries) == 0 {
		return nil, false
	}
	if state != "" {
		for _, e := range entries {
			if e.State == state {
				return e, true
			}
		}
	}
	return entries[0], true
}

// LookupState returns only an exact-state entry for the key. Used by the
// raw/cooked consistency override: a state-mismatched primary match is
// replaced only when a dedicated state-consistent entry exists.
func (t *FallbackTable) LookupState(key, state string) (*FallbackEntry, bool) {
	for _, e := range t.byKey[key] {
		if e.State == state {
			return e, true
		}
	}
	return nil, false
}
