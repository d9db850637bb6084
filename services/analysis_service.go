package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"nutriengine/logger"
	"nutriengine/models"
	"nutriengine/utils"

	"go.uber.org/zap"
)

// QuantityKind tags how an input item's portion was specified. The union
// shape of the wire format ("items" may hold bare strings or objects) is
// resolved into this once at the boundary; the pipeline never re-checks
// field presence.
type QuantityKind int

const (
	ByName QuantityKind = iota
	ByNameAndMass
	ByNameAndVolume
)

// FoodItemInput is one loosely-specified food item after boundary parsing.
// Grams is valid only for ByNameAndMass, ML only for ByNameAndVolume.
// State is normalized to raw|cooked|grilled|fried or empty.
type FoodItemInput struct {
	Name  string
	Kind  QuantityKind
	Grams float64
	ML    float64
	State string
}

// UnmarshalJSON accepts either a bare string or an object form. Malformed
// quantities (zero, negative, NaN) are treated as absent, which later falls
// back to the 100 g default.
func (it *FoodItemInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*it = FoodItemInput{Name: s, Kind: ByName}
		return nil
	}

	var raw struct {
		Name     string   `json:"name"`
		Grams    *float64 `json:"grams"`
		Quantity *float64 `json:"quantity"`
		ML       *float64 `json:"ml"`
		VolumeML *float64 `json:"volume_ml"`
		State    string   `json:"state"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("item must be a string or an object: %w", err)
	}

	*it = FoodItemInput{Name: raw.Name, Kind: ByName, State: utils.NormalizeState(raw.State)}

	grams := firstValid(raw.Grams, raw.Quantity)
	ml := firstValid(raw.ML, raw.VolumeML)
	switch {
	case grams > 0:
		it.Kind = ByNameAndMass
		it.Grams = grams
	case ml > 0:
		it.Kind = ByNameAndVolume
		it.ML = ml
	}
	return nil
}

func firstValid(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0 {
			return *v
		}
	}
	return 0
}

// AnalyzeRequest is the wire request: a list of items plus the debug flag
// that gates the trace block in the response.
type AnalyzeRequest struct {
	Items []FoodItemInput `json:"items"`
	Debug bool            `json:"debug"`
}

// ItemDetail is one resolved item in the response, in input order.
// Nutrient fields are unrounded; rounding happens only on totals.
type ItemDetail struct {
	InputName      string   `json:"input_name"`
	CanonicalName  string   `json:"canonical_name"`
	MatchKind      string   `json:"match_kind"`
	GramsEffective float64  `json:"grams_effective"`
	Kcal           float64  `json:"kcal"`
	ProteinG       float64  `json:"protein_g"`
	FatG           float64  `json:"fat_g"`
	CarbsG         float64  `json:"carbs_g"`
	FiberG         float64  `json:"fiber_g"`
	SodiumMg       float64  `json:"sodium_mg"`
	Notes          []string `json:"notes"`
}

type UnmatchedItem struct {
	InputName string `json:"input_name"`
	Reason    string `json:"reason"`
}

// AnalyzeResponse is the full engine result. Success is false iff at least
// one item went unmatched; a fatal request-level failure is reported via an
// error return instead, never as partial results.
type AnalyzeResponse struct {
	Success       bool                  `json:"success"`
	ItemsDetailed []ItemDetail          `json:"items_detailed"`
	Totals        models.NutrientVector `json:"totals"`
	SummaryText   string                `json:"summary_text"`
	MealScore     int                   `json:"meal_score"`
	Warnings      []string              `json:"warnings"`
	Suggestions   []string              `json:"suggestions"`
	Unmatched     []UnmatchedItem       `json:"unmatched"`
	Debug         *DebugTrace           `json:"debug,omitempty"`
}

// AnalysisService runs the resolution pipeline: normalize -> resolve ->
// convert -> scale -> aggregate -> score -> compose. Items are processed
// sequentially so the debug trace stays deterministic; only the alias stage
// is batched into a single store round trip.
type AnalysisService struct {
	store    NutrientStore
	resolver *Resolver
	log      *zap.Logger
}

func NewAnalysisService(store NutrientStore, fallback *FallbackTable) *AnalysisService {
	return &AnalysisService{
		store:    store,
		resolver: NewResolver(store, fallback),
		log:      logger.L(),
	}
}

// Analyze processes one request. It returns an error only for structural
// failures (missing items array, store down for the whole batch); per-item
// problems degrade to unmatched entries and never abort the rest.
func (s *AnalysisService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if req == nil || req.Items == nil {
		return nil, errors.New("items is required")
	}

	var trace *DebugTrace
	if req.Debug {
		trace = &DebugTrace{
			Normalization: []NormalizationStep{},
			Lookups:       []LookupStep{},
			Conversions:   []ConversionStep{},
		}
	}

	// Stage 1 is batched: one alias round trip for every item. An error
	// here means the store is unreachable for the whole batch, which is
	// the one store failure treated as fatal.
	normNames := make([]string, len(req.Items))
	for i, it := range req.Items {
		normNames[i] = utils.NormalizeName(it.Name)
		trace.addNormalization(it.Name, normNames[i])
	}
	aliasHits, err := s.store.LookupAliasBatch(ctx, normNames)
	if err != nil {
		return nil, fmt.Errorf("nutrient store unavailable: %w", err)
	}

	resp := &AnalyzeResponse{
		ItemsDetailed: make([]ItemDetail, 0, len(req.Items)),
		Unmatched:     []UnmatchedItem{},
		Warnings:      []string{},
		Suggestions:   []string{},
		Debug:         trace,
	}

	var acc models.NutrientVector
	for i, it := range req.Items {
		detail := s.analyzeItem(ctx, it, normNames[i], aliasHits[normNames[i]], trace)
		if detail.MatchKind == string(MatchNone) {
			resp.Unmatched = append(resp.Unmatched, UnmatchedItem{InputName: it.Name, Reason: "not_found"})
		} else {
			acc = acc.Add(models.NutrientVector{
				Kcal:     detail.Kcal,
				ProteinG: detail.ProteinG,
				CarbsG:   detail.CarbsG,
				FatG:     detail.FatG,
				FiberG:   detail.FiberG,
				SodiumMg: detail.SodiumMg,
			})
		}
		resp.ItemsDetailed = append(resp.ItemsDetailed, detail)
	}

	resp.Totals = acc.Rounded()
	resp.Success = len(resp.Unmatched) == 0
	resp.SummaryText = summaryText(resp.ItemsDetailed)

	if len(req.Items) == 0 {
		// An empty meal is not a bad meal; the rule table would flag it
		// for low calories, fiber and protein.
		resp.MealScore = 100
		return resp, nil
	}

	assessment := utils.ScoreMeal(resp.Totals)
	resp.MealScore = assessment.Score
	resp.Warnings = assessment.Warnings
	resp.Suggestions = assessment.Suggestions
	return resp, nil
}

// analyzeItem runs stages 2+ for a single item: finish resolution, convert
// the quantity, scale nutrients, and assemble the per-item detail.
func (s *AnalysisService) analyzeItem(ctx context.Context, it FoodItemInput, normName string, aliasID uint, trace *DebugTrace) ItemDetail {
	res := s.resolver.Resolve(ctx, it.Name, normName, it.State, aliasID, trace)

	detail := ItemDetail{
		InputName:     it.Name,
		CanonicalName: res.CanonicalName,
		MatchKind:     string(res.Kind),
		Notes:         append([]string{}, res.Notes...),
	}

	switch res.Kind {
	case MatchNone:
		return detail

	case MatchRecipe:
		target := recipeTargetGrams(it)
		grams, nutrients, notes := expandRecipe(ctx, s.store, res.Recipe, target, trace)
		detail.GramsEffective = grams
		detail.Notes = append(detail.Notes, notes...)
		fillNutrients(&detail, nutrients)
		return detail

	default:
		grams, notes := effectiveGrams(ctx, s.store, it, res, trace)
		detail.GramsEffective = grams
		detail.Notes = append(detail.Notes, notes...)

		nutrients := res.Per100g.Scale(grams)
		if oil := s.oilAbsorption(ctx, it, res); oil > 0 {
			// Fried preparation absorbs cooking oil: extra fat and its
			// energy on top of the table values.
			nutrients.FatG += oil * grams / 100
			nutrients.Kcal += 9 * oil * grams / 100
			detail.Notes = append(detail.Notes, fmt.Sprintf("oil absorption %.1f g/100g applied", oil))
		}
		fillNutrients(&detail, nutrients)
		return detail
	}
}

// oilAbsorption returns the per-100g oil absorption factor when the item is
// effectively fried (declared or matched as such), else 0.
func (s *AnalysisService) oilAbsorption(ctx context.Context, it FoodItemInput, res Resolution) float64 {
	if it.State != models.StateFried && res.State != models.StateFried {
		return 0
	}
	if res.FoodID == 0 {
		return 0
	}
	food, err := s.store.LookupFood(ctx, res.FoodID)
	if err != nil || food == nil {
		return 0
	}
	return food.OilAbsorptionGPer100g
}

func recipeTargetGrams(it FoodItemInput) *float64 {
	switch it.Kind {
	case ByNameAndMass:
		g := it.Grams
		return &g
	case ByNameAndVolume:
		// No density record can exist for a composite dish; the default
		// 1.0 g/ml applies.
		g := it.ML
		return &g
	default:
		return nil
	}
}

func fillNutrients(d *ItemDetail, v models.NutrientVector) {
	d.Kcal = v.Kcal
	d.ProteinG = v.ProteinG
	d.FatG = v.FatG
	d.CarbsG = v.CarbsG
	d.FiberG = v.FiberG
	d.SodiumMg = v.SodiumMg
}

func summaryText(items []ItemDetail) string {
	if len(items) == 0 {
		return "Identified meal: (empty)"
	}
	parts := make([]string, 0, len(items))
	for _, d := range items {
		if d.MatchKind == string(MatchNone) {
			parts = append(parts, d.InputName+" (unmatched)")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0fg", d.CanonicalName, d.GramsEffective))
	}
	return "Identified meal: " + strings.Join(parts, ", ")
}
