package services

// DebugTrace is the optional per-request diagnostics block: how each name
// normalized, which lookup path matched, and which conversion factors were
// applied. Gated by the request's debug flag; a nil trace records nothing.
type DebugTrace struct {
	Normalization []NormalizationStep `json:"normalization"`
	Lookups       []LookupStep        `json:"lookups"`
	Conversions   []ConversionStep    `json:"conversions"`
}

type NormalizationStep struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type LookupStep struct {
	Input     string `json:"input"`
	MatchedBy string `json:"matched_by"`
	FoodID    uint   `json:"food_id,omitempty"`
}

type ConversionStep struct {
	Item   string  `json:"item"`
	Kind   string  `json:"kind"` // density|yield|epf|default_100g
	Factor float64 `json:"factor"`
	Grams  float64 `json:"grams"`
}

func (t *DebugTrace) addNormalization(from, to string) {
	if t == nil {
		return
	}
	t.Normalization = append(t.Normalization, NormalizationStep{From: from, To: to})
}

func (t *DebugTrace) addLookup(input, matchedBy string, foodID uint) {
	if t == nil {
		return
	}
	t.Lookups = append(t.Lookups, LookupStep{Input: input, MatchedBy: matchedBy, FoodID: foodID})
}

func (t *DebugTrace) addConversion(item, kind string, factor, grams float64) {
	if t == nil {
		return
	}
	t.Conversions = append(t.Conversions, ConversionStep{Item: item, Kind: kind, Factor: factor, Grams: grams})
}
