package bricks

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRecord is a loosely typed record: persisted JSON objects, spreadsheet
// rows, user input. Any value may be missing or of the wrong type.
//
// The only way from a RawRecord to an Item is Normalize.
type RawRecord map[string]any

// Field names of an Item in a RawRecord. They are also the JSON property names.
const (
	FieldID            = "setId"
	FieldName          = "name"
	FieldTheme         = "theme"
	FieldYear          = "year"
	FieldPurchasePrice = "purchasePrice"
	FieldCurrentPrice  = "currentPrice"
	FieldRankA         = "rankA"
	FieldRankB         = "rankB"
	FieldRankC         = "rankC"
	FieldRankD         = "rankD"
	FieldNotes         = "notes"
	FieldTags          = "tags"
)

// fieldAltID is accepted in place of FieldID.
const fieldAltID = "id"

// Normalize returns the canonical Item for r.
//
// It never fails: values that cannot be coerced take their default. Prices
// become finite non-negative numbers (0 by default), ranks integers clamped
// to [MinRank, MaxRank] (0 by default), texts strings ("" by default), tags
// a non-nil list of non-empty strings. The year is nil unless r holds a
// finite number (or a string of one).
//
// Normalize is idempotent: Normalize(Normalize(r).Raw()) equals Normalize(r).
func Normalize(r RawRecord) Item {
	id, ok := r[FieldID]
	if !ok {
		id = r[fieldAltID]
	}
	return Item{
		ID:            ID(strings.TrimSpace(toText(id))),
		Name:          toText(r[FieldName]),
		Theme:         toText(r[FieldTheme]),
		Year:          toYear(r[FieldYear]),
		PurchasePrice: toPrice(r[FieldPurchasePrice]),
		CurrentPrice:  toPrice(r[FieldCurrentPrice]),
		RankA:         toRank(r[FieldRankA]),
		RankB:         toRank(r[FieldRankB]),
		RankC:         toRank(r[FieldRankC]),
		RankD:         toRank(r[FieldRankD]),
		Notes:         toText(r[FieldNotes]),
		Tags:          toTags(r[FieldTags]),
	}
}

// toNumber converts v the way a lenient user input would be read.
// It returns NaN when v has no numeric meaning.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func toPrice(v any) float64 {
	f := toNumber(v)
	if !finite(f) || f < 0 {
		return 0
	}
	return f
}

func toRank(v any) int {
	f := toNumber(v)
	if !finite(f) {
		return 0
	}
	f = math.Trunc(f)
	return int(math.Max(MinRank, math.Min(MaxRank, f)))
}

// toYear keeps "unknown" (nil) apart from any actual year. Garbage is unknown too.
func toYear(v any) *int {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	if v == nil {
		return nil
	}
	f := toNumber(v)
	if !finite(f) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	y := int(math.Trunc(f))
	return &y
}

func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		f := toNumber(x)
		if !finite(f) {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}

// toTags accepts a list or a comma separated string.
func toTags(v any) []string {
	tags := []string{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			tags = append(tags, s)
		}
	}
	switch x := v.(type) {
	case []string:
		for _, s := range x {
			add(s)
		}
	case []any:
		for _, e := range x {
			add(toText(e))
		}
	case string:
		for _, s := range strings.Split(x, ",") {
			add(s)
		}
	}
	return tags
}
