package bricks

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// idRegex checks for the catalog format: 4 to 7 digits, a dash, a variant number.
var idRegex = regexp.MustCompile(`^\d{4,7}-\d+$`)

// digitsRegex matches a bare catalog number without variant.
var digitsRegex = regexp.MustCompile(`^\d+$`)

// ID is the catalog identifier of a set, like "75263-1".
//
// Formal Definition: ID = 4*7DIGIT "-" 1*DIGIT
//
// The first part is the catalog number, the second is the variant. IDs are
// unique within a collection and never change once the set is created.
type ID string

// ParseID trims s and checks it is a valid ID.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if !idRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q must match ####-# (4-7 digits, dash, digits)", ErrInvalidID, s)
	}
	return ID(s), nil
}

// Valid reports whether id follows the ID format.
func (id ID) Valid() bool { return idRegex.MatchString(string(id)) }

func (id ID) String() string { return string(id) }

// Item is a single tracked set.
//
// An Item is always obtained from Normalize, so that all its fields obey the
// invariants: prices are finite and non-negative, ranks are integers in
// [MinRank, MaxRank], Tags is never nil.
type Item struct {
	ID            ID       `json:"setId" yaml:"setId"`
	Name          string   `json:"name" yaml:"name"`
	Theme         string   `json:"theme" yaml:"theme"`
	Year          *int     `json:"year" yaml:"year"`
	PurchasePrice float64  `json:"purchasePrice" yaml:"purchasePrice"`
	CurrentPrice  float64  `json:"currentPrice" yaml:"currentPrice"`
	RankA         int      `json:"rankA" yaml:"rankA"`
	RankB         int      `json:"rankB" yaml:"rankB"`
	RankC         int      `json:"rankC" yaml:"rankC"`
	RankD         int      `json:"rankD" yaml:"rankD"`
	Notes         string   `json:"notes" yaml:"notes"`
	Tags          []string `json:"tags" yaml:"tags"`
}

// Rank bounds.
const (
	MinRank = -20
	MaxRank = 20
)

// NewItem returns a fresh Item with all fields but the id at their defaults.
func NewItem(id ID) Item {
	return Normalize(RawRecord{FieldID: string(id)})
}

// Ranks returns the four rank scores in order A, B, C, D.
func (it Item) Ranks() [4]int {
	return [4]int{it.RankA, it.RankB, it.RankC, it.RankD}
}

// Clone returns a deep copy of it, so that it shares no memory with the original.
func (it Item) Clone() Item {
	if it.Year != nil {
		y := *it.Year
		it.Year = &y
	}
	it.Tags = slices.Clone(it.Tags)
	if it.Tags == nil {
		it.Tags = []string{}
	}
	return it
}

// Raw returns the loosely typed representation of it, the one accepted by Normalize.
func (it Item) Raw() RawRecord {
	r := RawRecord{
		FieldID:            string(it.ID),
		FieldName:          it.Name,
		FieldTheme:         it.Theme,
		FieldPurchasePrice: it.PurchasePrice,
		FieldCurrentPrice:  it.CurrentPrice,
		FieldRankA:         it.RankA,
		FieldRankB:         it.RankB,
		FieldRankC:         it.RankC,
		FieldRankD:         it.RankD,
		FieldNotes:         it.Notes,
		FieldTags:          slices.Clone(it.Tags),
	}
	if it.Year != nil {
		r[FieldYear] = *it.Year
	} else {
		r[FieldYear] = nil
	}
	return r
}

// ImageURL returns the address of the picture of the set.
func ImageURL(id ID) string {
	return "https://img.bricklink.com/ItemImage/SN/0/" + string(id) + ".png"
}

// CatalogURL returns the address of the catalog page of the set.
func CatalogURL(id ID) string {
	return "https://www.bricklink.com/v2/catalog/catalogitem.page?S=" + string(id)
}
