package bricks

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// IDAliases lists the column headers accepted for the set identifier,
// compared trimmed and lower cased.
var IDAliases = []string{"setid", "set_id", "set", "set #", "set#", "set number", "set_number"}

// ImportResult is the outcome of an import.
//
// Added, Duplicates and Invalid account for every row. Err is set only when
// the file could not be read at all, in which case nothing is imported.
type ImportResult struct {
	Added      []Item `json:"-"`
	Duplicates int    `json:"duplicates"`
	Invalid    int    `json:"invalid"`
	Err        error  `json:"-"`
}

// Imported is the number of new sets.
func (r ImportResult) Imported() int { return len(r.Added) }

// Summary returns a one-line human readable report.
func (r ImportResult) Summary() string {
	if r.Err != nil {
		return "Failed to import file. Please check the format."
	}
	return fmt.Sprintf("Imported %d sets. Skipped %d duplicates. %d invalid rows.", r.Imported(), r.Duplicates, r.Invalid)
}

// ImportRows classifies rows into new sets, duplicates and invalid rows.
//
// A row is invalid when it has no identifier column (see IDAliases), an
// empty identifier, or one that does not follow the ID format once a bare
// catalog number has been completed with "-1". A row is a duplicate when its
// identifier is in existing or in an earlier row. Every other row becomes a
// new Item with default fields, in row order.
//
// existing is not modified.
func ImportRows(existing map[ID]bool, rows []RawRecord) ImportResult {
	seen := maps.Clone(existing)
	if seen == nil {
		seen = make(map[ID]bool)
	}

	res := ImportResult{Added: []Item{}}
	for _, row := range rows {
		raw, ok := ExtractID(row)
		if !ok {
			res.Invalid++
			continue
		}
		id, err := ParseID(raw)
		if err != nil {
			res.Invalid++
			continue
		}
		if seen[id] {
			res.Duplicates++
			continue
		}
		seen[id] = true
		res.Added = append(res.Added, NewItem(id))
	}
	return res
}

// ExtractID returns the identifier cell of row, completed with "-1" when it
// is a bare catalog number. It returns false if there is no identifier
// column or the cell is empty.
//
// Headers are visited in sorted order, so the first alias found is stable.
func ExtractID(row RawRecord) (string, bool) {
	for _, key := range slices.Sorted(maps.Keys(row)) {
		header := strings.ToLower(strings.TrimSpace(key))
		if !slices.Contains(IDAliases, header) {
			continue
		}
		cell := strings.TrimSpace(toText(row[key]))
		if cell == "" {
			return "", false
		}
		if digitsRegex.MatchString(cell) {
			return cell + "-1", true
		}
		return cell, true
	}
	return "", false
}
