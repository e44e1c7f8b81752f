package bricks

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestImportRows(t *testing.T) {
	tests := []struct {
		name           string
		existing       map[ID]bool
		rows           []RawRecord
		wantAdded      []ID
		wantDuplicates int
		wantInvalid    int
	}{
		{
			name:      "bare digits get a variant",
			rows:      []RawRecord{{"Set #": "75263"}},
			wantAdded: []ID{"75263-1"},
		},
		{
			name:           "duplicates in the same file",
			rows:           []RawRecord{{"setId": "75263-1"}, {"set": "75263"}},
			wantAdded:      []ID{"75263-1"},
			wantDuplicates: 1,
		},
		{
			name:        "not an id",
			rows:        []RawRecord{{"set_id": "abc"}},
			wantAdded:   []ID{},
			wantInvalid: 1,
		},
		{
			name:           "duplicate of the collection",
			existing:       map[ID]bool{"10221-1": true},
			rows:           []RawRecord{{" SET NUMBER ": "10221-1"}, {"set_number": 10294.0}},
			wantAdded:      []ID{"10294-1"},
			wantDuplicates: 1,
		},
		{
			name: "invalid rows",
			rows: []RawRecord{
				{"name": "no id column"},
				{"set#": "   "},
				{"setid": "123-1"},
				{"setid": "12345678-1"},
				{"setid": "1234-"},
				{"setid": nil},
			},
			wantAdded:   []ID{},
			wantInvalid: 6,
		},
		{
			name:        "first alias in header order is empty",
			rows:        []RawRecord{{"Set Number": "", "set": "1000-1"}},
			wantAdded:   []ID{},
			wantInvalid: 1,
		},
		{
			name:      "aliases are read in header order",
			rows:      []RawRecord{{"set_id": "2000-1", "set": "1000-1"}},
			wantAdded: []ID{"1000-1"},
		},
		{
			name: "order is kept and nothing short circuits",
			rows: []RawRecord{
				{"Set ID": "ignored header", "setid": "3000-1"},
				{"setid": "bad"},
				{"setid": "1000-1"},
				{"setid": "3000-1"},
				{"setid": " 2000 "},
			},
			wantAdded:      []ID{"3000-1", "1000-1", "2000-1"},
			wantDuplicates: 1,
			wantInvalid:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImportRows(tt.existing, tt.rows)
			if !slices.Equal(ids(got.Added), tt.wantAdded) {
				t.Errorf("ImportRows().Added = %v, want %v", ids(got.Added), tt.wantAdded)
			}
			if got.Duplicates != tt.wantDuplicates {
				t.Errorf("ImportRows().Duplicates = %d, want %d", got.Duplicates, tt.wantDuplicates)
			}
			if got.Invalid != tt.wantInvalid {
				t.Errorf("ImportRows().Invalid = %d, want %d", got.Invalid, tt.wantInvalid)
			}
			for _, it := range got.Added {
				if want := NewItem(it.ID); !cmp.Equal(it, want) {
					t.Errorf("ImportRows() added %v, want defaults %v", it, want)
				}
			}
		})
	}
}

func TestImportRowsKeepsExisting(t *testing.T) {
	existing := map[ID]bool{"1000-1": true}
	ImportRows(existing, []RawRecord{{"setid": "2000-1"}})
	if len(existing) != 1 {
		t.Errorf("ImportRows() modified the existing ids: %v", existing)
	}
}

func TestImportSummary(t *testing.T) {
	r := ImportResult{Added: []Item{NewItem("1000-1")}, Duplicates: 2, Invalid: 3}
	if got, want := r.Summary(), "Imported 1 sets. Skipped 2 duplicates. 3 invalid rows."; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	r = ImportResult{Err: ErrImportFormat}
	if got, want := r.Summary(), "Failed to import file. Please check the format."; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestImportRowsCounters(t *testing.T) {
	properties := gopter.NewProperties(nil)

	cell := gen.OneGenOf(
		gen.IntRange(1000, 1020).Map(func(n int) string { return string(rune('0'+n%10)) + "000" }),
		gen.IntRange(1000, 1020).Map(func(n int) any { return float64(n) }),
		gen.AlphaString(),
		gen.NumString(),
	)
	row := gen.OneGenOf(
		cell.Map(func(v any) RawRecord { return RawRecord{"setid": v} }),
		cell.Map(func(v any) RawRecord { return RawRecord{"other": v} }),
	)

	properties.Property("counters sum to the number of rows and added ids are unique", prop.ForAll(
		func(rows []RawRecord) bool {
			res := ImportRows(nil, rows)
			if res.Imported()+res.Duplicates+res.Invalid != len(rows) {
				return false
			}
			seen := map[ID]bool{}
			for _, it := range res.Added {
				if seen[it.ID] || !it.ID.Valid() {
					return false
				}
				seen[it.ID] = true
			}
			return true
		},
		gen.SliceOf(row),
	))

	properties.TestingRun(t)
}
