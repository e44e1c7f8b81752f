package bricks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// fakeSlot is an in-memory Storage recording its writes.
type fakeSlot struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSlot) Load(context.Context) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.data == nil {
		return nil, fmt.Errorf("empty slot: %w", fs.ErrNotExist)
	}
	return f.data, nil
}

func (f *fakeSlot) Save(_ context.Context, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.data = slices.Clone(data)
	return nil
}

// saved decodes what was last written.
func (f *fakeSlot) saved(t *testing.T) []Item {
	t.Helper()
	records, err := DecodeSnapshot(f.data)
	if err != nil {
		t.Fatalf("slot content cannot be decoded: %v", err)
	}
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Normalize(r)
	}
	return items
}

var testSeed = []RawRecord{
	{"setId": "75263-1", "currentPrice": 10},
	{"setId": "10221-1", "currentPrice": 20},
}

func TestStoreLoad(t *testing.T) {
	tests := []struct {
		name string
		slot *fakeSlot
		want []ID
	}{
		{"missing", &fakeSlot{}, []ID{"75263-1", "10221-1"}},
		{"unreadable", &fakeSlot{loadErr: errors.New("denied")}, []ID{"75263-1", "10221-1"}},
		{"malformed", &fakeSlot{data: []byte(`[{"setId":`)}, []ID{"75263-1", "10221-1"}},
		{"not a list", &fakeSlot{data: []byte(`{"setId":"1000-1"}`)}, []ID{"75263-1", "10221-1"}},
		{"null", &fakeSlot{data: []byte(`null`)}, []ID{"75263-1", "10221-1"}},
		{"empty list", &fakeSlot{data: []byte(`[]`)}, []ID{}},
		{"saved", &fakeSlot{data: []byte(`[{"setId":"1000-1","rankA":"x"},{"setId":"2000-1"}]`)}, []ID{"1000-1", "2000-1"}},
		{"duplicates and missing ids", &fakeSlot{data: []byte(`[{"setId":"1000-1"},{"name":"x"},{"setId":"1000-1"},null]`)}, []ID{"1000-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			s := NewStore(tt.slot, WithSeed(testSeed), WithLogger(zerolog.New(&logs)))
			got := s.Load(context.Background())
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("Load() = %v, want %v", ids(got), tt.want)
			}
			for _, it := range got {
				if it.Tags == nil {
					t.Errorf("Load() set %q has nil tags", it.ID)
				}
			}
			if tt.slot.saves != 0 {
				t.Errorf("Load() wrote to the slot %d times", tt.slot.saves)
			}
		})
	}
}

func TestStoreLoadDefaultSeed(t *testing.T) {
	s := NewStore(&fakeSlot{})
	got := s.Load(context.Background())
	if len(got) != len(Seed()) || len(got) == 0 {
		t.Fatalf("Load() = %d sets, want the %d seed sets", len(got), len(Seed()))
	}
	for _, it := range got {
		if err := ValidateItem(it); err != nil {
			t.Errorf("seed set is invalid: %v", err)
		}
	}
}

func TestStoreLoadWithoutSeed(t *testing.T) {
	for _, seed := range [][]RawRecord{nil, {}} {
		s := NewStore(&fakeSlot{}, WithSeed(seed))
		if got := s.Load(context.Background()); len(got) != 0 {
			t.Errorf("Load() with seed %v = %v, want no sets", seed, ids(got))
		}
	}
}

func newTestStore(t *testing.T, slot *fakeSlot) *Store {
	t.Helper()
	s := NewStore(slot, WithSeed(testSeed))
	s.Load(context.Background())
	return s
}

func TestStoreAdd(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	s := newTestStore(t, slot)

	added, err := s.Add(ctx, Item{ID: " 1000-1 ", Name: " Tree ", Theme: "Ideas", Year: year(2019), CurrentPrice: 99, RankA: 3, Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	want := Item{ID: "1000-1", Name: "Tree", Theme: "Ideas", Year: year(2019), Tags: []string{}}
	if diff := cmp.Diff(want, added); diff != "" {
		t.Errorf("Add() mismatch (-want +got):\n%s", diff)
	}
	if got := ids(s.Items()); !slices.Equal(got, []ID{"1000-1", "75263-1", "10221-1"}) {
		t.Errorf("Items() after Add() = %v, want the new set first", got)
	}
	if slot.saves != 1 {
		t.Errorf("Add() saved %d times, want 1", slot.saves)
	}
	if got := ids(slot.saved(t)); !slices.Equal(got, ids(s.Items())) {
		t.Errorf("saved sets = %v, want %v", got, ids(s.Items()))
	}

	for _, tt := range []struct {
		id      ID
		wantErr error
	}{
		{"1000-1", ErrDuplicateID},
		{"75263-1", ErrDuplicateID},
		{"abc", ErrInvalidID},
		{"", ErrInvalidID},
		{"123-1", ErrInvalidID},
	} {
		_, err := s.Add(ctx, Item{ID: tt.id})
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Add(%q) error = %v, want %v", tt.id, err, tt.wantErr)
		}
	}
	if s.Len() != 3 || slot.saves != 1 {
		t.Errorf("rejected Add() changed the collection: %d sets, %d saves", s.Len(), slot.saves)
	}
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	s := newTestStore(t, slot)

	it, _ := s.Get("10221-1")
	it.CurrentPrice = -5
	it.RankB = 50
	it.Notes = "updated"
	it.Tags = nil
	if !s.Update(ctx, it) {
		t.Fatal("Update() = false, want true")
	}
	got, _ := s.Get("10221-1")
	if got.CurrentPrice != 0 || got.RankB != MaxRank || got.Notes != "updated" || got.Tags == nil {
		t.Errorf("Update() did not normalize: %+v", got)
	}
	if order := ids(s.Items()); !slices.Equal(order, []ID{"75263-1", "10221-1"}) {
		t.Errorf("Update() moved the set: %v", order)
	}
	if slot.saves != 1 {
		t.Errorf("Update() saved %d times, want 1", slot.saves)
	}

	if s.Update(ctx, NewItem("9999-1")) {
		t.Error("Update() of an unknown set = true, want false")
	}
	if slot.saves != 1 {
		t.Errorf("Update() of an unknown set saved")
	}
}

func TestStoreItemsAreCopies(t *testing.T) {
	s := newTestStore(t, &fakeSlot{})
	items := s.Items()
	items[0].Name = "changed"
	items[0].Tags = append(items[0].Tags, "leak")
	if got, _ := s.Get(items[0].ID); got.Name != "" || len(got.Tags) != 0 {
		t.Errorf("Items() shares memory with the store: %+v", got)
	}
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	s := newTestStore(t, slot)

	// the selected set is the last one of the view: selection moves back.
	view := s.View("", ByCurrentPrice) // 10221-1, 75263-1
	next := NextSelection(view, "75263-1")
	if !s.Remove(ctx, "75263-1") {
		t.Fatal("Remove() = false, want true")
	}
	if next != "10221-1" {
		t.Errorf("NextSelection() = %q, want %q", next, "10221-1")
	}

	view = s.View("", ByCurrentPrice)
	next = NextSelection(view, "10221-1")
	s.Remove(ctx, "10221-1")
	if next != "" {
		t.Errorf("NextSelection() on the last set = %q, want none", next)
	}
	if s.Len() != 0 || slot.saves != 2 {
		t.Errorf("after Remove(): %d sets, %d saves", s.Len(), slot.saves)
	}
	if s.Remove(ctx, "10221-1") {
		t.Error("Remove() of an unknown set = true, want false")
	}
	if got := slot.saved(t); len(got) != 0 {
		t.Errorf("saved sets = %v, want none", ids(got))
	}
}

func TestStoreImport(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	s := newTestStore(t, slot)

	res := s.Import(ctx, []RawRecord{{"set": "2000"}, {"set": "75263"}, {"set": "x"}, {"set": "3000-2"}})
	if res.Imported() != 2 || res.Duplicates != 1 || res.Invalid != 1 {
		t.Errorf("Import() = %s", res.Summary())
	}
	want := []ID{"2000-1", "3000-2", "75263-1", "10221-1"}
	if got := ids(s.Items()); !slices.Equal(got, want) {
		t.Errorf("Items() after Import() = %v, want %v", got, want)
	}
	if slot.saves != 1 {
		t.Errorf("Import() saved %d times, want 1", slot.saves)
	}

	res = s.Import(ctx, []RawRecord{{"set": "2000"}})
	if res.Imported() != 0 || slot.saves != 1 {
		t.Errorf("Import() with nothing new saved anyway")
	}
}

func TestStorePersistFailure(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	slot := &fakeSlot{saveErr: errors.New("quota exceeded")}
	s := NewStore(slot, WithSeed(testSeed), WithLogger(zerolog.New(&logs)))
	s.Load(ctx)

	if _, err := s.Add(ctx, NewItem("1000-1")); err != nil {
		t.Fatalf("Add() error = %v, persistence failures must not be returned", err)
	}
	if _, ok := s.Get("1000-1"); !ok {
		t.Error("Add() did not keep the set in memory")
	}
	if !strings.Contains(logs.String(), "quota exceeded") {
		t.Errorf("persistence failure was not logged: %q", logs.String())
	}
}

func TestStoreReplace(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	s := newTestStore(t, slot)
	got := s.Replace(ctx, []RawRecord{{"setId": "5000-1"}, {"setId": "5000-1"}, {"setId": "6000-1"}})
	if !slices.Equal(ids(got), []ID{"5000-1", "6000-1"}) {
		t.Errorf("Replace() = %v", ids(got))
	}
	if slot.saves != 1 {
		t.Errorf("Replace() saved %d times, want 1", slot.saves)
	}
}
