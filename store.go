package bricks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Storage is a single slot holding the serialized collection.
//
// Load returns an error wrapping fs.ErrNotExist when the slot is empty.
// Save replaces the whole content of the slot.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, snapshot []byte) error
}

// Store owns the collection of sets and keeps its Storage in sync with it.
//
// Every mutation is written back to the storage. Storage failures are logged
// and otherwise ignored: the in-memory collection stays the reference.
//
// A Store is not safe for concurrent use.
type Store struct {
	storage Storage
	log     zerolog.Logger
	seed    []RawRecord
	items   []Item
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report storage failures.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithSeed replaces the default collection (see Seed). A nil or empty
// records means no default collection at all.
func WithSeed(records []RawRecord) Option { return func(s *Store) { s.seed = records } }

// NewStore returns an empty Store on storage. Call Load to read the collection.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     zerolog.Nop(),
		seed:    Seed(),
		items:   []Item{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the collection from the storage and returns it.
//
// When the slot is empty or cannot be read, the collection is the seed.
// Load never fails.
func (s *Store) Load(ctx context.Context) []Item {
	records, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Msg("no saved sets, using the default collection")
		} else {
			s.log.Warn().Err(err).Msg("unable to read saved sets, using the default collection")
		}
		records = s.seed
	}
	s.items = s.normalizeAll(records)
	return s.Items()
}

func (s *Store) read(ctx context.Context) ([]RawRecord, error) {
	data, err := s.storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(data)
}

// normalizeAll turns loaded records into items, keeping ids unique.
func (s *Store) normalizeAll(records []RawRecord) []Item {
	items := make([]Item, 0, len(records))
	seen := make(map[ID]bool, len(records))
	for i, rec := range records {
		it := Normalize(rec)
		switch {
		case it.ID == "":
			s.log.Warn().Int("index", i).Msg("dropping saved set without id")
			continue
		case seen[it.ID]:
			s.log.Warn().Str("id", string(it.ID)).Msg("dropping duplicated saved set")
			continue
		case !it.ID.Valid():
			s.log.Warn().Str("id", string(it.ID)).Msg("saved set has an invalid id")
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items
}

// Items returns a copy of the collection, most recent first.
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	for i, it := range s.items {
		items[i] = it.Clone()
	}
	return items
}

// Len returns the number of sets.
func (s *Store) Len() int { return len(s.items) }

// IDs returns the set of identifiers in the collection.
func (s *Store) IDs() map[ID]bool {
	ids := make(map[ID]bool, len(s.items))
	for _, it := range s.items {
		ids[it.ID] = true
	}
	return ids
}

// Get returns a copy of the set with identifier id.
func (s *Store) Get(id ID) (Item, bool) {
	i := s.index(id)
	if i < 0 {
		return Item{}, false
	}
	return s.items[i].Clone(), true
}

// View returns the sets matching query in the order of key. See Project.
func (s *Store) View(query string, key SortKey) []Item {
	return Project(s.Items(), query, key)
}

func (s *Store) index(id ID) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

// Add inserts a new set at the front of the collection and returns it.
//
// Only the identifier, name, theme and year of it are used: the new set
// starts with no prices, ranks, notes or tags. Add fails with ErrInvalidID or
// ErrDuplicateID, leaving the collection unchanged.
func (s *Store) Add(ctx context.Context, it Item) (Item, error) {
	raw := NewItem(ID(strings.TrimSpace(string(it.ID)))).Raw()
	raw[FieldName] = strings.TrimSpace(it.Name)
	raw[FieldTheme] = strings.TrimSpace(it.Theme)
	if it.Year != nil {
		raw[FieldYear] = *it.Year
	}
	added := Normalize(raw)

	if err := ValidateItem(added); err != nil {
		return Item{}, fmt.Errorf("cannot add set: %w", err)
	}
	if s.index(added.ID) >= 0 {
		return Item{}, fmt.Errorf("cannot add set %q: %w", added.ID, ErrDuplicateID)
	}

	s.items = slices.Insert(s.items, 0, added)
	s.Persist(ctx)
	return added.Clone(), nil
}

// Update replaces the set with the same identifier as it, in place.
//
// it is normalized first. It returns false, without writing anything, if
// there is no such set.
func (s *Store) Update(ctx context.Context, it Item) bool {
	updated := Normalize(it.Raw())
	i := s.index(updated.ID)
	if i < 0 {
		return false
	}
	s.items[i] = updated
	s.Persist(ctx)
	return true
}

// Remove deletes the set with identifier id. It returns false, without
// writing anything, if there is no such set.
//
// Use NextSelection on the view displayed before the removal to find the set
// to select next.
func (s *Store) Remove(ctx context.Context, id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.Persist(ctx)
	return true
}

// Import adds the new sets found in rows in front of the collection, in row
// order. See ImportRows.
func (s *Store) Import(ctx context.Context, rows []RawRecord) ImportResult {
	res := ImportRows(s.IDs(), rows)
	if len(res.Added) > 0 {
		added := make([]Item, len(res.Added))
		for i, it := range res.Added {
			added[i] = it.Clone()
		}
		s.items = append(added, s.items...)
		s.Persist(ctx)
	}
	return res
}

// Replace sets the whole collection to the records, normalized. Records
// without identifier and repeated identifiers are dropped.
func (s *Store) Replace(ctx context.Context, records []RawRecord) []Item {
	s.items = s.normalizeAll(records)
	s.Persist(ctx)
	return s.Items()
}

// Persist writes the whole collection to the storage.
//
// Failures are logged, never returned.
func (s *Store) Persist(ctx context.Context) {
	data, err := EncodeSnapshot(s.items)
	if err != nil {
		s.log.Error().Err(err).Msg("unable to persist sets")
		return
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.log.Error().Err(err).Msg("unable to persist sets")
		return
	}
	s.log.Debug().Int("sets", len(s.items)).Msg("sets persisted")
}
