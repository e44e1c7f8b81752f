package bricks

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// this file contains functions to handle the import/export format.
// It should remain human readable, single file and easy to merge.

// ExportItems writes items to 'w' in the import/export format.
//
// The format is a JSONL file, where each line is a JSON object representing a
// set, in the same order as items.
func ExportItems(w io.Writer, items []Item) error {
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("cannot marshal set %q: %w", it.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write set format: %w", err)
		}
	}
	return nil
}

// ImportItems reads records from 'r' in the import/export format.
//
// Blank lines are ignored. Records are returned as read, they still need to be
// normalized.
func ImportItems(r io.Reader) ([]RawRecord, error) {
	var records []RawRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec RawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("cannot parse line %d for set import format: %q: %w", i, string(line), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read set import format: %w", err)
	}
	return records, nil
}

// ExportYAML writes items to 'w' as a YAML sequence, the format of the seed.
func ExportYAML(w io.Writer, items []Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("cannot write YAML sets: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads back what ExportYAML wrote.
func ImportYAML(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read YAML sets: %w", err)
	}
	return decodeYAML(data)
}

// EncodeSnapshot returns the content of a storage slot for items: a JSON array.
func EncodeSnapshot(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("cannot encode sets: %w", err)
	}
	return data, nil
}

// DecodeSnapshot reads the content of a storage slot. It fails unless data
// is a JSON array of objects.
func DecodeSnapshot(data []byte) ([]RawRecord, error) {
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cannot decode sets: %w", err)
	}
	if records == nil {
		// 'null' is valid JSON but not a list.
		return nil, fmt.Errorf("cannot decode sets: not a list")
	}
	return records, nil
}
