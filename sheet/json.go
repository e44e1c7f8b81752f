package sheet

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bricks"
)

// ReadJSON decodes a JSON document and selects rows with the JSONPath
// expression path (DefaultRowsPath when empty).
//
// Each selected object is a row, values are kept as decoded. Anything else
// selected becomes an empty row, so that it is counted as invalid.
func ReadJSON(r io.Reader, path string) ([]bricks.RawRecord, error) {
	if path == "" {
		path = DefaultRowsPath
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select rows with %q: %w", path, err)
	}

	// a path like "$.sets" returns the array itself, "$.sets[*]" its elements.
	list, ok := selected.([]any)
	if !ok {
		list = []any{selected}
	}
	rows := make([]bricks.RawRecord, 0, len(list))
	for _, v := range list {
		obj, _ := v.(map[string]any)
		row := make(bricks.RawRecord, len(obj))
		for k, v := range obj {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
