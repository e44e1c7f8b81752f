package sheet

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/etnz/bricks"
)

// ReadCSV reads a comma separated file whose first line is the header.
// Lines may have any number of fields.
func ReadCSV(r io.Reader) ([]bricks.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	table, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(table) > 0 && len(table[0]) > 0 {
		// spreadsheet exports often start with a byte order mark.
		table[0][0] = strings.TrimPrefix(table[0][0], "\ufeff")
	}
	return records(table), nil
}
