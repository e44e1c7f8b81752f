// Package sheet reads spreadsheet files into raw rows ready for import.
//
// Every format follows the same contract: a row is a bricks.RawRecord keyed
// by column header. Cells of tabular formats are strings, empty cells are ""
// and rows with no content at all are skipped.
package sheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/etnz/bricks"
)

// DefaultRowsPath selects every element of a top level JSON array.
const DefaultRowsPath = "$[*]"

// Formats lists the file extensions Read understands.
var Formats = []string{".xlsx", ".xlsm", ".csv", ".json"}

// Read parses r according to the extension of name.
//
// rowsPath is the JSONPath expression selecting rows in JSON documents, it is
// ignored by other formats. Errors wrap bricks.ErrImportFormat.
func Read(name string, r io.Reader, rowsPath string) ([]bricks.RawRecord, error) {
	var (
		rows []bricks.RawRecord
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		rows, err = ReadXLSX(r)
	case ".csv":
		rows, err = ReadCSV(r)
	case ".json":
		rows, err = ReadJSON(r, rowsPath)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks are not supported, save %s as .xlsx", bricks.ErrImportFormat, filepath.Base(name))
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", bricks.ErrImportFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", bricks.ErrImportFormat, filepath.Base(name), err)
	}
	return rows, nil
}

// records turns a table whose first line is the header into rows.
func records(table [][]string) []bricks.RawRecord {
	rows := []bricks.RawRecord{}
	if len(table) == 0 {
		return rows
	}
	header := headers(table[0])
	for _, line := range table[1:] {
		if blank(line) {
			continue
		}
		row := make(bricks.RawRecord, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			cell := ""
			if i < len(line) {
				cell = line[i]
			}
			row[h] = cell
		}
		rows = append(rows, row)
	}
	return rows
}

// headers returns unique column names: a repeated header gets a "_1", "_2"
// suffix. Empty headers stay empty and their column is ignored.
func headers(line []string) []string {
	header := make([]string, len(line))
	seen := make(map[string]int, len(line))
	for i, h := range line {
		if h == "" {
			continue
		}
		name := h
		if n := seen[h]; n > 0 {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[h]++
		header[i] = name
	}
	return header
}

func blank(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
