package sheet

import (
	"fmt"
	"io"

	"github.com/etnz/bricks"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an Excel workbook.
func ReadXLSX(r io.Reader) ([]bricks.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheet")
	}
	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	return records(table), nil
}
