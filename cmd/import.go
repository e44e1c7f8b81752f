package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/renderer"
	"github.com/etnz/bricks/sheet"
	"github.com/google/subcommands"
)

type importCmd struct {
	rows string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import sets from a spreadsheet" }
func (*importCmd) Usage() string {
	return `sets import [-rows <jsonpath>] <file>

  Imports new sets from a spreadsheet (.xlsx, .xlsm, .csv) or a JSON document.

  The set id is read from the first column named setId, set_id, set, set #,
  set#, set number or set_number (case insensitive). A bare catalog number
  like 75263 is imported as 75263-1. Sets already in the collection, or
  repeated in the file, are skipped as duplicates. Rows without a valid set id
  are counted as invalid. Other columns are ignored: new sets start empty.

  - rows: JSONPath expression selecting the rows of a JSON document (default "$[*]").
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rows, "rows", sheet.DefaultRowsPath, "JSONPath of the rows in a JSON document")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import takes exactly one file.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	s, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	// the whole file is parsed before anything is imported.
	var res bricks.ImportResult
	data, err := os.ReadFile(name)
	if err == nil {
		var rows []bricks.RawRecord
		if rows, err = sheet.Read(name, bytes.NewReader(data), c.rows); err == nil {
			res = s.Import(ctx, rows)
		}
	}
	if err != nil {
		s.Log.Error().Err(err).Str("file", name).Msg("import failed")
		res = bricks.ImportResult{Err: err}
	}

	printMarkdown(renderer.RenderImportSummary(renderer.NewImportSummary(res)))
	if res.Err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
