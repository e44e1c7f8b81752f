package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/bricks"
	"github.com/google/subcommands"
)

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the collection with an export" }
func (*restoreCmd) Usage() string {
	return `sets restore <file>

  Replaces the whole collection with the sets of a file written by
  'sets export'. The format is guessed from the extension: .json for the
  JSON array, .yaml or .yml for YAML, JSON lines otherwise.

  Every set is normalized, sets without id and repeated ids are dropped.
`
}

func (*restoreCmd) SetFlags(f *flag.FlagSet) {}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: restore takes exactly one file.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	records, err := decodeExport(name, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	s, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	items := s.Replace(ctx, records)
	fmt.Printf("✅ Restored %d sets.\n", len(items))
	return subcommands.ExitSuccess
}

// decodeExport reads the records of an export file.
func decodeExport(name string, r io.Reader) ([]bricks.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return bricks.DecodeSnapshot(data)
	case ".yaml", ".yml":
		return bricks.ImportYAML(r)
	default:
		return bricks.ImportItems(r)
	}
}
