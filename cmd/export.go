package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bricks"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the collection to the standard output" }
func (*exportCmd) Usage() string {
	return `sets export [-format jsonl|yaml|json]

  Writes all the sets, in collection order, to the standard output.

  - jsonl: one JSON object per line (default), read back by 'sets restore'.
  - yaml: a YAML sequence.
  - json: the JSON array kept in the storage.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "jsonl", "Output format: jsonl, yaml or json")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "jsonl" && c.format != "yaml" && c.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q.\n", c.format)
		return subcommands.ExitUsageError
	}

	s, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	items := s.Items()
	switch c.format {
	case "yaml":
		err = bricks.ExportYAML(os.Stdout, items)
	case "json":
		var data []byte
		if data, err = bricks.EncodeSnapshot(items); err == nil {
			var b bytes.Buffer
			if err = json.Indent(&b, data, "", "  "); err == nil {
				b.WriteByte('\n')
				_, err = b.WriteTo(os.Stdout)
			}
		}
	default:
		err = bricks.ExportItems(os.Stdout, items)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting sets: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
