package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	query    string
	sort     string
	selected string
	json     bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the sets of the collection" }
func (*listCmd) Usage() string {
	return `sets list [-q <query>] [-sort score|currentPrice|roi] [-json]

  Lists the sets of the collection with their total score, prices, delta and
  return on investment (ROI).

  - q: keep only sets whose id, name or theme contain the query (case insensitive).
  - sort: order of the list, always descending. Defaults to score, ties broken
    by current price.
  - json: print the list as JSON instead of markdown.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Filter sets by id, name or theme")
	f.StringVar(&c.sort, "sort", string(bricks.ByScore), "Sort order: score, currentPrice or roi")
	f.StringVar(&c.selected, "selected", "", "Set to mark as selected")
	f.BoolVar(&c.json, "json", false, "Print JSON")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := bricks.ParseSortKey(c.sort)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	s, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	table := renderer.NewTable(s.View(c.query, key), c.query, key, bricks.ID(c.selected))
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTable(table))
	return subcommands.ExitSuccess
}
