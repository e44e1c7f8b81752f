package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	query string
	sort  string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the detail of a set" }
func (*showCmd) Usage() string {
	return `sets show [<set id>]

  Shows a set: prices, metrics, ranks, notes, tags, its picture and its
  BrickLink catalog page.

  Without a set id it shows the first set of the list (see -q and -sort).
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Filter sets by id, name or theme, without set id")
	f.StringVar(&c.sort, "sort", string(bricks.ByScore), "Sort order: score, currentPrice or roi, without set id")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: show takes at most one set id.")
		return subcommands.ExitUsageError
	}
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

	var it bricks.Item
	if f.NArg() == 0 {
		view := s.View(c.query, key)
		if len(view) == 0 {
			fmt.Fprintln(os.Stderr, "No set to show.")
			return subcommands.ExitFailure
		}
		it = view[0]
	} else {
		id := argID(f.Arg(0))
		var ok bool
		if it, ok = s.Get(id); !ok {
			fmt.Fprintf(os.Stderr, "Error: set %q not found.\n", id)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.RenderDetail(renderer.NewDetail(it)))
	return subcommands.ExitSuccess
}
