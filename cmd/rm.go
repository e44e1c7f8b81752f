package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bricks"
	"github.com/google/subcommands"
)

type rmCmd struct {
	query    string
	sort     string
	selected string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a set from the collection" }
func (*rmCmd) Usage() string {
	return `sets rm [-q <query>] [-sort <key>] [-selected <set id>] <set id>

  Removes a set and prints the set to select next: when the removed set is
  the selected one (or nothing is selected), the selection moves to the next
  set of the list defined by -q and -sort, or to the previous one when the
  removed set was the last.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Filter of the current list")
	f.StringVar(&c.sort, "sort", string(bricks.ByScore), "Sort order of the current list")
	f.StringVar(&c.selected, "selected", "", "Currently selected set")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: rm takes exactly one set id.")
		return subcommands.ExitUsageError
	}
	id := argID(f.Arg(0))
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

	// the next selection is computed on the list as it was displayed.
	next := nextSelection(s.View(c.query, key), id, bricks.ID(c.selected))
	if !s.Remove(ctx, id) {
		fmt.Fprintf(os.Stderr, "Error: set %q not found.\n", id)
		return subcommands.ExitFailure
	}

	fmt.Printf("🗑️ Removed set %s.\n", id)
	if next == "" {
		fmt.Println("No set left to select.")
	} else {
		fmt.Printf("Selected set %s.\n", next)
	}
	return subcommands.ExitSuccess
}

// argID returns the set id given on the command line. It is not checked
// against the ID format: saved sets may carry ids that do not follow it.
func argID(arg string) bricks.ID { return bricks.ID(strings.TrimSpace(arg)) }

// nextSelection returns the selection after removing id from view.
func nextSelection(view []bricks.Item, id, selected bricks.ID) bricks.ID {
	if selected != "" && selected != id {
		return selected
	}
	return bricks.NextSelection(view, id)
}
