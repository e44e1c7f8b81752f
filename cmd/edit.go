package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/renderer"
	"github.com/google/subcommands"
)

type editCmd struct {
	name, theme, year string
	purchase, current string
	rankA, rankB      string
	rankC, rankD      string
	notes, tags       string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit the fields of a set" }
func (*editCmd) Usage() string {
	return `sets edit [flags] <set id>

  Changes the fields of a set given as flags, other fields are kept.

  - year: the release year, "" to clear it.
  - purchase, current: prices, negative prices are set to 0.
  - a, b, c, d: ranks between -20 and 20, out of range ranks are clamped.
  - tags: comma separated tags, "" to clear them.

Usage Examples:
$ sets edit -current 24.99 -a 12 -tags "microfighter, star wars" 75263-1
`
}

// fieldFlags maps flag names to record fields.
var fieldFlags = map[string]string{
	"name":     bricks.FieldName,
	"theme":    bricks.FieldTheme,
	"year":     bricks.FieldYear,
	"purchase": bricks.FieldPurchasePrice,
	"current":  bricks.FieldCurrentPrice,
	"a":        bricks.FieldRankA,
	"b":        bricks.FieldRankB,
	"c":        bricks.FieldRankC,
	"d":        bricks.FieldRankD,
	"notes":    bricks.FieldNotes,
	"tags":     bricks.FieldTags,
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Set name")
	f.StringVar(&c.theme, "theme", "", "Set theme")
	f.StringVar(&c.year, "year", "", "Release year, empty to clear")
	f.StringVar(&c.purchase, "purchase", "", "Purchase price")
	f.StringVar(&c.current, "current", "", "Current price")
	f.StringVar(&c.rankA, "a", "", "Rank A, from -20 to 20")
	f.StringVar(&c.rankB, "b", "", "Rank B, from -20 to 20")
	f.StringVar(&c.rankC, "c", "", "Rank C, from -20 to 20")
	f.StringVar(&c.rankD, "d", "", "Rank D, from -20 to 20")
	f.StringVar(&c.notes, "notes", "", "Notes")
	f.StringVar(&c.tags, "tags", "", "Comma separated tags")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit takes exactly one set id.")
		return subcommands.ExitUsageError
	}
	id := argID(f.Arg(0))

	changes, err := c.changes(f)
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

	it, ok := s.Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: set %q not found.\n", id)
		return subcommands.ExitFailure
	}
	raw := it.Raw()
	for field, v := range changes {
		raw[field] = v
	}
	s.Update(ctx, bricks.Normalize(raw))

	it, _ = s.Get(id)
	printMarkdown(renderer.RenderDetail(renderer.NewDetail(it)))
	return subcommands.ExitSuccess
}

// changes returns the record fields of the flags actually set.
func (c *editCmd) changes(f *flag.FlagSet) (bricks.RawRecord, error) {
	values := map[string]string{
		"name": c.name, "theme": c.theme, "year": c.year,
		"purchase": c.purchase, "current": c.current,
		"a": c.rankA, "b": c.rankB, "c": c.rankC, "d": c.rankD,
		"notes": c.notes, "tags": c.tags,
	}
	changes := bricks.RawRecord{}
	var err error
	f.Visit(func(fl *flag.Flag) {
		field, ok := fieldFlags[fl.Name]
		if !ok || err != nil {
			return
		}
		v := values[fl.Name]
		switch fl.Name {
		case "purchase", "current", "a", "b", "c", "d":
			if _, perr := strconv.ParseFloat(strings.TrimSpace(v), 64); perr != nil {
				err = fmt.Errorf("invalid number %q for -%s", v, fl.Name)
				return
			}
		case "year":
			if _, perr := parseYear(v); perr != nil {
				err = perr
				return
			}
		}
		changes[field] = v
	})
	return changes, err
}
