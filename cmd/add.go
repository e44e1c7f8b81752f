package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/bricks"
	"github.com/google/subcommands"
)

type addCmd struct {
	id    string
	name  string
	theme string
	year  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new set to the collection" }
func (*addCmd) Usage() string {
	return `sets add -id <set id> [-name <name>] [-theme <theme>] [-year <year>]

  Adds a new set at the top of the collection. Prices, ranks, notes and tags
  start empty, use 'sets edit' to fill them.

  - id: the set identifier, 4 to 7 digits, a dash and a variant (e.g., "75263-1"). Must be unique.
  - name, theme: free text.
  - year: the release year, optional.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Set identifier (required)")
	f.StringVar(&c.name, "name", "", "Set name")
	f.StringVar(&c.theme, "theme", "", "Set theme")
	f.StringVar(&c.year, "year", "", "Release year")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, err := parseYear(c.year)
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

	it, err := s.Add(ctx, bricks.Item{ID: bricks.ID(c.id), Name: c.name, Theme: c.theme, Year: year})
	switch {
	case errors.Is(err, bricks.ErrInvalidID):
		fmt.Fprintln(os.Stderr, "Error: Set ID must match ####-# (4-7 digits, dash, digits).")
		return subcommands.ExitUsageError
	case errors.Is(err, bricks.ErrDuplicateID):
		fmt.Fprintln(os.Stderr, "Error: This Set ID already exists.")
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error adding set: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Added set %s.\n", it.ID)
	return subcommands.ExitSuccess
}

// parseYear reads an optional year, "" is no year.
func parseYear(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", s)
	}
	return &y, nil
}
