package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/docs"
	"github.com/etnz/bricks/sheet"
	"github.com/etnz/bricks/storage"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application, derived from
// the flags of the commands.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: predictFlags(fs),
			Args:  predictArgs(c),
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// flagPredictors completes known flag values.
var flagPredictors = map[string]complete.Predictor{
	"sort":     predict.Set(sortKeys()),
	"format":   predict.Set{"jsonl", "yaml", "json"},
	"log-file": predict.Files("*"),
	"selected": complete.PredictFunc(predictIDs),
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

func predictArgs(c subcommands.Command) complete.Predictor {
	switch c.(type) {
	case *showCmd, *editCmd, *rmCmd:
		return complete.PredictFunc(predictIDs)
	case *importCmd:
		var ps []complete.Predictor
		for _, ext := range sheet.Formats {
			ps = append(ps, predict.Files("*"+ext))
		}
		return predict.Or(ps...)
	case *restoreCmd:
		return predict.Files("*")
	case *topicCmd:
		return complete.PredictFunc(predictTopics)
	}
	return predict.Nothing
}

func sortKeys() []string {
	keys := make([]string, len(bricks.SortKeys))
	for i, k := range bricks.SortKeys {
		keys[i] = string(k)
	}
	return keys
}

// predictIDs completes set ids from the collection in storage, most recent first.
func predictIDs(prefix string) []string {
	slot, err := storage.Open(StoreURL(), StoreKey())
	if err != nil {
		return nil
	}
	defer slot.Close()
	s := bricks.NewStore(slot)
	var ids []string
	for _, it := range s.Load(context.Background()) {
		if strings.HasPrefix(string(it.ID), prefix) {
			ids = append(ids, string(it.ID))
		}
	}
	return ids
}

func predictTopics(prefix string) []string {
	topics, err := docs.Topics()
	if err != nil {
		return nil
	}
	var matches []string
	for _, t := range topics {
		if strings.HasPrefix(t, prefix) {
			matches = append(matches, t)
		}
	}
	return matches
}
