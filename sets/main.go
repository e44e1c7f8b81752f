// Command sets tracks a collection of construction toy sets: prices, ranks,
// notes and tags.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/bricks/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env file is fine.
	_ = godotenv.Load()

	// shell completion, exits when the shell is asking.
	cmd.Completion().Complete("sets")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
