package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bricks/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// EnvGeminiAPIKey is the variable holding the Gemini API key.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct{}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `sets assist [<prompt>]

  Start an interactive session with the AI assistant. It can read the
  collection (never change it) and search the web about sets.

  Requires a Gemini API key in ` + EnvGeminiAPIKey + `.
`
}

// SetFlags sets the flags for the command.
func (*AssistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	if os.Getenv(EnvGeminiAPIKey) == "" {
		fmt.Fprintf(os.Stderr, "Error: %s is not set.\n", EnvGeminiAPIKey)
		return subcommands.ExitFailure
	}

	s, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sets: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	curator := agent.NewCurator(s)
	curator.Log = s.Log
	appraiser := agent.NewAppraiser()
	appraiser.Log = s.Log
	a := agent.New(os.Stdout, os.Stdin, curator, appraiser)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
