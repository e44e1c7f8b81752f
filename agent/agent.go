// Package agent implements `sets assist`: a chat about the collection, run
// by Gemini experts that read it through function calls.
//
// The facilitator talks with the user and delegates questions to the
// experts: the curator knows the collection and the documentation, the
// appraiser searches the web for market prices. None of them can change
// the collection.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Prompt is printed before each user question.
const Prompt = "assist> "

// Bye ends the chat.
const Bye = "bye"

// Agent is a chat session between the user and the experts.
type Agent struct {
	out         io.Writer
	in          *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New returns an Agent writing answers to out and reading questions from in.
// The facilitator is made aware of every expert.
func New(out io.Writer, in io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		out:         out,
		in:          bufio.NewReader(in),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the Gemini chats of the experts and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting %s: %w", e.Name, err)
		}
	}
	if err := a.Facilitator.Start(ctx, client); err != nil {
		return fmt.Errorf("starting %s: %w", a.Facilitator.Name, err)
	}
	return nil
}

// Run chats until the user says Bye or closes the input. Questions are first
// taken from questions, then read from the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, questions ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Welcome to sets assist. Type '%s' to exit.\n", Bye)

	for {
		fmt.Fprint(a.out, Prompt)
		var question string
		if len(questions) > 0 {
			question, questions = strings.TrimSpace(questions[0]), questions[1:]
			if question == "" {
				continue
			}
			fmt.Fprintln(a.out, question)
		} else {
			line, err := a.in.ReadString('\n')
			if errors.Is(err, io.EOF) {
				return nil // ctrl+D
			}
			if err != nil {
				return err
			}
			question = strings.TrimSpace(line)
		}

		if question == Bye {
			return nil
		}
		if question == "" {
			continue
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, answer.Parts[0].Text)
	}
}
