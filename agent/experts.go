package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/bricks"
	"github.com/etnz/bricks/docs"
	"github.com/etnz/bricks/renderer"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Collection is the read only view of the sets the experts can look at.
type Collection interface {
	View(query string, key bricks.SortKey) []bricks.Item
	Get(id bricks.ID) (bricks.Item, bool)
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a collector of construction toy sets. They track what they paid for each set,
			what it is worth now, and four personal ranks from -20 to 20.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.

			The user will assume that you know about their sets, check the collection first.
		`}}},
		},
		Library: NewLibrary(experts),
		Log:     zerolog.Nop(),
	}
}

// NewAppraiser returns the expert of the sets market.
func NewAppraiser() *Expert {
	return &Expert{
		Name: "Appraiser",
		Description: `This is an expert of the construction toy sets market.
		Aware of themes, release years, retirements and the second hand prices.
		Ask the Appraiser whenever you need recent or grounding information about a set.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of collectible construction toy sets. Sets are identified by their
			catalog number and a variant, like 75263-1. You leverage Google Search to ground your
			assertions, BrickLink is the reference for second hand prices.
			`}}},
		},
		Log: zerolog.Nop(),
	}
}

// NewCurator returns the expert of the user's collection.
func NewCurator(c Collection) *Expert {
	lib := []Function{listSets(c), getSet(c), documentation}

	return &Expert{
		Name: "Curator",
		Description: `This is the Curator. They know every set of the user's collection,
		with prices, gains, return on investment, ranks, notes and tags.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the curator of the user's collection of sets.
				You know how to use the Tools to extract relevant information about the collection.
				You are part of a team of experts, yours is everything about the user's sets. They might ask
				you questions about the collection, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about
				  - the list of sets, filtered and sorted
				  - the detail of a set
				  - how the application works
			`}}},
		},
		Library: NewLibrary(lib),
		Log:     zerolog.Nop(),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// output returns the successful response of a call.
func output(id, name, out string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": out}}
}

// failure returns the error response of a call.
func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

// stringArg returns the optional string argument name.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

func listSets(c Collection) *Func {
	const name = "ListSets"
	keys := make([]string, len(bricks.SortKeys))
	for i, k := range bricks.SortKeys {
		keys[i] = string(k)
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `ListSets lists the sets of the collection with their total score, prices, delta and ROI.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "Keep only sets whose id, name or theme contain this text, case insensitive. Empty keeps all sets.",
					},
					"sort": {
						Type:        genai.TypeString,
						Enum:        keys,
						Description: "Sort order, always descending. Default is score.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the sets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query, err := stringArg(args, "query")
			if err != nil {
				return failure(id, name, err)
			}
			sort, err := stringArg(args, "sort")
			if err != nil {
				return failure(id, name, err)
			}
			key, err := bricks.ParseSortKey(sort)
			if err != nil {
				return failure(id, name, err)
			}
			view := c.View(query, key)
			return output(id, name, renderer.RenderTable(renderer.NewTable(view, query, key, "")))
		},
	}
}

func getSet(c Collection) *Func {
	const name = "GetSet"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `GetSet details a single set: prices, metrics, ranks, notes, tags and links.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"setId": {
						Type:        genai.TypeString,
						Description: "The set identifier, a catalog number and a variant like 75263-1.",
					},
				},
				Required: []string{"setId"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted detail of the set.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := stringArg(args, "setId")
			if err != nil {
				return failure(id, name, err)
			}
			setID, err := bricks.ParseID(s)
			if err != nil {
				return failure(id, name, err)
			}
			it, ok := c.Get(setID)
			if !ok {
				return failure(id, name, fmt.Errorf("set %q: %w", setID, bricks.ErrNotFound))
			}
			return output(id, name, renderer.RenderDetail(renderer.NewDetail(it)))
		},
	}
}

var documentation = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "Documentation",
		Description: `Documentation returns the user documentation of the application.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type:        genai.TypeString,
					Description: "The topic to read, '*' for all of them. Default is the list of topics.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The markdown documentation.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		const name = "Documentation"
		topic, err := stringArg(args, "topic")
		if err != nil {
			return failure(id, name, err)
		}
		topic = strings.TrimSpace(topic)
		if topic == "" {
			topic = docs.Contents
		}
		doc, err := docs.Guide(topic)
		if err != nil {
			return failure(id, name, err)
		}
		return output(id, name, doc)
	},
}
