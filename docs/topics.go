// Package docs embeds the user guide of sets. Each topic is a markdown file,
// readme.md is the table of contents.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var guide embed.FS

// Contents is the topic listing all the others.
const Contents = "readme"

// All, given to Guide, stands for every topic.
const All = "*"

// Topic returns the markdown of a topic.
func Topic(name string) (string, error) {
	content, err := guide.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Guide returns the markdown of several topics, one after the other. All
// expands to every topic but the table of contents.
func Guide(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			var err error
			if expanded, err = Topics(); err != nil {
				return "", err
			}
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Topics returns the names of the topics in alphabetical order, without the
// table of contents.
func Topics() ([]string, error) {
	files, err := fs.Glob(guide, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != Contents {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
