// Package snake prompts for catalog records on a plain terminal.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
)

// ErrAborted is returned when the prompt is interrupted.
var ErrAborted = errors.New("snake: prompt aborted")

// Searcher keeps the items whose label contains the typed text, the same
// way the catalog narrows its matches.
func Searcher(matches []app.Match) func(input string, index int) bool {
	return func(input string, index int) bool {
		return catalog.Contains(matches[index].Label, strings.TrimSpace(input))
	}
}

// PromptRecord asks the user to pick one of matches and returns its
// position in matches.
func PromptRecord(cmd *cobra.Command, label string, matches []app.Match) (int, error) {
	if len(matches) == 0 {
		return -1, errors.New("snake: nothing to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Record.Primary | bold }} {{ .Record.Secondary | green }}",
		Inactive: "   {{ .Record.Primary }} {{ .Record.Secondary | cyan }}",
		Selected: "{{ .Label | bold }}",
		Details: `
--------- Record ----------
index: {{ .Index }}
{{ .Label }}
`,
	}

	prompt := promptui.Select{
		HideHelp:          true,
		Label:             label,
		Items:             matches,
		Templates:         templates,
		Size:              10,
		Searcher:          Searcher(matches),
		StartInSearchMode: true,
		Stdin:             io.NopCloser(cmd.InOrStdin()),
		Stdout:            nopCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return -1, ErrAborted
		}
		return -1, err
	}
	return i, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
