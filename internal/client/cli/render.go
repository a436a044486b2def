package cli

import (
	"github.com/charmbracelet/glamour"
)

const notesWidth = 80

// renderMarkdown is a test seam for the glamour renderer. style is a glamour
// standard style name ("dark" or "light").
var renderMarkdown = func(markdown, style string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(notesWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
