package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/ui/theme"
)

// OptionList renders the answer options of a question. Before an answer
// is revealed the cursor is highlighted; afterwards the correct option is
// marked and a wrong pick is flagged.
type OptionList struct {
	Options  []string
	Cursor   int
	Revealed bool
	Correct  int
	Chosen   int // -1 when the question timed out
}

// NewOptionList creates an unrevealed list with the cursor on the first option.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, Chosen: -1}
}

// Move shifts the cursor by delta, clamped to the list.
func (o *OptionList) Move(delta int) {
	o.Cursor += delta
	if o.Cursor < 0 {
		o.Cursor = 0
	}
	if o.Cursor > len(o.Options)-1 {
		o.Cursor = len(o.Options) - 1
	}
}

// Reveal switches the list into feedback mode.
func (o *OptionList) Reveal(correct, chosen int) {
	o.Revealed = true
	o.Correct = correct
	o.Chosen = chosen
}

// View renders one option per line at the given width.
func (o OptionList) View(width int) string {
	rowStyle := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	rows := make([]string, 0, len(o.Options))
	for i, opt := range o.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		style := rowStyle.BorderForeground(theme.Border).Foreground(theme.Text)

		switch {
		case o.Revealed && i == o.Correct:
			line += "  ✓"
			style = rowStyle.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case o.Revealed && i == o.Chosen:
			line += "  ✗"
			style = rowStyle.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case o.Revealed:
			style = rowStyle.BorderForeground(theme.Border).Foreground(theme.TextDim)
		case i == o.Cursor:
			line = "▸ " + line
			style = rowStyle.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		rows = append(rows, style.Render(line))
	}
	return strings.Join(rows, "\n")
}
