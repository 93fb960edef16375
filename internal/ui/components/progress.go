package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// Countdown warning thresholds in seconds.
const (
	WarnSeconds   = 10
	UrgentSeconds = 5
)

// TimerBar renders the per-question countdown: a bar that drains and
// changes color as time runs low, followed by the seconds left.
func TimerBar(remaining, budget, width int) string {
	pct := 0.0
	if budget > 0 {
		pct = float64(remaining) / float64(budget)
	}
	bar := NewProgressBar(fmt.Sprintf("⏱ %2ds", remaining), pct, false, width)
	bar.Color = TimerColor(remaining)
	return bar.View()
}

// TimerColor picks the bar color for the remaining seconds.
func TimerColor(remaining int) color.Color {
	switch {
	case remaining <= UrgentSeconds:
		return theme.Error
	case remaining <= WarnSeconds:
		return theme.Warning
	}
	return theme.Success
}

// TimerWarning returns the warning line for the remaining seconds, or "".
func TimerWarning(remaining int) string {
	switch {
	case remaining <= UrgentSeconds:
		return "Hurry up!"
	case remaining <= WarnSeconds:
		return "Time is running out!"
	}
	return ""
}
