package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/ui/components"
	"github.com/abhisek/quizly/internal/ui/layout"
	"github.com/abhisek/quizly/internal/ui/theme"
)

// Buttons.
const (
	buttonPlayAgain = iota
	buttonHome
)

// maxReview caps the per-question review list.
const maxReview = 10

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	result    session.OutcomeMsg
	playAgain func(sel session.Selector) screen.Screen
	selected  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. playAgain builds a fresh quiz with the
// same selector; when nil the Play Again button returns home.
func New(result session.OutcomeMsg, playAgain func(sel session.Selector) screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, playAgain: playAgain}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "right", "up", "down", "tab", "shift+tab":
		s.selected = 1 - s.selected
	case "p":
		return s, s.replay()
	case "esc", "h":
		return s, router.Pop()
	case "enter":
		if s.selected == buttonPlayAgain {
			return s, s.replay()
		}
		return s, router.Pop()
	}
	return s, nil
}

func (s *SummaryScreen) replay() tea.Cmd {
	if s.playAgain == nil {
		return router.Pop()
	}
	return router.Replace(s.playAgain(s.result.Selector))
}

func (s *SummaryScreen) View(width, height int) string {
	out := s.result.Outcome
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(scoreColor(out)).
		Bold(true).
		Render(out.Message()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("You scored %d out of %d", out.Correct, out.Total)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%.1f%%", out.Percentage())))
	b.WriteString("\n\n")

	breakdown := strings.Join([]string{
		theme.Correct.Render(fmt.Sprintf("✓ Correct: %d", out.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ Incorrect: %d", out.Incorrect)),
		theme.Missed.Render(fmt.Sprintf("⏱ Not Attempted: %d", out.NotAttempted)),
	}, "\n")
	b.WriteString(components.Card(breakdown, cw))
	b.WriteString("\n")

	if review := s.renderReview(cw); review != "" {
		b.WriteString("\n")
		b.WriteString(review)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	half := cw/2 - 1
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		components.Button("Play Again", s.selected == buttonPlayAgain, half-3),
		"  ",
		components.Button("Back to Home", s.selected == buttonHome, half-3),
	))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(b.String()))
}

// renderReview lists each question with its result.
func (s *SummaryScreen) renderReview(cw int) string {
	if len(s.result.Answers) == 0 || len(s.result.Questions) < len(s.result.Answers) {
		return ""
	}
	var lines []string
	for i, a := range s.result.Answers {
		if i == maxReview {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("… and %d more", len(s.result.Answers)-maxReview)))
			break
		}
		text := s.result.Questions[i].Text
		if limit := cw - 6; len([]rune(text)) > limit && limit > 1 {
			text = string([]rune(text)[:limit-1]) + "…"
		}
		var mark string
		switch a.Result {
		case session.ResultCorrect:
			mark = theme.Correct.Render("✓")
		case session.ResultIncorrect:
			mark = theme.Incorrect.Render("✗")
		default:
			mark = theme.Missed.Render("⏱")
		}
		lines = append(lines, mark+" "+theme.Body.Render(text))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

// scoreColor returns the theme color for the score band.
func scoreColor(out session.Outcome) color.Color {
	switch pct := out.Percentage(); {
	case pct >= 80:
		return theme.Success
	case pct >= 40:
		return theme.Warning
	default:
		return theme.Error
	}
}
