package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/quiz"
	sess "github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/ui/components"
	"github.com/abhisek/quizly/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.showControls {
		return s.renderControls(width)
	}

	state := s.ctrl.State()
	switch state.Phase {
	case sess.PhaseLoading:
		return renderLoading(width)
	case sess.PhaseFailed:
		if state.Failure.Recoverable() {
			return s.renderContentError(width, *state.Failure)
		}
		return s.renderFaultBoundary(width, *state.Failure)
	case sess.PhaseComplete:
		return renderCentered(width, theme.TextDim, "\n\n  Tallying your score...")
	}
	return s.renderQuestionView(width, state)
}

// renderQuestionView renders the active question, its timer and options.
func (s *SessionScreen) renderQuestionView(width int, state sess.State) string {
	q, ok := state.Current()
	if !ok {
		return renderLoading(width)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(s.progressLabel(state))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.Success).
		Render(fmt.Sprintf("Score: %d", state.Score()))
	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, infoLine))
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.TimerBar(state.TimeRemaining, state.Budget, cw)))
	b.WriteString("\n")
	if warn := components.TimerWarning(state.TimeRemaining); warn != "" && state.Phase == sess.PhaseActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(components.TimerColor(state.TimeRemaining)).Bold(true).Render(warn)))
	}
	b.WriteString("\n")

	questionStyle := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	opts := components.NewOptionList(q.Options)
	opts.Cursor = s.cursor
	if state.Phase != sess.PhaseActive {
		if last, ok := state.LastAnswer(); ok {
			opts.Reveal(q.CorrectIndex, last.Selected)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View(cw)))
	b.WriteString("\n")

	if state.Phase != sess.PhaseActive {
		if last, ok := state.LastAnswer(); ok {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderFeedback(last.Result)))
		}
	}
	return b.String()
}

func renderFeedback(r sess.Result) string {
	switch r {
	case sess.ResultCorrect:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓ Correct!")
	case sess.ResultIncorrect:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("✗ Incorrect!")
	default:
		return lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("⏱ Time's up!")
	}
}

// renderContentError offers an in-place retry.
func (s *SessionScreen) renderContentError(width int, f sess.Failure) string {
	cw := components.ContentWidth(width)
	p := quiz.Present(f.Kind)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(p.Icon + "  " + p.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.ErrorText.Render(f.Message))
	b.WriteString("\n\n")
	b.WriteString(components.Button("Retry", true, cw/2))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(b.String()))
}

// renderFaultBoundary replaces the quiz with an error card.
func (s *SessionScreen) renderFaultBoundary(width int, f sess.Failure) string {
	cw := components.ContentWidth(width)
	p := quiz.Present(f.Kind)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(p.Icon + "  " + p.Title))
	card.WriteString("\n\n")
	card.WriteString(theme.Body.Render(p.Message))
	if f.Message != "" {
		card.WriteString("\n\n")
		card.WriteString(theme.Hint.Render(f.Message))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Card(card.String(), cw))
	b.WriteString("\n\n")
	b.WriteString(components.Button("Try Again", s.boundary == buttonTryAgain, cw/2))
	b.WriteString("\n")
	b.WriteString(components.Button("Back to Home", s.boundary == buttonHome, cw/2))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(b.String()))
}

func (s *SessionScreen) renderControls(width int) string {
	cw := components.ContentWidth(width)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("🧪 Test Controls"))
	card.WriteString("\n\n")
	for i, sc := range faults.Scenarios {
		card.WriteString(theme.Body.Render(fmt.Sprintf("%d. %s", i+1, sc.Label)))
		card.WriteString("\n")
		card.WriteString(theme.Hint.Render("   " + sc.Message))
		card.WriteString("\n")
	}
	if s.notice != "" {
		card.WriteString("\n")
		card.WriteString(theme.ErrorText.Render(s.notice))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+components.Card(card.String(), cw))
}

func renderQuitConfirm(width int) string {
	return renderCentered(width, theme.Warning, "\n\nQuit this quiz? Your progress will be lost.\n\n(y) Yes    (n) No")
}

func renderLoading(width int) string {
	return renderCentered(width, theme.TextDim, "\n\n  Loading questions...")
}

func renderCentered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}
