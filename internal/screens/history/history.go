package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/store"
	"github.com/abhisek/quizly/internal/ui/layout"
	"github.com/abhisek/quizly/internal/ui/theme"
)

// pageSize is how many sessions the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventData
	Err       error
}

// HistoryScreen displays past quiz sessions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionRecord
	answers   map[string][]store.AnswerEventData
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEventData),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), pageSize)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadAnswers(s.sessions[s.selected].SessionID)
		}
	}
	return s, nil
}

// loadAnswers fetches a session's answers once.
func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.SessionAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start playing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + describe(rec)

		style := lipgloss.NewStyle().Foreground(statusColor(rec))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(width, rec))
		}
	}

	return b.String()
}

// describe formats one history row.
func describe(rec store.SessionRecord) string {
	date := rec.Timestamp.Local().Format("Jan 02 15:04")
	category := rec.CategoryID
	if category == "" {
		category = "all"
	}
	if rec.Difficulty != "" {
		category += "/" + rec.Difficulty
	}

	if rec.Action == store.ActionFailed {
		p := quiz.Present(quiz.ParseKind(rec.ErrorKind))
		return fmt.Sprintf("%s  %-18s  %s %s", date, category, p.Icon, p.Title)
	}

	var pct float64
	if rec.Total > 0 {
		pct = float64(rec.Correct) / float64(rec.Total) * 100
	}
	return fmt.Sprintf("%s  %-18s  %d/%d  %5.1f%%", date, category, rec.Correct, rec.Total, pct)
}

func (s *HistoryScreen) renderDetails(width int, rec store.SessionRecord) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	var lines []string

	if rec.Action == store.ActionFailed {
		lines = append(lines, "    "+rec.ErrorMessage)
	} else {
		lines = append(lines, fmt.Sprintf("    Correct %d  Incorrect %d  Not attempted %d",
			rec.Correct, rec.Incorrect, rec.NotAttempted))
	}

	answers, ok := s.answers[rec.SessionID]
	switch {
	case !ok:
		lines = append(lines, "    Loading answers...")
	case len(answers) == 0:
		lines = append(lines, "    No answers recorded")
	default:
		var marks strings.Builder
		for _, a := range answers {
			switch a.Outcome {
			case "correct":
				marks.WriteString("✓")
			case "incorrect":
				marks.WriteString("✗")
			default:
				marks.WriteString("⏱")
			}
		}
		lines = append(lines, "    "+marks.String())
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(l)))
		b.WriteString("\n")
	}
	return b.String()
}

func statusColor(rec store.SessionRecord) color.Color {
	if rec.Action == store.ActionFailed {
		return theme.Error
	}
	if rec.Total > 0 && rec.Correct*2 >= rec.Total {
		return theme.Success
	}
	return theme.Text
}
