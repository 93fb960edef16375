package category

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/ui/layout"
	"github.com/abhisek/quizly/internal/ui/theme"
)

// Catalog lists what the question bank holds.
type Catalog interface {
	Categories(ctx context.Context) ([]quiz.Category, error)
	Questions(ctx context.Context) ([]quiz.Question, error)
}

type loadedMsg struct {
	categories []quiz.Category
	counts     map[string]int
	total      int
	err        error
}

// difficulties cycles with left/right; "" means any.
var difficulties = append([]string{""}, quiz.Difficulties...)

// CategoryScreen picks a category and difficulty before a quiz.
type CategoryScreen struct {
	catalog    Catalog
	start      func(sel session.Selector) screen.Screen
	categories []quiz.Category
	counts     map[string]int
	total      int
	selected   int
	difficulty int
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*CategoryScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryScreen)(nil)

// New creates a CategoryScreen. start builds the quiz for the chosen selector.
func New(catalog Catalog, start func(sel session.Selector) screen.Screen) *CategoryScreen {
	return &CategoryScreen{catalog: catalog, start: start}
}

func (s *CategoryScreen) Init() tea.Cmd {
	catalog := s.catalog
	return func() tea.Msg {
		ctx := context.Background()
		cats, err := catalog.Categories(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		qs, err := catalog.Questions(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		counts := make(map[string]int, len(cats))
		for _, q := range qs {
			counts[q.CategoryID]++
		}
		return loadedMsg{categories: cats, counts: counts, total: len(qs)}
	}
}

func (s *CategoryScreen) Title() string {
	return "Choose Category"
}

func (s *CategoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Category"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selector returns the current choice. Row 0 is "All Categories".
func (s *CategoryScreen) Selector() session.Selector {
	sel := session.Selector{Difficulty: difficulties[s.difficulty]}
	if s.selected > 0 && s.selected <= len(s.categories) {
		sel.CategoryID = s.categories[s.selected-1].ID
	}
	return sel
}

func (s *CategoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.categories, s.counts, s.total = msg.categories, msg.counts, msg.total
		return s, nil

	case tea.KeyPressMsg:
		if !s.loaded || s.errMsg != "" {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.categories) {
				s.selected++
			}
		case "left", "h":
			s.difficulty = (s.difficulty + len(difficulties) - 1) % len(difficulties)
		case "right", "l":
			s.difficulty = (s.difficulty + 1) % len(difficulties)
		case "enter":
			return s, router.Replace(s.start(s.Selector()))
		}
	}
	return s, nil
}

func (s *CategoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading categories...")
	}

	var b strings.Builder
	b.WriteString("\n")

	rows := []string{fmt.Sprintf("🎲  All Categories (%d)", s.total)}
	for _, c := range s.categories {
		rows = append(rows, fmt.Sprintf("%s  %s (%d)", c.Icon, c.Name, s.counts[c.ID]))
	}
	for i, row := range rows {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(36).Render(prefix+row)))
		b.WriteString("\n")
	}

	if s.selected > 0 {
		desc := s.categories[s.selected-1].Description
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(desc)))
		b.WriteString("\n")
	}

	diff := difficulties[s.difficulty]
	if diff == "" {
		diff = "any"
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("◂ Difficulty: "+diff+" ▸")))
	return b.String()
}
