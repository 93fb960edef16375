package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/ui/components"
	"github.com/abhisek/quizly/internal/ui/layout"
	"github.com/abhisek/quizly/internal/ui/theme"
)

// Routes builds the screens reachable from home.
type Routes struct {
	Quiz       func(sel session.Selector) screen.Screen
	Categories func() screen.Screen
	History    func() screen.Screen
	Login      func() screen.Screen
}

// Menu positions.
const (
	itemStart = iota
	itemCategory
	itemHistory
	itemTestMode
	itemAccount
	itemExit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	auth          *auth.Service
	faults        *faults.Injector
	routes        Routes
	menu          components.Menu
	confirmLogout bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeHandler = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *auth.Service, inj *faults.Injector, routes Routes) *HomeScreen {
	h := &HomeScreen{auth: svc, faults: inj, routes: routes}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start Quiz", Action: func() tea.Cmd {
			return router.Push(routes.Quiz(session.Selector{}))
		}},
		{Label: "Choose Category", Action: func() tea.Cmd {
			return router.Push(routes.Categories())
		}},
		{Label: "History", Action: func() tea.Cmd {
			return router.Push(routes.History())
		}},
		{Label: "", Action: func() tea.Cmd {
			h.faults.Toggle()
			h.refreshLabels()
			return nil
		}},
		{Label: "", Action: h.account},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	h.refreshLabels()
	return h
}

func (h *HomeScreen) account() tea.Cmd {
	if h.auth.Current() == nil {
		return router.Reset(h.routes.Login())
	}
	h.confirmLogout = true
	return nil
}

func (h *HomeScreen) refreshLabels() {
	mode := "Off"
	if h.faults.Enabled() {
		mode = "On"
	}
	h.menu.SetLabel(itemTestMode, "Test Mode: "+mode)

	if h.auth.Current() == nil {
		h.menu.SetLabel(itemAccount, "Login")
	} else {
		h.menu.SetLabel(itemAccount, "Logout")
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) HandlesEscape() bool {
	return h.confirmLogout
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmLogout {
		return []layout.KeyHint{
			{Key: "Y", Description: "Logout"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.confirmLogout {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			switch kmsg.String() {
			case "y", "Y":
				h.confirmLogout = false
				h.auth.Logout()
				return h, router.Reset(h.routes.Login())
			case "n", "N", "esc":
				h.confirmLogout = false
			}
		}
		return h, nil
	}

	h.refreshLabels()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 44 {
		cw = 44
	}
	h.refreshLabels()

	greeting := "Welcome to Quizly!"
	user := h.auth.Current()
	if user != nil {
		greeting = fmt.Sprintf("Welcome, %s!", user.DisplayName())
	}

	sections := []string{
		theme.Title.Width(cw).Render(greeting),
		theme.Subtitle.Width(cw).Render("Ready to test your knowledge?"),
		"",
	}
	if user != nil {
		sections = append(sections, components.Card(renderStats(user), cw), "")
	}

	if h.confirmLogout {
		prompt := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
			Render("Are you sure you want to logout?") + "\n\n" +
			theme.Hint.Render("y = logout   n = cancel")
		sections = append(sections, components.Card(prompt, cw))
	} else {
		sections = append(sections, h.menu.ButtonView(cw))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return components.Frame(content, width, height)
}

func renderStats(u *auth.User) string {
	last := "No attempts yet"
	if u.LastScore != nil {
		last = fmt.Sprintf("%d", *u.LastScore)
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Last Score: " + last),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Quizzes Taken: %d", u.QuizzesTaken)),
	}
	if u.Guest {
		lines = append(lines, theme.Hint.Render("guest profile"))
	}
	return strings.Join(lines, "\n")
}
