package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/store"
	"github.com/abhisek/quizly/internal/ui/layout"
)

// Options holds the dependencies the screens are built from.
type Options struct {
	Auth      *auth.Service
	Bank      *quiz.BankProvider
	Questions quiz.Provider
	EventRepo store.EventRepo
	Faults    *faults.Injector
	Session   session.Config

	// SkipSplash starts on login or home instead of the welcome screen.
	SkipSplash bool

	// Play, when set, opens a quiz with this selector right away.
	Play *session.Selector
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	screens *screens
	play    *session.Selector
	width   int
	height  int
}

// newAppModel creates a new AppModel on the first screen for opts.
func newAppModel(opts Options) AppModel {
	if opts.Questions == nil {
		opts.Questions = opts.Bank
	}
	f := &screens{opts: opts}

	var initial screen.Screen
	switch {
	case opts.Play != nil:
		initial = f.home()
	case opts.SkipSplash:
		initial = f.entry()
	default:
		initial = f.welcome()
	}
	return AppModel{
		router:  router.New(initial),
		screens: f,
		play:    opts.Play,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.play != nil {
		cmds = append(cmds, router.Push(m.screens.quiz(*m.play)))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			log.Info().Msg("quit")
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{TestMode: m.screens.opts.Faults.Enabled()}
	if u := m.screens.opts.Auth.Current(); u != nil {
		info.User = u.DisplayName()
		info.LastScore = u.LastScore
	}
	return info
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
