package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/ui/components"
	"github.com/abhisek/quizly/internal/ui/layout"
	"github.com/abhisek/quizly/internal/ui/theme"
)

// Focus order: the two fields, then the three buttons.
const (
	focusEmail = iota
	focusPassword
	focusLogin
	focusSignup
	focusGuest
	focusCount
)

type loginResultMsg struct {
	user *auth.User
	err  error
}

// LoginScreen collects email and password.
type LoginScreen struct {
	auth     *auth.Service
	home     func() screen.Screen
	signup   func() screen.Screen
	email    components.TextInput
	password components.TextInput
	focus    int
	errMsg   string
	busy     bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. home is shown after a successful login or
// when playing as a guest; signup is pushed from the Sign Up button.
func New(svc *auth.Service, home, signup func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		auth:     svc,
		home:     home,
		signup:   signup,
		email:    components.NewTextInput("Email", "you@example.com", false, 128),
		password: components.NewTextInput("Password", "at least 6 characters", true, 64),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Focus()
}

func (s *LoginScreen) Title() string {
	return "Login"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.busy = false
		if msg.err != nil {
			s.showError(msg.err)
			return s, nil
		}
		return s, router.Replace(s.home())

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % focusCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
		case "enter":
			return s, s.activate()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusEmail:
		s.email, cmd = s.email.Update(msg)
	case focusPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) activate() tea.Cmd {
	switch s.focus {
	case focusEmail:
		return s.setFocus(focusPassword)
	case focusPassword, focusLogin:
		return s.submit()
	case focusSignup:
		return router.Push(s.signup())
	case focusGuest:
		return router.Replace(s.home())
	}
	return nil
}

func (s *LoginScreen) submit() tea.Cmd {
	s.email.Err, s.password.Err, s.errMsg = "", "", ""
	form := auth.LoginForm{
		Email:    strings.TrimSpace(s.email.Value()),
		Password: s.password.Value(),
	}
	if err := form.Validate(); err != nil {
		s.showError(err)
		return nil
	}
	s.busy = true
	svc := s.auth
	return func() tea.Msg {
		user, err := svc.Login(context.Background(), form)
		return loginResultMsg{user: user, err: err}
	}
}

func (s *LoginScreen) showError(err error) {
	s.email.Err = auth.FieldMessage(err, auth.FieldEmail)
	s.password.Err = auth.FieldMessage(err, auth.FieldPassword)
	var ve *auth.ValidationError
	if !errors.As(err, &ve) {
		s.errMsg = err.Error()
	}
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.email.Blur()
	s.password.Blur()
	switch f {
	case focusEmail:
		return s.email.Focus()
	case focusPassword:
		return s.password.Focus()
	}
	return nil
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 48 {
		cw = 48
	}

	sections := []string{
		theme.Title.Width(cw).Render("Welcome back!"),
		theme.Subtitle.Width(cw).Render("Log in to track your scores"),
		"",
		s.email.View(cw - 4),
		s.password.View(cw - 4),
		"",
	}
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg), "")
	}
	if s.busy {
		sections = append(sections, theme.Hint.Render("Logging in..."), "")
	}
	sections = append(sections,
		components.Button("Login", s.focus == focusLogin, cw-4),
		components.Button("Sign Up", s.focus == focusSignup, cw-4),
		components.Button("Play as Guest", s.focus == focusGuest, cw-4),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
