package signup

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

var fieldNames = []string{auth.FieldUsername, auth.FieldEmail, auth.FieldPassword, auth.FieldConfirm}

const (
	focusCreate = iota + 4 // after the four fields
	focusBack
	focusCount
)

type signupResultMsg struct {
	err error
}

// SignupScreen creates a new account.
type SignupScreen struct {
	auth   *auth.Service
	home   func() screen.Screen
	fields []components.TextInput
	focus  int
	errMsg string
	busy   bool
}

var _ screen.Screen = (*SignupScreen)(nil)
var _ screen.KeyHintProvider = (*SignupScreen)(nil)

// New creates a SignupScreen. On success the stack is reset to home.
func New(svc *auth.Service, home func() screen.Screen) *SignupScreen {
	return &SignupScreen{
		auth: svc,
		home: home,
		fields: []components.TextInput{
			components.NewTextInput("Username", "at least 3 characters", false, 32),
			components.NewTextInput("Email", "you@example.com", false, 128),
			components.NewTextInput("Password", "at least 6 characters", true, 64),
			components.NewTextInput("Confirm Password", "repeat your password", true, 64),
		},
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.fields[0].Focus()
}

func (s *SignupScreen) Title() string {
	return "Sign Up"
}

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signupResultMsg:
		s.busy = false
		if msg.err != nil {
			s.showError(msg.err)
			return s, nil
		}
		return s, router.Reset(s.home())

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

	if s.focus < len(s.fields) {
		var cmd tea.Cmd
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SignupScreen) activate() tea.Cmd {
	switch {
	case s.focus < len(s.fields)-1:
		return s.setFocus(s.focus + 1)
	case s.focus == len(s.fields)-1, s.focus == focusCreate:
		return s.submit()
	case s.focus == focusBack:
		return router.Pop()
	}
	return nil
}

func (s *SignupScreen) form() auth.SignupForm {
	return auth.SignupForm{
		Username: s.fields[0].Value(),
		Email:    strings.TrimSpace(s.fields[1].Value()),
		Password: s.fields[2].Value(),
		Confirm:  s.fields[3].Value(),
	}
}

func (s *SignupScreen) submit() tea.Cmd {
	form := s.form()
	if err := form.Validate(); err != nil {
		s.showError(err)
		return nil
	}
	s.showError(nil)
	s.busy = true
	svc := s.auth
	return func() tea.Msg {
		_, err := svc.Signup(context.Background(), form)
		return signupResultMsg{err: err}
	}
}

// showError spreads err over the fields. A nil err clears everything.
func (s *SignupScreen) showError(err error) {
	s.errMsg = ""
	for i, name := range fieldNames {
		s.fields[i].Err = auth.FieldMessage(err, name)
	}
	if err == nil {
		return
	}
	if errors.Is(err, auth.ErrEmailTaken) {
		s.fields[1].Err = err.Error()
		return
	}
	var ve *auth.ValidationError
	if !errors.As(err, &ve) {
		s.errMsg = err.Error()
	}
}

func (s *SignupScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	for i := range s.fields {
		s.fields[i].Blur()
	}
	if f < len(s.fields) {
		return s.fields[f].Focus()
	}
	return nil
}

func (s *SignupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 48 {
		cw = 48
	}

	sections := []string{
		theme.Title.Width(cw).Render("Create Account"),
		"",
	}
	for _, f := range s.fields {
		sections = append(sections, f.View(cw-4))
	}
	sections = append(sections, "")
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg), "")
	}
	if s.busy {
		sections = append(sections, theme.Hint.Render("Creating account..."), "")
	}
	sections = append(sections,
		components.Button("Create Account", s.focus == focusCreate, cw-4),
		components.Button("Back to Login", s.focus == focusBack, cw-4),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
