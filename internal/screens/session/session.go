package session

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	sess "github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/ui/layout"
)

// Options wires the quiz screen to the rest of the app.
type Options struct {
	// Faults backs the Test Controls overlay. May be nil.
	Faults *faults.Injector

	// Summary builds the results screen shown when the quiz completes.
	Summary func(out sess.OutcomeMsg) screen.Screen

	// OnComplete runs once with the outcome before the results screen.
	OnComplete func(out sess.OutcomeMsg)
}

// Fault boundary buttons.
const (
	buttonTryAgain = iota
	buttonHome
)

// SessionScreen plays one timed quiz.
type SessionScreen struct {
	ctrl *sess.Controller
	opts Options

	cursor       int
	asked        int
	boundary     int
	showControls bool
	confirmQuit  bool
	notice       string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a quiz screen around ctrl.
func New(ctrl *sess.Controller, opts Options) *SessionScreen {
	return &SessionScreen{ctrl: ctrl, opts: opts}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.ctrl.Start()
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

// Close stops the countdown and drops anything still in flight.
func (s *SessionScreen) Close() {
	s.ctrl.Close()
}

func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showControls {
		return []layout.KeyHint{
			{Key: "1-4", Description: "Trigger"},
			{Key: "T", Description: "Close"},
		}
	}

	var hints []layout.KeyHint
	switch state := s.ctrl.State(); state.Phase {
	case sess.PhaseActive:
		hints = []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseFailed:
		if state.Failure.Recoverable() {
			hints = []layout.KeyHint{
				{Key: "Enter", Description: "Retry"},
				{Key: "Esc", Description: "Back"},
			}
		} else {
			hints = []layout.KeyHint{
				{Key: "↑↓", Description: "Choose"},
				{Key: "Enter", Description: "Confirm"},
			}
		}
	default:
		hints = []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	}
	if s.opts.Faults.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Test Controls"})
	}
	return hints
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if cmd, handled := s.ctrl.Update(msg); handled {
		s.syncCursor()
		return s, cmd
	}

	switch msg := msg.(type) {
	case sess.OutcomeMsg:
		return s.handleOutcome(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleOutcome(out sess.OutcomeMsg) (screen.Screen, tea.Cmd) {
	if out.SessionID != s.ctrl.SessionID() {
		return s, nil
	}
	if s.opts.OnComplete != nil {
		s.opts.OnComplete(out)
	}
	if s.opts.Summary == nil {
		return s, router.Pop()
	}
	return s, router.Replace(s.opts.Summary(out))
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return nil
	}

	if s.showControls {
		return s.handleControlsKey(key)
	}
	if key == "t" && s.opts.Faults.Enabled() {
		s.showControls = true
		s.notice = ""
		return nil
	}

	state := s.ctrl.State()
	switch state.Phase {
	case sess.PhaseFailed:
		return s.handleFailedKey(key, state.Failure.Recoverable())
	case sess.PhaseLoading:
		if key == "esc" {
			return router.Pop()
		}
		return nil
	case sess.PhaseActive:
		return s.handleAnswerKey(key, state)
	}

	if key == "esc" && state.Phase != sess.PhaseComplete {
		s.confirmQuit = true
	}
	return nil
}

func (s *SessionScreen) handleAnswerKey(key string, state sess.State) tea.Cmd {
	q, ok := state.Current()
	if !ok {
		return nil
	}
	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx >= len(q.Options) {
			return nil
		}
		s.cursor = idx
		return s.ctrl.Answer(idx)
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "enter", "space":
		return s.ctrl.Answer(s.cursor)
	case "esc":
		s.confirmQuit = true
	}
	return nil
}

func (s *SessionScreen) handleFailedKey(key string, recoverable bool) tea.Cmd {
	if recoverable {
		switch key {
		case "enter", "r":
			return s.retry()
		case "esc":
			return router.Pop()
		}
		return nil
	}

	switch key {
	case "up", "down", "tab", "shift+tab", "k", "j":
		s.boundary = 1 - s.boundary
	case "r":
		return s.retry()
	case "h", "esc":
		return router.Pop()
	case "enter":
		if s.boundary == buttonTryAgain {
			return s.retry()
		}
		return router.Pop()
	}
	return nil
}

func (s *SessionScreen) handleControlsKey(key string) tea.Cmd {
	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx >= len(faults.Scenarios) {
			return nil
		}
		cmd, err := s.opts.Faults.Trigger(s.ctrl, faults.Scenarios[idx])
		if err != nil {
			log.Warn().Err(err).Msg("fault injection refused")
			s.notice = err.Error()
			return nil
		}
		s.showControls = false
		s.boundary = buttonTryAgain
		return cmd
	case "t", "esc":
		s.showControls = false
	}
	return nil
}

func (s *SessionScreen) retry() tea.Cmd {
	s.cursor, s.asked, s.boundary = 0, 0, buttonTryAgain
	log.Debug().Str("session", s.ctrl.SessionID()).Msg("retrying quiz")
	return s.ctrl.Retry()
}

// syncCursor resets the cursor when a new question comes up.
func (s *SessionScreen) syncCursor() {
	if idx := s.ctrl.State().CurrentIndex; idx != s.asked {
		s.asked = idx
		s.cursor = 0
	}
}

func (s *SessionScreen) progressLabel(state sess.State) string {
	return fmt.Sprintf("Question %d/%d", state.CurrentIndex+1, len(state.Questions))
}
