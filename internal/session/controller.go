package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/timer"
)

// Config holds the controller's timing.
type Config struct {
	// Budget is the per-question time budget in seconds.
	Budget int

	// FeedbackDelay is how long the correctness feedback stays up.
	FeedbackDelay time.Duration

	// TickInterval is the countdown granularity. Default: 1s.
	TickInterval time.Duration

	// FetchTimeout bounds a single question fetch. Zero means no limit.
	FetchTimeout time.Duration
}

// DefaultConfig returns the standard 30s budget and 1s feedback delay.
func DefaultConfig() Config {
	return Config{
		Budget:        timer.DefaultBudget,
		FeedbackDelay: time.Second,
		TickInterval:  time.Second,
		FetchTimeout:  10 * time.Second,
	}
}

// Selector picks which questions a session asks.
type Selector struct {
	CategoryID string
	Difficulty string
}

// FetchResultMsg carries the result of a fetch started by the controller.
type FetchResultMsg struct {
	Attempt   uint64
	Questions []quiz.Question
	Err       error
}

// FeedbackDoneMsg ends the feedback delay it was scheduled for.
type FeedbackDoneMsg struct {
	Token uint64
}

// OutcomeMsg is emitted once when a session completes.
type OutcomeMsg struct {
	SessionID string
	Selector  Selector
	Outcome   Outcome
	Answers   []AnswerRecord
	Questions []quiz.Question
}

// Controller drives a State with the countdown and the question provider.
// It runs entirely on the Bubble Tea update loop.
type Controller struct {
	cfg      Config
	provider quiz.Provider
	selector Selector
	recorder Recorder
	now      func() time.Time

	state     State
	countdown *timer.Countdown
	sessionID string
	attempt   uint64
	feedback  uint64
	asked     time.Time
	cancel    context.CancelFunc
	closed    bool
}

// NewController creates a controller. recorder may be nil.
func NewController(cfg Config, provider quiz.Provider, sel Selector, recorder Recorder) *Controller {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Controller{
		cfg:       cfg,
		provider:  provider,
		selector:  sel,
		recorder:  recorder,
		now:       time.Now,
		state:     NewState(cfg.Budget),
		countdown: timer.New(cfg.TickInterval),
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// SessionID returns the ID of the current attempt.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Selector returns the category/difficulty filter.
func (c *Controller) Selector() Selector {
	return c.selector
}

// TimerRunning reports whether a countdown is live.
func (c *Controller) TimerRunning() bool {
	return c.countdown.Running()
}

// Start begins the first fetch.
func (c *Controller) Start() tea.Cmd {
	c.state = NewState(c.cfg.Budget)
	return c.fetch()
}

// Answer selects an option for the current question.
func (c *Controller) Answer(index int) tea.Cmd {
	return c.dispatch(AnswerSelected{Index: index, Elapsed: c.now().Sub(c.asked)})
}

// Fault forces the session into PhaseFailed.
func (c *Controller) Fault(kind quiz.Kind, message string) tea.Cmd {
	return c.dispatch(Fault{Kind: kind, Message: message})
}

// Retry restarts a failed session.
func (c *Controller) Retry() tea.Cmd {
	return c.dispatch(Retry{})
}

// Close tears the controller down. Pending ticks, feedback timers and
// fetch results are ignored afterwards.
func (c *Controller) Close() {
	c.closed = true
	c.countdown.Cancel()
	c.feedback++
	c.attempt++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Update routes controller-owned messages. handled is false for messages
// the controller does not own.
func (c *Controller) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case FetchResultMsg:
		if c.closed || msg.Attempt != c.attempt {
			return nil, true
		}
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Str("session", c.sessionID).Msg("question fetch failed")
			return c.dispatch(FetchFailed{Err: msg.Err}), true
		}
		return c.dispatch(FetchResolved{Questions: msg.Questions}), true

	case timer.TickMsg:
		if c.closed {
			return nil, true
		}
		ev, next, ok := c.countdown.Handle(msg)
		if !ok {
			return nil, true
		}
		if ev.Kind == timer.EventExpired {
			return c.dispatch(Expired{}), true
		}
		return tea.Batch(c.dispatch(Tick{Remaining: ev.Remaining}), next), true

	case FeedbackDoneMsg:
		if c.closed || msg.Token != c.feedback {
			return nil, true
		}
		return tea.Batch(c.dispatch(FeedbackElapsed{}), c.dispatch(Advance{})), true
	}
	return nil, false
}

// dispatch applies ev and performs the resulting effects.
func (c *Controller) dispatch(ev Event) tea.Cmd {
	if c.closed {
		return nil
	}
	prev := c.state
	next, effects := Apply(prev, ev)
	c.state = next

	c.observe(prev, next)
	if next.Phase == PhaseFailed && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var cmds []tea.Cmd
	for _, e := range effects {
		switch e {
		case EffectStartTimer:
			c.asked = c.now()
			_, cmd := c.countdown.Start(next.Budget)
			cmds = append(cmds, cmd)
		case EffectCancelTimer:
			c.countdown.Cancel()
		case EffectScheduleFeedback:
			c.feedback++
			tok := c.feedback
			cmds = append(cmds, tea.Tick(c.cfg.FeedbackDelay, func(time.Time) tea.Msg {
				return FeedbackDoneMsg{Token: tok}
			}))
		case EffectEmitOutcome:
			out := OutcomeMsg{
				SessionID: c.sessionID,
				Selector:  c.selector,
				Outcome:   *next.Outcome,
				Answers:   append([]AnswerRecord(nil), next.Answers...),
				Questions: quiz.CloneAll(next.Questions),
			}
			cmds = append(cmds, func() tea.Msg { return out })
		case EffectFetch:
			cmds = append(cmds, c.fetch())
		}
	}
	return tea.Batch(cmds...)
}

// observe forwards phase changes and new answers to the recorder.
func (c *Controller) observe(prev, next State) {
	ctx := context.Background()
	if prev.Phase == PhaseLoading && next.Phase == PhaseActive {
		c.recorder.SessionStarted(ctx, c.sessionID, c.selector, len(next.Questions))
	}
	if len(next.Answers) > len(prev.Answers) {
		idx := len(next.Answers) - 1
		c.recorder.AnswerRecorded(ctx, c.sessionID, idx, next.Questions[idx], next.Answers[idx])
	}
	if next.Phase == PhaseComplete && prev.Phase != PhaseComplete {
		c.recorder.SessionEnded(ctx, c.sessionID, c.selector, *next.Outcome)
	}
	if next.Phase == PhaseFailed && prev.Phase != PhaseFailed {
		log.Info().Str("session", c.sessionID).Str("kind", next.Failure.Kind.String()).
			Str("phase", prev.Phase.String()).Msg(next.Failure.Message)
		c.recorder.SessionFailed(ctx, c.sessionID, c.selector, *next.Failure)
	}
}

// fetch starts a new attempt. Results of earlier attempts are dropped.
func (c *Controller) fetch() tea.Cmd {
	if c.cancel != nil {
		c.cancel()
	}
	c.attempt++
	c.sessionID = uuid.New().String()
	attempt := c.attempt

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.cfg.FetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel

	provider := c.provider
	sel := c.selector
	return func() tea.Msg {
		qs, err := provider.Fetch(ctx, sel.CategoryID, sel.Difficulty)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = quiz.TimeoutError("Request timed out", err)
		}
		return FetchResultMsg{Attempt: attempt, Questions: qs, Err: err}
	}
}
