package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/timer"
)

type fakeRecorder struct {
	mu      sync.Mutex
	started int
	answers []AnswerRecord
	ended   []Outcome
	failed  []Failure
}

func (r *fakeRecorder) SessionStarted(_ context.Context, _ string, _ Selector, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *fakeRecorder) AnswerRecorded(_ context.Context, _ string, _ int, _ quiz.Question, rec AnswerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, rec)
}

func (r *fakeRecorder) SessionEnded(_ context.Context, _ string, _ Selector, out Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, out)
}

func (r *fakeRecorder) SessionFailed(_ context.Context, _ string, _ Selector, f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, f)
}

func fastConfig(budget int) Config {
	return Config{
		Budget:        budget,
		FeedbackDelay: time.Millisecond,
		TickInterval:  time.Millisecond,
	}
}

func staticProvider(qs []quiz.Question) quiz.Provider {
	return quiz.ProviderFunc(func(context.Context, string, string) ([]quiz.Question, error) {
		return quiz.CloneAll(qs), nil
	})
}

// drain runs cmd and flattens batches into the messages they produce.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds messages back into the controller until nothing is left,
// returning every message that was seen.
func pump(t *testing.T, c *Controller, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := drain(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 1000 {
			t.Fatal("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		if next, handled := c.Update(msg); handled {
			queue = append(queue, drain(next)...)
		}
	}
	return seen
}

func findOutcome(msgs []tea.Msg) (OutcomeMsg, bool) {
	for _, m := range msgs {
		if out, ok := m.(OutcomeMsg); ok {
			return out, true
		}
	}
	return OutcomeMsg{}, false
}

// startActive runs the initial fetch and returns the first tick command.
func startActive(t *testing.T, c *Controller) tea.Cmd {
	t.Helper()
	msgs := drain(c.Start())
	require.Len(t, msgs, 1)
	require.IsType(t, FetchResultMsg{}, msgs[0])
	tick, handled := c.Update(msgs[0])
	require.True(t, handled)
	require.Equal(t, PhaseActive, c.State().Phase)
	require.True(t, c.TimerRunning())
	return tick
}

func TestControllerThreeQuestionFlow(t *testing.T) {
	qs := testQuestions(3)
	rec := &fakeRecorder{}
	c := NewController(fastConfig(2), staticProvider(qs), Selector{CategoryID: "general"}, rec)

	firstTick := startActive(t, c)

	// Q1 correct.
	fb := drain(c.Answer(qs[0].CorrectIndex))
	require.Len(t, fb, 1)
	assert.Equal(t, PhaseFeedback, c.State().Phase)
	assert.False(t, c.TimerRunning())

	// The first question's tick arrives late and must be ignored.
	for _, m := range drain(firstTick) {
		next, handled := c.Update(m)
		assert.True(t, handled)
		assert.Nil(t, next)
	}
	assert.Equal(t, PhaseFeedback, c.State().Phase)

	_, _ = c.Update(fb[0])
	require.Equal(t, PhaseActive, c.State().Phase)
	require.Equal(t, 1, c.State().CurrentIndex)

	// Q2 incorrect.
	fb = drain(c.Answer((qs[1].CorrectIndex + 1) % 4))
	require.Len(t, fb, 1)
	tick, _ := c.Update(fb[0])
	require.Equal(t, 2, c.State().CurrentIndex)

	// Q3 runs out of time.
	msgs := pump(t, c, tick)
	out, ok := findOutcome(msgs)
	require.True(t, ok, "outcome must be emitted")

	assert.Equal(t, Outcome{Correct: 1, Incorrect: 1, NotAttempted: 1, Total: 3}, out.Outcome)
	assert.Equal(t, c.SessionID(), out.SessionID)
	assert.Len(t, out.Answers, 3)
	assert.Equal(t, PhaseComplete, c.State().Phase)
	assert.False(t, c.TimerRunning())

	assert.Equal(t, 1, rec.started)
	assert.Len(t, rec.answers, 3)
	assert.Equal(t, []Outcome{out.Outcome}, rec.ended)
	assert.Empty(t, rec.failed)
}

func TestControllerOutcomeEmittedOnce(t *testing.T) {
	c := NewController(fastConfig(1), staticProvider(testQuestions(1)), Selector{}, nil)
	tick := startActive(t, c)

	msgs := pump(t, c, tick)
	count := 0
	for _, m := range msgs {
		if _, ok := m.(OutcomeMsg); ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, Outcome{NotAttempted: 1, Total: 1}, *c.State().Outcome)
}

func TestControllerFaultCancelsTimer(t *testing.T) {
	rec := &fakeRecorder{}
	c := NewController(fastConfig(30), staticProvider(testQuestions(2)), Selector{}, rec)
	tick := startActive(t, c)

	c.Fault(quiz.KindNetwork, "Unable to connect to the server")
	assert.Equal(t, PhaseFailed, c.State().Phase)
	assert.False(t, c.TimerRunning())
	assert.Equal(t, quiz.KindNetwork, c.State().Failure.Kind)

	// No answer is recorded by a pending tick.
	msgs := pump(t, c, tick)
	_, ok := findOutcome(msgs)
	assert.False(t, ok)
	assert.Empty(t, c.State().Answers)
	require.Len(t, rec.failed, 1)
	assert.Equal(t, "Unable to connect to the server", rec.failed[0].Message)
}

func TestControllerFaultDuringFeedback(t *testing.T) {
	c := NewController(fastConfig(30), staticProvider(testQuestions(2)), Selector{}, nil)
	startActive(t, c)

	fb := drain(c.Answer(0))
	c.Fault(quiz.KindTimeout, "Request timed out after 10 seconds")
	require.Equal(t, PhaseFailed, c.State().Phase)

	// The feedback timer belongs to the abandoned flow.
	next, handled := c.Update(fb[0])
	assert.True(t, handled)
	assert.Nil(t, next)
	assert.Equal(t, PhaseFailed, c.State().Phase)
	assert.Len(t, c.State().Answers, 1)
}

func TestControllerRetryRefetches(t *testing.T) {
	var calls int
	provider := quiz.ProviderFunc(func(context.Context, string, string) ([]quiz.Question, error) {
		calls++
		if calls == 1 {
			return nil, quiz.NetworkError("Failed to retrieve questions", errors.New("dial tcp: refused"))
		}
		return testQuestions(2), nil
	})
	c := NewController(fastConfig(30), provider, Selector{}, nil)

	msgs := drain(c.Start())
	_, _ = c.Update(msgs[0])
	require.Equal(t, PhaseFailed, c.State().Phase)
	assert.Equal(t, quiz.KindNetwork, c.State().Failure.Kind)
	firstID := c.SessionID()

	msgs = drain(c.Retry())
	require.Len(t, msgs, 1)
	assert.Equal(t, PhaseLoading, c.State().Phase)
	assert.NotEqual(t, firstID, c.SessionID())

	_, _ = c.Update(msgs[0])
	assert.Equal(t, PhaseActive, c.State().Phase)
	assert.Len(t, c.State().Questions, 2)
	assert.Equal(t, 2, calls)
}

func TestControllerStaleFetchDropped(t *testing.T) {
	c := NewController(fastConfig(30), staticProvider(testQuestions(2)), Selector{}, nil)

	first := drain(c.Start())
	second := drain(c.Start())

	next, handled := c.Update(first[0])
	assert.True(t, handled)
	assert.Nil(t, next)
	assert.Equal(t, PhaseLoading, c.State().Phase)

	_, _ = c.Update(second[0])
	assert.Equal(t, PhaseActive, c.State().Phase)
}

func TestControllerFetchTimeout(t *testing.T) {
	provider := quiz.ProviderFunc(func(ctx context.Context, _, _ string) ([]quiz.Question, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	cfg := fastConfig(30)
	cfg.FetchTimeout = 5 * time.Millisecond
	c := NewController(cfg, provider, Selector{}, nil)

	msgs := drain(c.Start())
	_, _ = c.Update(msgs[0])

	require.Equal(t, PhaseFailed, c.State().Phase)
	assert.Equal(t, quiz.KindTimeout, c.State().Failure.Kind)
}

func TestControllerEmptyFetchIsRecoverable(t *testing.T) {
	c := NewController(fastConfig(30), staticProvider(nil), Selector{CategoryID: "science"}, nil)

	msgs := drain(c.Start())
	_, _ = c.Update(msgs[0])

	require.Equal(t, PhaseFailed, c.State().Phase)
	assert.Equal(t, quiz.KindContent, c.State().Failure.Kind)
	assert.True(t, c.State().Failure.Recoverable())
	assert.False(t, c.TimerRunning())
}

func TestControllerCloseIgnoresEverything(t *testing.T) {
	c := NewController(fastConfig(30), staticProvider(testQuestions(2)), Selector{}, nil)
	tick := startActive(t, c)
	fetch := drain(c.Start())

	c.Close()
	assert.False(t, c.TimerRunning())

	for _, m := range append(drain(tick), fetch...) {
		next, handled := c.Update(m)
		assert.True(t, handled)
		assert.Nil(t, next)
	}
	assert.Nil(t, c.Answer(0))
	assert.Empty(t, c.State().Answers)
}

func TestControllerIgnoresForeignMessages(t *testing.T) {
	c := NewController(fastConfig(30), staticProvider(testQuestions(1)), Selector{}, nil)
	_, handled := c.Update(timer.TickMsg{Token: 99})
	assert.True(t, handled)

	_, handled = c.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.False(t, handled)
}
