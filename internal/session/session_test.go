package session

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizly/internal/quiz"
)

func testQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			CategoryID:   "general",
			Difficulty:   quiz.DifficultyEasy,
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % 4,
		}
	}
	return qs
}

func hasEffect(effects []Effect, want Effect) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}

// mustApply applies ev and checks invariants on the result.
func mustApply(t *testing.T, s State, ev Event) (State, []Effect) {
	t.Helper()
	next, effects := Apply(s, ev)
	if err := next.CheckInvariants(); err != nil {
		t.Fatalf("invariant broken after %T: %v", ev, err)
	}
	return next, effects
}

func activeState(t *testing.T, n int) State {
	t.Helper()
	s, effects := mustApply(t, NewState(30), FetchResolved{Questions: testQuestions(n)})
	require.Equal(t, PhaseActive, s.Phase)
	require.True(t, hasEffect(effects, EffectStartTimer))
	return s
}

// finish moves a Feedback state through Advancing.
func finish(t *testing.T, s State) (State, []Effect) {
	t.Helper()
	s, _ = mustApply(t, s, FeedbackElapsed{})
	require.Equal(t, PhaseAdvancing, s.Phase)
	return mustApply(t, s, Advance{})
}

func TestSingleQuestionCorrect(t *testing.T) {
	s := activeState(t, 1)

	s, effects := mustApply(t, s, AnswerSelected{Index: 0})
	assert.Equal(t, PhaseFeedback, s.Phase)
	assert.True(t, hasEffect(effects, EffectCancelTimer))
	assert.True(t, hasEffect(effects, EffectScheduleFeedback))

	s, effects = finish(t, s)
	require.Equal(t, PhaseComplete, s.Phase)
	assert.True(t, hasEffect(effects, EffectEmitOutcome))
	assert.Equal(t, Outcome{Correct: 1, Incorrect: 0, NotAttempted: 0, Total: 1}, *s.Outcome)
}

func TestThreeQuestionScenario(t *testing.T) {
	s := activeState(t, 3)

	// Q1 correct.
	s, _ = mustApply(t, s, AnswerSelected{Index: s.Questions[0].CorrectIndex})
	s, _ = finish(t, s)
	require.Equal(t, PhaseActive, s.Phase)
	require.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, s.Budget, s.TimeRemaining)

	// Q2 incorrect.
	wrong := (s.Questions[1].CorrectIndex + 1) % 4
	s, _ = mustApply(t, s, AnswerSelected{Index: wrong})
	s, _ = finish(t, s)
	require.Equal(t, 2, s.CurrentIndex)

	// Q3 times out.
	s, effects := mustApply(t, s, Expired{})
	assert.True(t, hasEffect(effects, EffectCancelTimer))
	s, _ = finish(t, s)

	require.Equal(t, PhaseComplete, s.Phase)
	assert.Equal(t, Outcome{Correct: 1, Incorrect: 1, NotAttempted: 1, Total: 3}, *s.Outcome)
	assert.Equal(t, []Result{ResultCorrect, ResultIncorrect, ResultNotAttempted},
		[]Result{s.Answers[0].Result, s.Answers[1].Result, s.Answers[2].Result})
	assert.Equal(t, -1, s.Answers[2].Selected)
}

func TestEmptyFetchIsContentError(t *testing.T) {
	s, effects := mustApply(t, NewState(30), FetchResolved{Questions: nil})

	require.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, quiz.KindContent, s.Failure.Kind)
	assert.True(t, s.Failure.Recoverable())
	assert.False(t, hasEffect(effects, EffectStartTimer))
	assert.Empty(t, s.Questions)
}

func TestFetchFailedClassifies(t *testing.T) {
	tests := []struct {
		err  error
		want quiz.Kind
	}{
		{quiz.NetworkError("Failed to retrieve questions", nil), quiz.KindNetwork},
		{quiz.ContentError("No questions available for category: x"), quiz.KindContent},
		{errors.New("request timeout"), quiz.KindTimeout},
		{errors.New("kaboom"), quiz.KindUnknown},
	}
	for _, tt := range tests {
		s, _ := mustApply(t, NewState(30), FetchFailed{Err: tt.err})
		require.Equal(t, PhaseFailed, s.Phase)
		assert.Equal(t, tt.want, s.Failure.Kind, tt.err.Error())
		assert.Equal(t, tt.err.Error(), s.Failure.Message)
	}
}

func TestAnswerRejectedOutsideActive(t *testing.T) {
	s := activeState(t, 2)
	s, _ = mustApply(t, s, AnswerSelected{Index: 1})

	// Second answer and a late expiry are both ignored during feedback.
	again, effects := Apply(s, AnswerSelected{Index: 0})
	assert.Equal(t, s, again)
	assert.Empty(t, effects)

	again, effects = Apply(s, Expired{})
	assert.Equal(t, s, again)
	assert.Empty(t, effects)
	assert.Len(t, again.Answers, 1)
}

func TestAnswerOutOfRangeIgnored(t *testing.T) {
	s := activeState(t, 1)
	for _, idx := range []int{-1, 4, 99} {
		next, effects := Apply(s, AnswerSelected{Index: idx})
		assert.Equal(t, PhaseActive, next.Phase)
		assert.Empty(t, effects)
	}
}

func TestTickIsMonotonic(t *testing.T) {
	s := activeState(t, 1)

	s, _ = mustApply(t, s, Tick{Remaining: 29})
	assert.Equal(t, 29, s.TimeRemaining)

	s, _ = mustApply(t, s, Tick{Remaining: 30})
	assert.Equal(t, 29, s.TimeRemaining, "tick must never increase time")

	s, _ = mustApply(t, s, Tick{Remaining: 10})
	assert.Equal(t, 10, s.TimeRemaining)

	// Ticks outside Active are ignored.
	s, _ = mustApply(t, s, AnswerSelected{Index: 0})
	next, _ := Apply(s, Tick{Remaining: 5})
	assert.Equal(t, s.TimeRemaining, next.TimeRemaining)
}

func TestFaultFromAnyPhase(t *testing.T) {
	single := activeState(t, 1)
	feedback, _ := Apply(single, AnswerSelected{Index: 0})
	advancing, _ := Apply(feedback, FeedbackElapsed{})
	complete, _ := Apply(advancing, Advance{})
	failed, _ := Apply(NewState(30), FetchFailed{Err: errors.New("x")})

	states := map[string]State{
		"loading":   NewState(30),
		"active":    single,
		"feedback":  feedback,
		"advancing": advancing,
		"complete":  complete,
		"failed":    failed,
	}
	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			next, effects := mustApply(t, s, Fault{Kind: quiz.KindNetwork, Message: "Unable to connect to the server"})
			assert.Equal(t, PhaseFailed, next.Phase)
			assert.Equal(t, quiz.KindNetwork, next.Failure.Kind)
			assert.True(t, hasEffect(effects, EffectCancelTimer))
			assert.Equal(t, len(s.Answers), len(next.Answers), "fault must not record an answer")
		})
	}
}

func TestRetryReentersLoading(t *testing.T) {
	s := activeState(t, 2)
	s, _ = mustApply(t, s, AnswerSelected{Index: 0})
	s, _ = mustApply(t, s, Fault{Kind: quiz.KindTimeout, Message: "Request timed out after 10 seconds"})

	s, effects := mustApply(t, s, Retry{})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.True(t, hasEffect(effects, EffectFetch))
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.Failure)

	// Retry is only valid after a failure.
	active := activeState(t, 1)
	next, effects := Apply(active, Retry{})
	assert.Equal(t, active, next)
	assert.Empty(t, effects)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	qs := testQuestions(2)
	s, _ := Apply(NewState(30), FetchResolved{Questions: qs})

	// Controller state is isolated from the provider's slice.
	qs[0].Options[0] = "mutated"
	assert.Equal(t, "A", s.Questions[0].Options[0])

	before := len(s.Answers)
	_, _ = Apply(s, AnswerSelected{Index: 0})
	assert.Equal(t, before, len(s.Answers))
	assert.Equal(t, PhaseActive, s.Phase)
}

func TestStaleFeedbackAndAdvanceIgnored(t *testing.T) {
	s := activeState(t, 1)
	for _, ev := range []Event{FeedbackElapsed{}, Advance{}, FetchResolved{Questions: testQuestions(3)}} {
		next, effects := Apply(s, ev)
		assert.Equal(t, s, next, "%T", ev)
		assert.Empty(t, effects)
	}
}

// Property: for any mix of correct, incorrect and expired answers the
// outcome partitions exactly and the answer count matches.
func TestOutcomePartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(8)
		s := activeState(t, n)
		want := Outcome{Total: n}

		for s.Phase != PhaseComplete {
			require.Equal(t, PhaseActive, s.Phase)
			q := s.Questions[s.CurrentIndex]
			switch rng.Intn(3) {
			case 0:
				s, _ = mustApply(t, s, AnswerSelected{Index: q.CorrectIndex})
				want.Correct++
			case 1:
				s, _ = mustApply(t, s, AnswerSelected{Index: (q.CorrectIndex + 1 + rng.Intn(3)) % 4})
				want.Incorrect++
			default:
				s, _ = mustApply(t, s, Tick{Remaining: rng.Intn(s.Budget)})
				s, _ = mustApply(t, s, Expired{})
				want.NotAttempted++
			}
			s, _ = finish(t, s)
		}

		assert.Equal(t, want, *s.Outcome)
		assert.Len(t, s.Answers, n)
		assert.Equal(t, s.Outcome.Total, s.Outcome.Correct+s.Outcome.Incorrect+s.Outcome.NotAttempted)
	}
}

func TestOutcomeMessages(t *testing.T) {
	tests := []struct {
		out  Outcome
		want string
		pct  float64
	}{
		{Outcome{Correct: 5, Total: 5}, "Perfect Score!", 100},
		{Outcome{Correct: 4, Incorrect: 1, Total: 5}, "Excellent!", 80},
		{Outcome{Correct: 3, Incorrect: 2, Total: 5}, "Good Job!", 60},
		{Outcome{Correct: 2, NotAttempted: 3, Total: 5}, "Not Bad!", 40},
		{Outcome{Correct: 1, Incorrect: 4, Total: 5}, "Keep Practicing!", 20},
		{Outcome{Incorrect: 5, Total: 5}, "Try Again!", 0},
		{Outcome{}, "Try Again!", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.out.Message())
		assert.InDelta(t, tt.pct, tt.out.Percentage(), 0.001)
	}
}
