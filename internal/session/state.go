package session

import (
	"fmt"
	"time"

	"github.com/abhisek/quizly/internal/quiz"
)

// Phase represents the current phase of a quiz session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseActive
	PhaseFeedback
	PhaseAdvancing
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseFeedback:
		return "feedback"
	case PhaseAdvancing:
		return "advancing"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Result is the outcome of one question.
type Result int

const (
	ResultCorrect Result = iota
	ResultIncorrect
	ResultNotAttempted
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultIncorrect:
		return "incorrect"
	default:
		return "not_attempted"
	}
}

// AnswerRecord is the single, immutable result recorded for a question.
type AnswerRecord struct {
	QuestionID string
	Result     Result

	// Selected is the chosen option index, or -1 when time ran out.
	Selected int

	// Elapsed is how long the question was on screen before the result.
	Elapsed time.Duration
}

// Failure describes why a session entered PhaseFailed.
type Failure struct {
	Kind    quiz.Kind
	Message string
}

// Recoverable reports whether the failure can be retried in place.
func (f Failure) Recoverable() bool {
	return quiz.Recoverable(f.Kind)
}

// State is the complete state of one quiz session. It is only ever changed
// through Apply.
type State struct {
	// Questions is the session's private copy of the fetched questions.
	Questions []quiz.Question

	// CurrentIndex is the index of the question being asked.
	CurrentIndex int

	// TimeRemaining is the seconds left for the current question.
	TimeRemaining int

	// Answers holds one record per processed question, in order.
	Answers []AnswerRecord

	Phase Phase

	// Budget is the per-question time budget in seconds.
	Budget int

	// Failure is set in PhaseFailed.
	Failure *Failure

	// Outcome is set once the session completes.
	Outcome *Outcome
}

// NewState returns a session waiting for its questions.
func NewState(budget int) State {
	if budget < 1 {
		budget = 1
	}
	return State{Phase: PhaseLoading, Budget: budget, TimeRemaining: budget}
}

// Current returns the question being asked, if any.
func (s State) Current() (quiz.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return quiz.Question{}, false
	}
	switch s.Phase {
	case PhaseActive, PhaseFeedback, PhaseAdvancing:
		return s.Questions[s.CurrentIndex], true
	}
	return quiz.Question{}, false
}

// LastAnswer returns the most recent record.
func (s State) LastAnswer() (AnswerRecord, bool) {
	if len(s.Answers) == 0 {
		return AnswerRecord{}, false
	}
	return s.Answers[len(s.Answers)-1], true
}

// Score is the number of correct answers so far.
func (s State) Score() int {
	n := 0
	for _, a := range s.Answers {
		if a.Result == ResultCorrect {
			n++
		}
	}
	return n
}

// CheckInvariants returns an error describing the first broken invariant.
func (s State) CheckInvariants() error {
	switch s.Phase {
	case PhaseActive, PhaseFeedback, PhaseAdvancing:
		if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
			return fmt.Errorf("%s: index %d out of range [0,%d)", s.Phase, s.CurrentIndex, len(s.Questions))
		}
	}
	switch s.Phase {
	case PhaseActive:
		if len(s.Answers) != s.CurrentIndex {
			return fmt.Errorf("active: %d answers at index %d", len(s.Answers), s.CurrentIndex)
		}
		if s.TimeRemaining < 0 || s.TimeRemaining > s.Budget {
			return fmt.Errorf("active: time remaining %d outside [0,%d]", s.TimeRemaining, s.Budget)
		}
	case PhaseFeedback, PhaseAdvancing:
		if len(s.Answers) != s.CurrentIndex+1 {
			return fmt.Errorf("%s: %d answers at index %d", s.Phase, len(s.Answers), s.CurrentIndex)
		}
	case PhaseComplete:
		if len(s.Answers) != len(s.Questions) {
			return fmt.Errorf("complete: %d answers for %d questions", len(s.Answers), len(s.Questions))
		}
		if s.Outcome == nil {
			return fmt.Errorf("complete without outcome")
		}
	case PhaseFailed:
		if s.Failure == nil {
			return fmt.Errorf("failed without failure")
		}
	}
	if len(s.Answers) > len(s.Questions) {
		return fmt.Errorf("%d answers exceed %d questions", len(s.Answers), len(s.Questions))
	}
	return nil
}
