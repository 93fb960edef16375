package session

import (
	"time"

	"github.com/abhisek/quizly/internal/quiz"
)

// Event is an input to Apply.
type Event interface {
	isEvent()
}

// FetchResolved delivers the fetched questions.
type FetchResolved struct {
	Questions []quiz.Question
}

// FetchFailed delivers a fetch error.
type FetchFailed struct {
	Err error
}

// Tick reports the countdown's new remaining seconds.
type Tick struct {
	Remaining int
}

// Expired reports that the countdown reached zero.
type Expired struct{}

// AnswerSelected reports the user picking an option.
type AnswerSelected struct {
	Index   int
	Elapsed time.Duration
}

// FeedbackElapsed reports the end of the feedback display delay.
type FeedbackElapsed struct{}

// Advance moves past an Advancing question.
type Advance struct{}

// Fault forces the session into PhaseFailed.
type Fault struct {
	Kind    quiz.Kind
	Message string
}

// Retry restarts a failed session from Loading.
type Retry struct{}

func (FetchResolved) isEvent()   {}
func (FetchFailed) isEvent()     {}
func (Tick) isEvent()            {}
func (Expired) isEvent()         {}
func (AnswerSelected) isEvent()  {}
func (FeedbackElapsed) isEvent() {}
func (Advance) isEvent()         {}
func (Fault) isEvent()           {}
func (Retry) isEvent()           {}

// Effect is a side effect the caller must perform after a transition.
type Effect int

const (
	EffectStartTimer Effect = iota
	EffectCancelTimer
	EffectScheduleFeedback
	EffectEmitOutcome
	EffectFetch
)

// Apply returns the state that follows s on ev, plus the effects to run.
// Events that are not valid in the current phase leave the state unchanged
// and produce no effects. s is never modified.
func Apply(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Fault:
		return fail(s, ev.Kind, ev.Message)

	case FetchResolved:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		if len(ev.Questions) == 0 {
			return fail(s, quiz.KindContent, "No questions available")
		}
		next := s
		next.Questions = quiz.CloneAll(ev.Questions)
		next.CurrentIndex = 0
		next.Answers = nil
		next.TimeRemaining = s.Budget
		next.Failure = nil
		next.Outcome = nil
		next.Phase = PhaseActive
		return next, []Effect{EffectStartTimer}

	case FetchFailed:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		msg := "Failed to retrieve questions"
		if ev.Err != nil {
			msg = ev.Err.Error()
		}
		return fail(s, quiz.Classify(ev.Err), msg)

	case Tick:
		if s.Phase != PhaseActive || ev.Remaining >= s.TimeRemaining || ev.Remaining < 0 {
			return s, nil
		}
		next := s
		next.TimeRemaining = ev.Remaining
		return next, nil

	case Expired:
		if s.Phase != PhaseActive {
			return s, nil
		}
		next := record(s, AnswerRecord{
			Result:   ResultNotAttempted,
			Selected: -1,
			Elapsed:  time.Duration(s.Budget) * time.Second,
		})
		next.TimeRemaining = 0
		return next, []Effect{EffectCancelTimer, EffectScheduleFeedback}

	case AnswerSelected:
		if s.Phase != PhaseActive {
			return s, nil
		}
		q := s.Questions[s.CurrentIndex]
		if ev.Index < 0 || ev.Index >= len(q.Options) {
			return s, nil
		}
		result := ResultIncorrect
		if q.IsCorrect(ev.Index) {
			result = ResultCorrect
		}
		next := record(s, AnswerRecord{
			Result:   result,
			Selected: ev.Index,
			Elapsed:  ev.Elapsed,
		})
		return next, []Effect{EffectCancelTimer, EffectScheduleFeedback}

	case FeedbackElapsed:
		if s.Phase != PhaseFeedback {
			return s, nil
		}
		next := s
		next.Phase = PhaseAdvancing
		return next, nil

	case Advance:
		if s.Phase != PhaseAdvancing {
			return s, nil
		}
		next := s
		if s.CurrentIndex+1 < len(s.Questions) {
			next.CurrentIndex++
			next.TimeRemaining = s.Budget
			next.Phase = PhaseActive
			return next, []Effect{EffectStartTimer}
		}
		outcome := BuildOutcome(s.Answers, len(s.Questions))
		next.Outcome = &outcome
		next.Phase = PhaseComplete
		return next, []Effect{EffectEmitOutcome}

	case Retry:
		if s.Phase != PhaseFailed {
			return s, nil
		}
		return NewState(s.Budget), []Effect{EffectCancelTimer, EffectFetch}
	}

	return s, nil
}

// record appends the current question's result and enters Feedback.
func record(s State, rec AnswerRecord) State {
	next := s
	rec.QuestionID = s.Questions[s.CurrentIndex].ID
	next.Answers = append(append([]AnswerRecord(nil), s.Answers...), rec)
	next.Phase = PhaseFeedback
	return next
}

func fail(s State, kind quiz.Kind, message string) (State, []Effect) {
	next := s
	next.Phase = PhaseFailed
	next.Failure = &Failure{Kind: kind, Message: message}
	return next, []Effect{EffectCancelTimer}
}
