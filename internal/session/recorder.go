package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/store"
)

// Recorder observes session progress. Implementations must not block the
// update loop for long and must not fail the session.
type Recorder interface {
	SessionStarted(ctx context.Context, sessionID string, sel Selector, total int)
	AnswerRecorded(ctx context.Context, sessionID string, index int, q quiz.Question, rec AnswerRecord)
	SessionEnded(ctx context.Context, sessionID string, sel Selector, out Outcome)
	SessionFailed(ctx context.Context, sessionID string, sel Selector, f Failure)
}

type nopRecorder struct{}

func (nopRecorder) SessionStarted(context.Context, string, Selector, int)                    {}
func (nopRecorder) AnswerRecorded(context.Context, string, int, quiz.Question, AnswerRecord) {}
func (nopRecorder) SessionEnded(context.Context, string, Selector, Outcome)                  {}
func (nopRecorder) SessionFailed(context.Context, string, Selector, Failure)                 {}

// EventRecorder persists session progress to the event store.
type EventRecorder struct {
	repo  store.EventRepo
	email string
}

// NewEventRecorder returns a recorder that tags events with email.
func NewEventRecorder(repo store.EventRepo, email string) *EventRecorder {
	return &EventRecorder{repo: repo, email: email}
}

func (r *EventRecorder) SessionStarted(ctx context.Context, sessionID string, sel Selector, total int) {
	r.append(ctx, store.SessionEventData{
		SessionID:    sessionID,
		Action:       store.ActionStart,
		AccountEmail: r.email,
		CategoryID:   sel.CategoryID,
		Difficulty:   sel.Difficulty,
		Total:        total,
	})
}

func (r *EventRecorder) AnswerRecorded(ctx context.Context, sessionID string, index int, q quiz.Question, rec AnswerRecord) {
	err := r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     sessionID,
		QuestionID:    q.ID,
		QuestionIndex: index,
		SelectedIndex: rec.Selected,
		CorrectIndex:  q.CorrectIndex,
		Outcome:       rec.Result.String(),
		ElapsedMs:     rec.Elapsed.Milliseconds(),
	})
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("persist answer event")
	}
}

func (r *EventRecorder) SessionEnded(ctx context.Context, sessionID string, sel Selector, out Outcome) {
	r.append(ctx, store.SessionEventData{
		SessionID:    sessionID,
		Action:       store.ActionEnd,
		AccountEmail: r.email,
		CategoryID:   sel.CategoryID,
		Difficulty:   sel.Difficulty,
		Total:        out.Total,
		Correct:      out.Correct,
		Incorrect:    out.Incorrect,
		NotAttempted: out.NotAttempted,
	})
}

func (r *EventRecorder) SessionFailed(ctx context.Context, sessionID string, sel Selector, f Failure) {
	r.append(ctx, store.SessionEventData{
		SessionID:    sessionID,
		Action:       store.ActionFailed,
		AccountEmail: r.email,
		CategoryID:   sel.CategoryID,
		Difficulty:   sel.Difficulty,
		ErrorKind:    f.Kind.String(),
		ErrorMessage: f.Message,
	})
}

func (r *EventRecorder) append(ctx context.Context, data store.SessionEventData) {
	if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
		log.Error().Err(err).Str("session", data.SessionID).Str("action", data.Action).Msg("persist session event")
	}
}
