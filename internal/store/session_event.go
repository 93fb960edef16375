package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the SQLite tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ EventRepo = (*eventRepo)(nil)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "action", "account_email",
			"category_id", "difficulty", "total", "correct", "incorrect",
			"not_attempted", "error_kind", "error_message").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.AccountEmail,
			data.CategoryID, data.Difficulty, data.Total, data.Correct, data.Incorrect,
			data.NotAttempted, data.ErrorKind, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(AnswerEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "question_id", "question_index",
			"selected_index", "correct_index", "outcome", "elapsed_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.QuestionID, data.QuestionIndex,
			data.SelectedIndex, data.CorrectIndex, data.Outcome, data.ElapsedMs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	t := entsql.Table(SessionEventsTable.Name)
	sel := builder().
		Select(t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("action"),
			t.C("account_email"), t.C("category_id"), t.C("difficulty"), t.C("total"),
			t.C("correct"), t.C("incorrect"), t.C("not_attempted"), t.C("error_kind"),
			t.C("error_message")).
		From(t).
		Where(entsql.In(t.C("action"), ActionEnd, ActionFailed)).
		OrderBy(entsql.Desc(t.C("sequence")))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Action,
			&rec.AccountEmail, &rec.CategoryID, &rec.Difficulty, &rec.Total,
			&rec.Correct, &rec.Incorrect, &rec.NotAttempted, &rec.ErrorKind,
			&rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error) {
	t := entsql.Table(AnswerEventsTable.Name)
	query, args := builder().
		Select(t.C("session_id"), t.C("question_id"), t.C("question_index"),
			t.C("selected_index"), t.C("correct_index"), t.C("outcome"), t.C("elapsed_ms")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventData
	for rows.Next() {
		var a AnswerEventData
		if err := rows.Scan(&a.SessionID, &a.QuestionID, &a.QuestionIndex,
			&a.SelectedIndex, &a.CorrectIndex, &a.Outcome, &a.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
