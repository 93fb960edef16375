package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type accountRepo struct {
	db *sql.DB
}

var _ AccountRepo = (*accountRepo)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *accountRepo) Create(ctx context.Context, acct Account) (*Account, error) {
	acct.Email = normalizeEmail(acct.Email)
	existing, err := r.ByEmail(ctx, acct.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}
	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = time.Now().UTC()
	}

	query, args := builder().
		Insert(AccountsTable.Name).
		Columns("email", "username", "password_hash", "created_at", "quizzes_taken").
		Values(acct.Email, acct.Username, acct.PasswordHash, acct.CreatedAt, 0).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("account id: %w", err)
	}
	acct.ID = int(id)
	acct.LastScore = nil
	acct.QuizzesTaken = 0
	return &acct, nil
}

func (r *accountRepo) ByEmail(ctx context.Context, email string) (*Account, error) {
	t := entsql.Table(AccountsTable.Name)
	query, args := builder().
		Select(t.C("id"), t.C("email"), t.C("username"), t.C("password_hash"),
			t.C("created_at"), t.C("last_score"), t.C("quizzes_taken")).
		From(t).
		Where(entsql.EQ(t.C("email"), normalizeEmail(email))).
		Query()

	var (
		acct      Account
		lastScore sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&acct.ID, &acct.Email,
		&acct.Username, &acct.PasswordHash, &acct.CreatedAt, &lastScore, &acct.QuizzesTaken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	if lastScore.Valid {
		v := int(lastScore.Int64)
		acct.LastScore = &v
	}
	return &acct, nil
}

func (r *accountRepo) RecordResult(ctx context.Context, email string, score int) error {
	query, args := builder().
		Update(AccountsTable.Name).
		Set("last_score", score).
		Add("quizzes_taken", 1).
		Where(entsql.EQ("email", normalizeEmail(email))).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("record result: no account for %q", email)
	}
	return nil
}
