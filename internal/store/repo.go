package store

import (
	"context"
	"errors"
	"time"
)

// BlobStore is a key-value store for small JSON documents.
type BlobStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put creates or replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Session event actions.
const (
	ActionStart  = "start"
	ActionEnd    = "end"
	ActionFailed = "failed"
)

// SessionEventData captures one session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string
	AccountEmail string
	CategoryID   string
	Difficulty   string
	Total        int
	Correct      int
	Incorrect    int
	NotAttempted int
	ErrorKind    string
	ErrorMessage string
}

// AnswerEventData captures the outcome of a single question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	QuestionIndex int
	SelectedIndex int // -1 when the question expired
	CorrectIndex  int
	Outcome       string
	ElapsedMs     int64
}

// SessionRecord is a finished (completed or failed) session as read back
// from the event log.
type SessionRecord struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Action       string
	AccountEmail string
	CategoryID   string
	Difficulty   string
	Total        int
	Correct      int
	Incorrect    int
	NotAttempted int
	ErrorKind    string
	ErrorMessage string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a recorded LLM call.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns up to limit finished sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// RecentLLMRequests returns up to limit LLM calls, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRecord, error)

	// SessionAnswers returns the answer events of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error)
}

// ErrAccountExists is returned when creating an account whose email is taken.
var ErrAccountExists = errors.New("account already exists")

// Account is a local user profile.
type Account struct {
	ID           int
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastScore    *int
	QuizzesTaken int
}

// AccountRepo manages local profiles.
type AccountRepo interface {
	// Create inserts a new account. Returns ErrAccountExists on duplicate email.
	Create(ctx context.Context, acct Account) (*Account, error)

	// ByEmail returns the account, or nil if none exists.
	ByEmail(ctx context.Context, email string) (*Account, error)

	// RecordResult sets the last score and bumps the quiz counter.
	RecordResult(ctx context.Context, email string, score int) error
}
