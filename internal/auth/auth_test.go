package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizly/internal/store"
)

func newTestService(t *testing.T) (*Service, store.AccountRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	repo := s.AccountRepo()
	return NewService(repo, WithHashCost(bcrypt.MinCost)), repo
}

func validSignup() SignupForm {
	return SignupForm{Username: "ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1"}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  SignupForm
		field string
		want  error
	}{
		{"empty username", SignupForm{Username: "  ", Email: "a@b.co", Password: "secret1", Confirm: "secret1"}, FieldUsername, ErrUsernameRequired},
		{"short username", SignupForm{Username: "ab", Email: "a@b.co", Password: "secret1", Confirm: "secret1"}, FieldUsername, ErrUsernameTooShort},
		{"missing email", SignupForm{Username: "abc", Password: "secret1", Confirm: "secret1"}, FieldEmail, ErrEmailRequired},
		{"bad email", SignupForm{Username: "abc", Email: "a@b", Password: "secret1", Confirm: "secret1"}, FieldEmail, ErrInvalidEmail},
		{"email with space", SignupForm{Username: "abc", Email: "a b@c.de", Password: "secret1", Confirm: "secret1"}, FieldEmail, ErrInvalidEmail},
		{"missing password", SignupForm{Username: "abc", Email: "a@b.co", Confirm: "x"}, FieldPassword, ErrPasswordRequired},
		{"short password", SignupForm{Username: "abc", Email: "a@b.co", Password: "12345", Confirm: "12345"}, FieldPassword, ErrPasswordTooShort},
		{"missing confirm", SignupForm{Username: "abc", Email: "a@b.co", Password: "secret1"}, FieldConfirm, ErrConfirmRequired},
		{"mismatch", SignupForm{Username: "abc", Email: "a@b.co", Password: "secret1", Confirm: "secret2"}, FieldConfirm, ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.want.Error(), FieldMessage(err, tt.field))
		})
	}

	assert.NoError(t, validSignup().Validate())
}

func TestSignupValidationReportsAllFields(t *testing.T) {
	err := SignupForm{}.Validate()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 4)
	assert.Contains(t, err.Error(), "username: Username is required")
}

func TestLoginValidation(t *testing.T) {
	err := LoginForm{Email: "nope", Password: ""}.Validate()
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	assert.NoError(t, LoginForm{Email: "a@b.co", Password: "x"}.Validate())
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.Nil(t, u.LastScore)
	assert.Equal(t, 0, u.QuizzesTaken)
	assert.Same(t, u, svc.Current())

	svc.Logout()
	assert.Nil(t, svc.Current())

	_, err = svc.Login(ctx, LoginForm{Email: "ADA@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, svc.Current())

	u, err = svc.Login(ctx, LoginForm{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, u.Guest)
	assert.Equal(t, "ada", u.DisplayName())
}

func TestSignupDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	_, err = svc.Signup(ctx, validSignup())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUnknownEmailCreatesGuest(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	u, err := svc.Login(ctx, LoginForm{Email: "guest@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, u.Guest)
	assert.Equal(t, "guest@example.com", u.DisplayName())

	acct, err := repo.ByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	require.NotNil(t, acct)

	// The guest profile is now protected by the first password.
	svc.Logout()
	_, err = svc.Login(ctx, LoginForm{Email: "guest@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRecordResult(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.RecordResult(ctx, 3), ErrNotLoggedIn)

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	require.NoError(t, svc.RecordResult(ctx, 3))
	require.NoError(t, svc.RecordResult(ctx, 5))

	u := svc.Current()
	require.NotNil(t, u.LastScore)
	assert.Equal(t, 5, *u.LastScore)
	assert.Equal(t, 2, u.QuizzesTaken)

	acct, err := repo.ByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, 5, *acct.LastScore)
	assert.Equal(t, 2, acct.QuizzesTaken)

	refreshed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.QuizzesTaken)
}
