package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/store"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := session.DefaultConfig()
	cfg.FeedbackDelay = time.Millisecond
	return Options{
		Auth:      auth.NewService(st.AccountRepo(), auth.WithHashCost(bcrypt.MinCost)),
		Bank:      quiz.NewBankProvider(st.BlobStore()),
		EventRepo: st.EventRepo(),
		Faults:    faults.NewInjector(false),
		Session:   cfg,
	}
}

func signIn(t *testing.T, opts Options) {
	t.Helper()
	_, err := opts.Auth.Signup(context.Background(), auth.SignupForm{
		Username: "ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
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
	return []tea.Msg{msg}
}

func TestInitialScreen(t *testing.T) {
	opts := testOptions(t)
	m := newAppModel(opts)
	assert.Equal(t, "", m.router.Active().Title(), "welcome splash has no title")

	opts.SkipSplash = true
	m = newAppModel(opts)
	assert.Equal(t, "Login", m.router.Active().Title())

	signIn(t, opts)
	m = newAppModel(opts)
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestPlayPushesQuiz(t *testing.T) {
	opts := testOptions(t)
	opts.Play = &session.Selector{CategoryID: "science"}
	m := newAppModel(opts)
	require.Equal(t, "Home", m.router.Active().Title())

	var pushed bool
	for _, msg := range drain(m.Init()) {
		if push, ok := msg.(router.PushScreenMsg); ok {
			pushed = true
			assert.Equal(t, "Quiz", push.Screen.Title())
		}
	}
	assert.True(t, pushed)
}

func TestEscPopsNestedScreens(t *testing.T) {
	opts := testOptions(t)
	opts.SkipSplash = true
	signIn(t, opts)
	m := newAppModel(opts)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc at the root does nothing")

	m.router.Push(m.screens.history())
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestEscReachesScreensThatHandleIt(t *testing.T) {
	opts := testOptions(t)
	opts.SkipSplash = true
	signIn(t, opts)
	m := newAppModel(opts)

	q := m.screens.quiz(session.Selector{})
	m.router.Push(q)

	// A loading quiz handles esc itself by leaving.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 2, m.router.Depth())
}

func TestRecordResultUpdatesProfile(t *testing.T) {
	opts := testOptions(t)
	signIn(t, opts)
	m := newAppModel(opts)

	m.screens.recordResult(session.OutcomeMsg{Outcome: session.Outcome{Correct: 4, Total: 5}})
	u := opts.Auth.Current()
	require.NotNil(t, u.LastScore)
	assert.Equal(t, 4, *u.LastScore)
	assert.Equal(t, 1, u.QuizzesTaken)

	info := m.headerInfo()
	assert.Equal(t, "ada", info.User)
	assert.Equal(t, 4, *info.LastScore)
	assert.False(t, info.TestMode)
}

func TestRecordResultWithoutUser(t *testing.T) {
	opts := testOptions(t)
	m := newAppModel(opts)
	m.screens.recordResult(session.OutcomeMsg{Outcome: session.Outcome{Correct: 1, Total: 1}})
	assert.Nil(t, opts.Auth.Current())
}

func TestFooterUsesScreenHints(t *testing.T) {
	opts := testOptions(t)
	opts.SkipSplash = true
	m := newAppModel(opts)

	hints := m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}
