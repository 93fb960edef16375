package home

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/router"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/session"
	"github.com/abhisek/quizly/internal/store"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.title }
func (s *stubScreen) Title() string                          { return s.title }

func testRoutes() Routes {
	return Routes{
		Quiz:       func(session.Selector) screen.Screen { return &stubScreen{title: "Quiz"} },
		Categories: func() screen.Screen { return &stubScreen{title: "Categories"} },
		History:    func() screen.Screen { return &stubScreen{title: "History"} },
		Login:      func() screen.Screen { return &stubScreen{title: "Login"} },
	}
}

func newTestHome(t *testing.T, loggedIn bool) (*HomeScreen, *auth.Service, *faults.Injector) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := auth.NewService(st.AccountRepo(), auth.WithHashCost(bcrypt.MinCost))
	if loggedIn {
		_, err := svc.Signup(context.Background(), auth.SignupForm{
			Username: "ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
		})
		require.NoError(t, err)
	}
	inj := faults.NewInjector(false)
	return New(svc, inj, testRoutes()), svc, inj
}

func selectItem(h *HomeScreen, item int) tea.Cmd {
	for h.menu.Selected < item {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestHomeNavigation(t *testing.T) {
	tests := []struct {
		item int
		want string
	}{
		{itemStart, "Quiz"},
		{itemCategory, "Categories"},
		{itemHistory, "History"},
	}
	for _, tt := range tests {
		h, _, _ := newTestHome(t, true)
		cmd := selectItem(h, tt.item)
		require.NotNil(t, cmd)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok)
		assert.Equal(t, tt.want, msg.Screen.Title())
	}
}

func TestHomeTestModeToggle(t *testing.T) {
	h, _, inj := newTestHome(t, true)
	assert.Contains(t, h.View(100, 40), "Test Mode: Off")

	selectItem(h, itemTestMode)
	assert.True(t, inj.Enabled())
	assert.Contains(t, h.View(100, 40), "Test Mode: On")

	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, inj.Enabled())
}

func TestHomeLogoutConfirm(t *testing.T) {
	h, svc, _ := newTestHome(t, true)

	cmd := selectItem(h, itemAccount)
	assert.Nil(t, cmd)
	assert.True(t, h.HandlesEscape())
	assert.Contains(t, h.View(100, 40), "Are you sure you want to logout?")

	// Cancel keeps the session.
	h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, h.confirmLogout)
	assert.NotNil(t, svc.Current())

	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = h.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Login", msg.Screen.Title())
	assert.Nil(t, svc.Current())
}

func TestHomeGuest(t *testing.T) {
	h, _, _ := newTestHome(t, false)
	view := h.View(100, 40)
	assert.Contains(t, view, "Welcome to Quizly!")
	assert.NotContains(t, view, "Last Score")

	cmd := selectItem(h, itemAccount)
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ResetScreenMsg)
	assert.True(t, ok)
}

func TestHomeShowsProfileStats(t *testing.T) {
	h, svc, _ := newTestHome(t, true)
	assert.Contains(t, h.View(100, 40), "No attempts yet")

	require.NoError(t, svc.RecordResult(context.Background(), 4))
	view := h.View(100, 40)
	assert.Contains(t, view, "Last Score: 4")
	assert.Contains(t, view, "Quizzes Taken: 1")
	assert.Contains(t, view, "Welcome, ada!")
}
