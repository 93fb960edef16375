package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/screen"
	"github.com/abhisek/quizly/internal/screens/category"
	"github.com/abhisek/quizly/internal/screens/history"
	"github.com/abhisek/quizly/internal/screens/home"
	"github.com/abhisek/quizly/internal/screens/login"
	quizscreen "github.com/abhisek/quizly/internal/screens/session"
	"github.com/abhisek/quizly/internal/screens/signup"
	"github.com/abhisek/quizly/internal/screens/summary"
	"github.com/abhisek/quizly/internal/screens/welcome"
	"github.com/abhisek/quizly/internal/session"
)

// screens builds every screen from the shared options. Screens refer to
// each other through these methods so no package imports another screen.
type screens struct {
	opts Options
}

func (f *screens) welcome() screen.Screen {
	return welcome.New(f.entry)
}

// entry is home for a signed-in user and login otherwise.
func (f *screens) entry() screen.Screen {
	if f.opts.Auth.Current() != nil {
		return f.home()
	}
	return f.login()
}

func (f *screens) login() screen.Screen {
	return login.New(f.opts.Auth, f.home, f.signup)
}

func (f *screens) signup() screen.Screen {
	return signup.New(f.opts.Auth, f.home)
}

func (f *screens) home() screen.Screen {
	return home.New(f.opts.Auth, f.opts.Faults, home.Routes{
		Quiz:       f.quiz,
		Categories: f.categories,
		History:    f.history,
		Login:      f.login,
	})
}

func (f *screens) categories() screen.Screen {
	return category.New(f.opts.Bank, f.quiz)
}

func (f *screens) history() screen.Screen {
	return history.New(f.opts.EventRepo)
}

func (f *screens) quiz(sel session.Selector) screen.Screen {
	var email string
	if u := f.opts.Auth.Current(); u != nil {
		email = u.Email
	}
	var rec session.Recorder
	if f.opts.EventRepo != nil {
		rec = session.NewEventRecorder(f.opts.EventRepo, email)
	}
	ctrl := session.NewController(f.opts.Session, f.opts.Questions, sel, rec)
	return quizscreen.New(ctrl, quizscreen.Options{
		Faults:     f.opts.Faults,
		Summary:    f.summary,
		OnComplete: f.recordResult,
	})
}

func (f *screens) summary(out session.OutcomeMsg) screen.Screen {
	return summary.New(out, f.quiz)
}

// recordResult updates the signed-in profile with the final score.
func (f *screens) recordResult(out session.OutcomeMsg) {
	err := f.opts.Auth.RecordResult(context.Background(), out.Outcome.Score())
	if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
		log.Error().Err(err).Str("session", out.SessionID).Msg("record result")
	}
}
