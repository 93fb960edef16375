// Package auth manages local player profiles: sign-up, login and the
// per-profile score summary shown on the home screen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizly/internal/store"
)

var (
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by Signup for an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrNotLoggedIn is returned by operations that need a current user.
	ErrNotLoggedIn = errors.New("not logged in")
)

// User is the logged-in profile.
type User struct {
	Email        string
	Username     string
	LastScore    *int
	QuizzesTaken int
	Guest        bool
}

// DisplayName returns the username, or the email when there is none.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Service authenticates users against the account store.
type Service struct {
	accounts store.AccountRepo
	cost     int
	current  *User
}

// Option configures a Service.
type Option func(*Service)

// WithHashCost sets the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates an auth service over accounts.
func NewService(accounts store.AccountRepo, opts ...Option) *Service {
	s := &Service{accounts: accounts, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Current returns the logged-in user, or nil.
func (s *Service) Current() *User {
	return s.current
}

// Signup validates the form, creates the account and logs it in.
func (s *Service) Signup(ctx context.Context, form SignupForm) (*User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct, err := s.accounts.Create(ctx, store.Account{
		Email:        form.Email,
		Username:     strings.TrimSpace(form.Username),
		PasswordHash: string(hash),
	})
	if errors.Is(err, store.ErrAccountExists) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	log.Info().Str("email", acct.Email).Msg("account created")
	return s.setCurrent(acct, false), nil
}

// Login checks the password of an existing account. An unknown email is
// accepted and gets a guest profile protected by the given password.
func (s *Service) Login(ctx context.Context, form LoginForm) (*User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	acct, err := s.accounts.ByEmail(ctx, form.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(form.Password)); err != nil {
			log.Warn().Str("email", acct.Email).Msg("login rejected")
			return nil, ErrInvalidCredentials
		}
		log.Info().Str("email", acct.Email).Msg("login")
		return s.setCurrent(acct, false), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct, err = s.accounts.Create(ctx, store.Account{Email: form.Email, PasswordHash: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	log.Info().Str("email", acct.Email).Msg("guest profile created")
	return s.setCurrent(acct, true), nil
}

// Logout clears the current user.
func (s *Service) Logout() {
	if s.current != nil {
		log.Info().Str("email", s.current.Email).Msg("logout")
	}
	s.current = nil
}

// RecordResult stores score as the current user's last score.
func (s *Service) RecordResult(ctx context.Context, score int) error {
	if s.current == nil {
		return ErrNotLoggedIn
	}
	if err := s.accounts.RecordResult(ctx, s.current.Email, score); err != nil {
		return err
	}
	s.current.LastScore = &score
	s.current.QuizzesTaken++
	return nil
}

// Refresh reloads the current user's profile from the store.
func (s *Service) Refresh(ctx context.Context) (*User, error) {
	if s.current == nil {
		return nil, ErrNotLoggedIn
	}
	acct, err := s.accounts.ByEmail(ctx, s.current.Email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		s.current = nil
		return nil, ErrNotLoggedIn
	}
	return s.setCurrent(acct, s.current.Guest), nil
}

func (s *Service) setCurrent(acct *store.Account, guest bool) *User {
	s.current = &User{
		Email:        acct.Email,
		Username:     acct.Username,
		LastScore:    acct.LastScore,
		QuizzesTaken: acct.QuizzesTaken,
		Guest:        guest,
	}
	return s.current
}
