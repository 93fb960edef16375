// Package faults forces quiz sessions into their failure states on demand.
// It backs the Test Controls overlay and is inert unless test mode is on.
package faults

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/quizly/internal/quiz"
)

// ErrDisabled is returned by Trigger while test mode is off.
var ErrDisabled = errors.New("faults: test mode is disabled")

// Scenario is one injectable failure.
type Scenario struct {
	Kind    quiz.Kind
	Label   string
	Message string
}

// Scenarios lists the failures offered by the Test Controls overlay.
var Scenarios = []Scenario{
	{Kind: quiz.KindNetwork, Label: "Network Error", Message: "Unable to connect to the server"},
	{Kind: quiz.KindTimeout, Label: "Timeout Error", Message: "Request timed out after 10 seconds"},
	{Kind: quiz.KindContent, Label: "Content Error", Message: "No questions available for this category"},
	{Kind: quiz.KindUnknown, Label: "Unknown Error", Message: "An unexpected error occurred"},
}

// ScenarioFor returns the scenario for kind.
func ScenarioFor(kind quiz.Kind) Scenario {
	for _, s := range Scenarios {
		if s.Kind == kind {
			return s
		}
	}
	return Scenario{Kind: kind, Label: "Unknown Error", Message: "An unexpected error occurred"}
}

// Target receives injected faults. session.Controller implements it.
type Target interface {
	Fault(kind quiz.Kind, message string) tea.Cmd
}

// Injector gates fault injection behind the test-mode toggle.
type Injector struct {
	enabled bool
}

// NewInjector returns an injector with test mode set to enabled.
func NewInjector(enabled bool) *Injector {
	return &Injector{enabled: enabled}
}

// Enabled reports whether test mode is on.
func (i *Injector) Enabled() bool {
	return i != nil && i.enabled
}

// SetEnabled turns test mode on or off.
func (i *Injector) SetEnabled(on bool) {
	i.enabled = on
	log.Info().Bool("enabled", on).Msg("test mode")
}

// Toggle flips test mode and returns the new value.
func (i *Injector) Toggle() bool {
	i.SetEnabled(!i.enabled)
	return i.enabled
}

// Trigger forces target into the failure described by sc.
func (i *Injector) Trigger(target Target, sc Scenario) (tea.Cmd, error) {
	if !i.Enabled() {
		return nil, ErrDisabled
	}
	if target == nil {
		return nil, fmt.Errorf("faults: no active session to fail with %s", sc.Kind)
	}
	log.Warn().Str("kind", sc.Kind.String()).Msg("injecting fault: " + sc.Message)
	return target.Fault(sc.Kind, sc.Message), nil
}
