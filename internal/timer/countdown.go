// Package timer provides the per-question countdown.
//
// The countdown never owns a goroutine. Each Start hands back a token and a
// tea.Cmd that delivers one TickMsg; Handle consumes the message and
// schedules the next one. Ticks carrying a token other than the live one are
// dropped, which is what makes Cancel effective and idempotent.
package timer

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultBudget is the per-question time budget in seconds.
const DefaultBudget = 30

// Token identifies one Start call.
type Token uint64

// TickMsg is delivered once per interval while a countdown runs.
type TickMsg struct {
	Token Token
	At    time.Time
}

// EventKind distinguishes regular ticks from expiry.
type EventKind int

const (
	EventTick EventKind = iota
	EventExpired
)

// Event is produced by Handle for a live tick.
type Event struct {
	Kind      EventKind
	Remaining int
	Token     Token
}

// Countdown counts whole seconds down to zero.
type Countdown struct {
	interval  time.Duration
	last      Token
	live      Token
	remaining int
}

// New returns a countdown that ticks every interval. A non-positive interval
// means one second.
func New(interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{interval: interval}
}

// Start begins a new countdown of budget seconds, superseding any running
// one. The returned command delivers the first tick.
func (c *Countdown) Start(budget int) (Token, tea.Cmd) {
	if budget < 1 {
		budget = 1
	}
	c.last++
	c.live = c.last
	c.remaining = budget
	return c.live, c.tick(c.live)
}

// Cancel stops the running countdown. Calling it when nothing runs is a no-op.
func (c *Countdown) Cancel() {
	c.live = 0
}

// Running reports whether a countdown is live.
func (c *Countdown) Running() bool {
	return c.live != 0
}

// Remaining returns the seconds left on the live countdown, or 0.
func (c *Countdown) Remaining() int {
	if c.live == 0 {
		return 0
	}
	return c.remaining
}

// Handle consumes a tick. ok is false for stale or cancelled ticks, which
// must be ignored by the caller. On expiry the countdown stops itself, so at
// most one EventExpired is produced per Start.
func (c *Countdown) Handle(msg TickMsg) (ev Event, next tea.Cmd, ok bool) {
	if c.live == 0 || msg.Token != c.live {
		return Event{}, nil, false
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		tok := c.live
		c.live = 0
		return Event{Kind: EventExpired, Remaining: 0, Token: tok}, nil, true
	}
	return Event{Kind: EventTick, Remaining: c.remaining, Token: c.live}, c.tick(c.live), true
}

func (c *Countdown) tick(tok Token) tea.Cmd {
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{Token: tok, At: t}
	})
}
