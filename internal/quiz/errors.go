package quiz

import (
	"context"
	"errors"
	"strings"
)

// Kind classifies a failure for display.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindContent
	KindTimeout
)

// Kinds lists every error kind in menu order.
var Kinds = []Kind{KindNetwork, KindTimeout, KindContent, KindUnknown}

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindContent:
		return "content"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ParseKind maps a name back to a Kind. Unrecognized names are KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "network":
		return KindNetwork
	case "content":
		return KindContent
	case "timeout":
		return KindTimeout
	default:
		return KindUnknown
	}
}

// Error is a quiz failure tagged with its kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NetworkError reports a transport or storage fault.
func NetworkError(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// ContentError reports a valid response with no usable questions.
func ContentError(msg string) *Error {
	return &Error{Kind: KindContent, Message: msg}
}

// TimeoutError reports an operation that did not finish in time.
func TimeoutError(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: msg, Err: err}
}

// UnknownError wraps anything else.
func UnknownError(msg string, err error) *Error {
	return &Error{Kind: KindUnknown, Message: msg, Err: err}
}

// Classify maps an arbitrary error to exactly one Kind. A tagged *Error
// wins; otherwise the message is inspected.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network"):
		return KindNetwork
	case strings.Contains(msg, "questions"):
		return KindContent
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return KindTimeout
	}
	return KindUnknown
}

// Recoverable reports whether the kind can be retried in place without
// leaving the quiz screen.
func Recoverable(k Kind) bool {
	return k == KindContent
}

// Presentation is the user-facing rendering of an error kind.
type Presentation struct {
	Title   string
	Message string
	Icon    string
}

// Present returns the title, message and icon for a kind.
func Present(k Kind) Presentation {
	switch k {
	case KindNetwork:
		return Presentation{
			Title:   "Connection Error",
			Message: "Please check your internet connection and try again.",
			Icon:    "🌐",
		}
	case KindContent:
		return Presentation{
			Title:   "Quiz Content Error",
			Message: "Unable to load quiz questions. Please try again later.",
			Icon:    "📝",
		}
	case KindTimeout:
		return Presentation{
			Title:   "Request Timeout",
			Message: "The server is taking too long to respond. Please try again.",
			Icon:    "⏱️",
		}
	default:
		return Presentation{
			Title:   "Unexpected Error",
			Message: "Something went wrong. Please try again.",
			Icon:    "⚠️",
		}
	}
}
