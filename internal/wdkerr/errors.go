// Package wdkerr is the error taxonomy of the wallet boundary. Every error
// that crosses the RPC edge carries exactly one Kind, attached where the
// failure is first constructed or first wrapped and never overwritten by an
// outer handler.
package wdkerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a boundary failure for the caller.
type Kind string

const (
	KindUnknown    Kind = "UNKNOWN"
	KindBadRequest Kind = "BAD_REQUEST"
	// KindManagerInit covers session bring-up and wallet-manager resolution
	// failures.
	KindManagerInit Kind = "WDK_MANAGER_INIT"
	// KindAccountBalances covers failures resolving or operating on a
	// specific account. The name is historical and is used broadly for
	// account-resolution failures.
	KindAccountBalances Kind = "ACCOUNT_BALANCES"
)

// Error is a classified boundary error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs a classified error with no cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches context to err. If err already carries a kind, that kind
// wins; the supplied kind is only used for errors classified here for the
// first time.
func Wrap(kind Kind, message string, err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		kind = classified.Kind
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// Wrapf is Wrap with formatting.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	return Wrap(kind, fmt.Sprintf(format, args...), err)
}

// KindOf returns the kind attached to err, or infers one from the message
// when no kind was ever attached.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return inferKind(err.Error())
}

func inferKind(message string) Kind {
	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, "invalid", "malformed", "required", "must be", "missing"):
		return KindBadRequest
	case containsAny(msg, "wdk", "session", "engine", "not initialized"):
		return KindManagerInit
	case containsAny(msg, "balance", "account"):
		return KindAccountBalances
	default:
		return KindUnknown
	}
}

func containsAny(s string, parts ...string) bool {
	for _, part := range parts {
		if strings.Contains(s, part) {
			return true
		}
	}
	return false
}
