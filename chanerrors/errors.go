// Package chanerrors defines the error taxonomy shared by every package in
// this module. Every failure the core can return is one of the Kinds below;
// callers switch on Kind rather than comparing against package-private
// sentinel values, since several packages can produce the same Kind for
// different underlying reasons.
package chanerrors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies a core failure per the taxonomy the external interface
// commits to. Numeric/interface-level codes are assigned by whatever host
// exposes the core; this package only fixes the semantic kind.
type Kind uint8

const (
	// Authentication indicates a signature check failed.
	Authentication Kind = iota + 1

	// InvalidInput indicates a malformed argument, a channel-id mismatch,
	// or a participant/allocation length mismatch.
	InvalidInput

	// OutdatedState indicates the provided version is not strictly
	// greater than the currently registered version.
	OutdatedState

	// Finalized indicates the operation is disallowed because the
	// channel is already concluded.
	Finalized

	// NotFinalized indicates a withdrawal was attempted before the
	// channel reached a terminal state.
	NotFinalized

	// InsufficientFunds indicates an allocation exceeds holdings, or a
	// withdrawal would over-draw.
	InsufficientFunds

	// AlreadyWithdrawn indicates a repeated withdrawal by the same
	// participant.
	AlreadyWithdrawn

	// NotDisputable indicates a dispute was attempted after the
	// challenge window already expired.
	NotDisputable

	// LedgerFailure indicates the downstream transfer/credit subsystem
	// failed; any reservation made for this call must be rolled back.
	LedgerFailure
)

func (k Kind) String() string {
	switch k {
	case Authentication:
		return "authentication"
	case InvalidInput:
		return "invalid_input"
	case OutdatedState:
		return "outdated_state"
	case Finalized:
		return "finalized"
	case NotFinalized:
		return "not_finalized"
	case InsufficientFunds:
		return "insufficient_funds"
	case AlreadyWithdrawn:
		return "already_withdrawn"
	case NotDisputable:
		return "not_disputable"
	case LedgerFailure:
		return "ledger_failure"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across the core's boundary. It
// carries a Kind for programmatic dispatch and a human-readable message for
// logs.
type Error struct {
	Kind Kind
	Msg  string

	// cause is populated only for errors that wrap a downstream failure
	// (LedgerFailure); it carries a stack trace via go-errors so the
	// failure survives into logs even after being wrapped.
	cause error
}

// New constructs an Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs a LedgerFailure Error around a downstream cause,
// preserving a stack trace for the log line that reports it.
func Wrap(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:  LedgerFailure,
		Msg:   fmt.Sprintf(format, args...),
		cause: goerrors.Wrap(cause, 1),
	}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is an *Error of the given Kind. This is the
// idiomatic way for callers to branch on taxonomy membership:
//
//	if chanerrors.Is(err, chanerrors.OutdatedState) { ... }
func Is(err error, kind Kind) bool {
	var ce *Error
	if e, ok := err.(*Error); ok {
		ce = e
	} else {
		return false
	}
	return ce.Kind == kind
}
