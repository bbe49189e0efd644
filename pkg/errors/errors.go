// Package errors provides structured error reporting for the kinetic
// scroll engine.
//
// The engine distinguishes three failure classes. Programming-contract
// violations (KindContract) indicate misuse by the embedding code and are
// meant to surface during development; the engine reports them and carries
// on rather than crashing the host's frame loop. Numerical degeneracies
// (KindNumeric) are reported when the engine falls back to an idle state
// instead of producing NaNs. Detached-state operations (KindDetached) are
// reported only in verbose handlers since they are expected during
// teardown.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindContract indicates a programming-contract violation, such as
	// mutating pixels outside a scrolling activity.
	KindContract
	// KindNumeric indicates a numerical degeneracy the engine recovered
	// from by falling back to idle.
	KindNumeric
	// KindDetached indicates an operation on a disposed position or a
	// detached controller.
	KindDetached
	// KindConfig indicates a tuning configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindNumeric:
		return "numeric"
	case KindDetached:
		return "detached"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ScrollError represents a structured error in the scroll engine.
type ScrollError struct {
	// Op is the operation that failed (e.g., "scroll.Position.SetPixels").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ScrollError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ScrollError) Unwrap() error {
	return e.Err
}

// ContractError builds a KindContract ScrollError from a format string.
func ContractError(op, format string, args ...any) *ScrollError {
	return &ScrollError{Op: op, Kind: KindContract, Err: fmt.Errorf(format, args...)}
}

// NumericError builds a KindNumeric ScrollError from a format string.
func NumericError(op, format string, args ...any) *ScrollError {
	return &ScrollError{Op: op, Kind: KindNumeric, Err: fmt.Errorf(format, args...)}
}

// DetachedError builds a KindDetached ScrollError for an operation on a
// disposed or detached object.
func DetachedError(op, format string, args ...any) *ScrollError {
	return &ScrollError{Op: op, Kind: KindDetached, Err: fmt.Errorf(format, args...)}
}

// ErrorHandler receives errors reported by the scroll engine.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ScrollError)
}
