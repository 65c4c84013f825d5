// Package routeerr defines the error taxonomy shared by every component
// of the discovery engine. It follows errors.ConversionError's
// structured-error shape, trimmed: this domain has no "recover with a
// default value" concept, so only the kind-plus-cause shape survives,
// without any recovery-strategy machinery.
package routeerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the error taxonomy for the discovery engine. An
// "empty result" case is intentionally absent here: finding no
// matching segments is not an error, and is represented instead by a
// successful, empty return value.
type Kind int

const (
	// InvalidInput covers malformed/insufficient data: tracks with fewer
	// than 2 valid points, non-finite coordinates, dedup_overlap_frac
	// outside [0,1], non-positive window_step. min_runs < 1 is not an
	// error: discovery clamps it to 1.
	InvalidInput Kind = iota
	// PathNotFound: BFS terminated without reaching the end segment.
	PathNotFound
	// ReconstructionFailure: the reconstructed path's head isn't the
	// requested start segment.
	ReconstructionFailure
	// PathTooShort: the reconstructed path has fewer nodes than min_length.
	PathTooShort
	// ResourceExhaustion: allocation failure building a KD-tree or a
	// Fréchet matrix. Go's allocator failures surface as-is: no function
	// in this module recovers them or returns an error of this kind.
	ResourceExhaustion
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case PathNotFound:
		return "PathNotFound"
	case ReconstructionFailure:
		return "ReconstructionFailure"
	case PathTooShort:
		return "PathTooShort"
	case ResourceExhaustion:
		return "ResourceExhaustion"
	default:
		return "Unknown"
	}
}

// Error is a taxonomy-tagged error carrying an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a Kind-tagged error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a Kind-tagged error wrapping cause with github.com/pkg/errors
// so a full stack trace is retained on Cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
