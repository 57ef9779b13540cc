// Package diagerr classifies the errors produced by the diagram core so the
// editor can decide what to show the user. Every error that crosses a
// package boundary is either one of the sentinels below or wraps one inside
// an *Error carrying its Kind.
package diagerr

import (
	"errors"
	"fmt"
)

// Kind is the classification of an error for handling purposes.
type Kind int

const (
	// KindValidation is bad input to a graph mutation. Rejected locally.
	KindValidation Kind = iota
	// KindExternalService is a failed AI generation or remote call.
	KindExternalService
	// KindParse is malformed JSON from a generator or a stored document.
	KindParse
	// KindPersistence is a failed save or load.
	KindPersistence
	// KindBusy is a duplicate submission while a request is outstanding.
	KindBusy
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindExternalService:
		return "external service"
	case KindParse:
		return "parse"
	case KindPersistence:
		return "persistence"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions.
var (
	// Graph model
	ErrEmptyID           = errors.New("empty id")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDanglingReference = errors.New("dangling reference")
	ErrNotFound          = errors.New("not found")
	ErrInvalidKind       = errors.New("invalid node kind")
	ErrInvalidParent     = errors.New("parent is not a group")
	ErrCycle             = errors.New("group ancestry cycle")
	ErrTooFewNodes       = errors.New("grouping needs at least two nodes")
	ErrAlreadyGrouped    = errors.New("node already belongs to a group")
	ErrNestedGroup       = errors.New("nested grouping is not supported")

	// Adapters
	ErrMalformedDocument = errors.New("malformed diagram document")
	ErrEmptyPrompt       = errors.New("empty prompt")
	ErrUnavailable       = errors.New("service unavailable")

	// Session
	ErrBusy         = errors.New("request already in progress")
	ErrStaleSession = errors.New("result belongs to a closed session")
)

// Error wraps an error with its classification and the operation that
// produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// New classifies err. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validation wraps err as KindValidation.
func Validation(op string, err error) error { return New(KindValidation, op, err) }

// External wraps err as KindExternalService.
func External(op string, err error) error { return New(KindExternalService, op, err) }

// Parse wraps err as KindParse.
func Parse(op string, err error) error { return New(KindParse, op, err) }

// Persistence wraps err as KindPersistence.
func Persistence(op string, err error) error { return New(KindPersistence, op, err) }

// Busy returns a KindBusy error for op.
func Busy(op string) error { return New(KindBusy, op, ErrBusy) }

// KindOf returns the Kind of the outermost classified error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// UserMessage renders err the way it is shown in the notice line. Parse
// failures are reported like external service failures since the user
// cannot act on the difference.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindValidation:
		return "Invalid change: " + e.Err.Error()
	case KindExternalService, KindParse:
		return "AI service error: " + e.Err.Error()
	case KindPersistence:
		return "Save failed: " + e.Err.Error()
	case KindBusy:
		return "Please wait, a request is still running"
	default:
		return e.Err.Error()
	}
}
