package errs

import "errors"

// Kind is the caller-facing classification of a failure.
type Kind string

const (
	KindNotFound     Kind = "NotFound"
	KindInvalidState Kind = "InvalidState"
	KindInvalidInput Kind = "InvalidInput"
	KindInternal     Kind = "Internal"
)

// KindOf classifies err by the first sentinel found in its chain.
// For joined errors NotFound wins over InvalidState, which wins over InvalidInput.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
