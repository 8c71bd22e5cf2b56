package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidInput             = errors.New("invalid input")
	ErrInvalidConfig            = errors.New("invalid configuration")
	ErrDictionaryLoad           = errors.New("dictionary load failed")
	ErrMissingMandatoryPosition = errors.New("missing mandatory position")
	ErrBudgetExceeded           = errors.New("length budget exceeded")
	ErrStoreUnavailable         = errors.New("store unavailable")
)

// DictionaryLoadError reports why a dictionary source could not be loaded.
// It unwraps to both ErrDictionaryLoad and the underlying cause.
type DictionaryLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DictionaryLoadError) Error() string {
	msg := "load dictionary"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DictionaryLoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDictionaryLoad}
	}
	return []error{ErrDictionaryLoad, e.Err}
}

// NewDictionaryLoadError builds a DictionaryLoadError with a formatted reason.
func NewDictionaryLoadError(source string, err error, format string, args ...any) error {
	return &DictionaryLoadError{
		Source: source,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
