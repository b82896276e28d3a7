// Package errors provides a thin wrapper around github.com/cockroachdb/errors,
// giving the rest of the codec a single place to construct and inspect errors
// from. It mirrors the standard library's errors API (New, Is, As) plus the
// cockroachdb Wrap/Wrapf helpers, so call sites don't need to choose between
// two error packages.
package errors

import (
	"github.com/cockroachdb/errors"
)

// New creates a new error from a message, with a captured stack trace.
func New(msg string) error {
	return errors.New(msg)
}

// Newf creates a new error from a format string, with a captured stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
