package statestore

import "fmt"

// Error is the error type returned by this package's exported
// operations. Locked distinguishes "another process holds this
// record" from every other failure, so a caller can choose to wait,
// retry elsewhere, or abort instead of treating it as corruption.
type Error struct {
	msg    string
	locked bool
	inner  error
}

func (e *Error) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.inner.Error())
	}
	return e.msg
}

// Locked reports whether this error means the record's lockfile is
// held by another process.
func (e *Error) Locked() bool { return e.locked }

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.inner }

func newError(format string, a ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, a...)}
}

func wrapErrorf(err error, format string, a ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, a...), inner: err}
}
