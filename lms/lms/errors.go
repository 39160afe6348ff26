package lms

import "fmt"

// Kind classifies the errors the LMS core can return, per spec.md §7.
type Kind int

const (
	// KindBadInput covers an unknown parameter set, a wrong-length
	// buffer, an operation on an unpopulated state, or a duplicate
	// generate.
	KindBadInput Kind = iota
	// KindBufferTooSmall means the output buffer cannot hold the
	// serialized public key or signature.
	KindBufferTooSmall
	// KindOutOfPrivateKeys means q_next has reached 2^h; the private
	// key is permanently exhausted.
	KindOutOfPrivateKeys
	// KindAllocFailed means leaf-array allocation failed during
	// generate.
	KindAllocFailed
	// KindVerifyFailed means the signature is inconsistent with the
	// message and public key. It never carries a wrapped cause: which
	// sub-check failed must not leak to the caller.
	KindVerifyFailed
	// KindHashBackend means the underlying hash primitive reported a
	// failure, surfaced verbatim.
	KindHashBackend
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "BAD_INPUT_DATA"
	case KindBufferTooSmall:
		return "BUFFER_TOO_SMALL"
	case KindOutOfPrivateKeys:
		return "OUT_OF_PRIVATE_KEYS"
	case KindAllocFailed:
		return "ALLOC_FAILED"
	case KindVerifyFailed:
		return "VERIFY_FAILED"
	case KindHashBackend:
		return "HASH_BACKEND"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type every exported operation in this package
// returns. Use errors.As to recover it and branch on Kind().
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.msg, e.err.Error())
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Kind reports which of the §7 error kinds this error represents.
func (e *Error) Kind() Kind { return e.kind }

// Unwrap exposes the wrapped cause, if any. KindVerifyFailed errors
// never wrap a cause, by construction, so Unwrap always returns nil for
// them — no sub-check can leak through errors.Is/errors.As chaining.
func (e *Error) Unwrap() error { return e.err }

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrapError(kind Kind, err error, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...), err: err}
}

// errVerifyFailed is the single, detail-free value every verification
// failure path returns, per spec.md §4.6/§7: "VERIFY_FAILED must not
// leak which sub-check failed."
var errVerifyFailed = &Error{kind: KindVerifyFailed, msg: "signature verification failed"}
