package store

import (
	"errors"
	"strings"
)

// Kind categorizes store errors.
type Kind string

const (
	// KindIO indicates a filesystem read, write or create failure.
	KindIO Kind = "IO"

	// KindSerialization indicates malformed JSON on read or an encoding failure on write.
	KindSerialization Kind = "SERIALIZATION"

	// KindKeyMismatch indicates a question in a batch disagrees with the target key.
	KindKeyMismatch Kind = "QUESTIONS_DISAGREE"

	// KindInvalidKey indicates a user key that cannot be mapped to a path segment.
	KindInvalidKey Kind = "INVALID_KEY"

	// KindPoisoned indicates a writer faulted while holding the guard.
	KindPoisoned Kind = "LOCK_POISONED"
)

func (k Kind) message() string {
	switch k {
	case KindIO:
		return "io error"
	case KindSerialization:
		return "json error"
	case KindKeyMismatch:
		return "questions must all have the same user and week"
	case KindInvalidKey:
		return "invalid partition key"
	case KindPoisoned:
		return "the store lock has been poisoned"
	default:
		return "store error"
	}
}

// Error is the error type returned by every Store and Guard operation.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Op is the operation that failed: "set", "get", "all", "users", "read", "write".
	Op string

	// Path is the partition key or filesystem path involved, if any.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrIO                = &Error{Kind: KindIO}
	ErrSerialization     = &Error{Kind: KindSerialization}
	ErrQuestionsDisagree = &Error{Kind: KindKeyMismatch}
	ErrInvalidKey        = &Error{Kind: KindInvalidKey}
	ErrPoisoned          = &Error{Kind: KindPoisoned}
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.Path != "" {
			b.WriteString(" ")
			b.WriteString(e.Path)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.message())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Err == nil
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func ioError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

func jsonError(op, path string, err error) *Error {
	return &Error{Kind: KindSerialization, Op: op, Path: path, Err: err}
}
