package asynctest

import "fmt"

// Kind classifies why an assertion failed.
type Kind string

const (
	// NoCurrentResult: the computation has no result (yet), so nothing could
	// be observed synchronously.
	NoCurrentResult Kind = "no current result"
	// UnexpectedSuccess: a failure was expected but the computation
	// succeeded.
	UnexpectedSuccess Kind = "unexpected success"
	// UnexpectedFailure: a success was expected but the computation failed.
	UnexpectedFailure Kind = "unexpected failure"
	// WrongFailureKind: the computation failed, but not with any of the
	// expected error kinds.
	WrongFailureKind Kind = "wrong failure kind"
	// UnexpectedResult: no result was expected but one exists.
	UnexpectedResult Kind = "unexpected result"
)

// AssertionError is the failure reported to the surrounding test: a kind from
// the taxonomy above plus a message carrying enough rendered context (the
// original error, its traceback, the expected kinds) that the test log is
// self-sufficient for debugging.
type AssertionError struct {
	Kind    Kind
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
