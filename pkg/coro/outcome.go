package coro

import "github.com/ndg63276/twisted/pkg/failure"

// OutcomeKind discriminates the result of a single Step.
type OutcomeKind int

const (
	// OutcomeSuspended means the coroutine reached a suspension point and is
	// waiting on an inner awaitable.
	OutcomeSuspended OutcomeKind = iota
	// OutcomeValue means the coroutine terminated with a value.
	OutcomeValue
	// OutcomeError means the coroutine terminated with a failure.
	OutcomeError
)

// Outcome is the result of advancing a coroutine one step: a terminal value,
// a terminal failure, or a suspension on an inner awaitable.
type Outcome struct {
	kind  OutcomeKind
	value any
	fail  *failure.Failure
	inner any
}

// Completed builds a terminal value outcome.
func Completed(v any) Outcome {
	return Outcome{kind: OutcomeValue, value: v}
}

// Errored builds a terminal failure outcome, capturing err's stack unless it
// already is a *failure.Failure.
func Errored(err error) Outcome {
	return Outcome{kind: OutcomeError, fail: failure.Capture(err)}
}

// Suspended builds a suspension outcome on the given inner awaitable.
func Suspended(inner any) Outcome {
	return Outcome{kind: OutcomeSuspended, inner: inner}
}

func (o Outcome) Kind() OutcomeKind { return o.kind }

// Value returns the terminal value; meaningful only for OutcomeValue.
func (o Outcome) Value() any { return o.value }

// Failure returns the terminal failure; meaningful only for OutcomeError.
func (o Outcome) Failure() *failure.Failure { return o.fail }

// Inner returns the awaitable of a suspension; meaningful only for
// OutcomeSuspended.
func (o Outcome) Inner() any { return o.inner }

type resumeMode int

const (
	resumeObserve resumeMode = iota
	resumeValue
	resumeError
)

// Resume carries the value or error fed back into a coroutine at its
// suspension point. The zero Resume observes without advancing.
type Resume struct {
	mode  resumeMode
	value any
	err   error
}

// ResumeValue feeds a success value into the suspension point.
func ResumeValue(v any) Resume {
	return Resume{mode: resumeValue, value: v}
}

// ResumeError raises an error at the suspension point; the body's await call
// returns it.
func ResumeError(err error) Resume {
	return Resume{mode: resumeError, err: err}
}
