package asynctest

import (
	"fmt"

	"github.com/ndg63276/twisted/pkg/failure"
)

// TestingT is the minimal surface needed to report an assertion failure;
// *testing.T satisfies it, and so does any recording double. When the
// implementation also provides FailNow (as *testing.T does), a failed
// assertion stops the calling test immediately.
type TestingT interface {
	Errorf(format string, args ...any)
}

type tHelper interface {
	Helper()
}

type failNower interface {
	FailNow()
}

func fail(t TestingT, kind Kind, message string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	err := &AssertionError{Kind: kind, Message: message}
	t.Errorf("%s", err.Error())
	if n, ok := t.(failNower); ok {
		n.FailNow()
	}
}

// SuccessResultOf returns the computation's current success value, unchanged.
// It fails the test if the computation has no result yet (NoCurrentResult) or
// has failed (UnexpectedFailure, with the original traceback embedded so the
// diagnostic is never silently dropped).
//
// Observing a success consumes it: a second consuming observation of the same
// computation sees a nil success.
func SuccessResultOf(t TestingT, c Awaitable) any {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	res := observe(c, true)
	switch {
	case res.Pending():
		fail(t, NoCurrentResult, fmt.Sprintf(
			"success result expected on %s, but the computation has no result (yet)", describe(c)))
		return nil
	case res.Failed():
		fail(t, UnexpectedFailure, fmt.Sprintf(
			"success result expected on %s, found failure result instead:\n%s",
			describe(c), res.Failure().Traceback()))
		return nil
	}
	return res.Value()
}

// SuccessValueOf is SuccessResultOf with a typed return. The assertion also
// fails (UnexpectedResult) when the success value is not of type T.
func SuccessValueOf[T any](t TestingT, c Awaitable) T {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	v := SuccessResultOf(t, c)
	tv, ok := v.(T)
	if !ok {
		var want T
		fail(t, UnexpectedResult, fmt.Sprintf(
			"success result of type %T expected on %s, found %T (%v) instead",
			want, describe(c), v, v))
	}
	return tv
}

// FailureResultOf returns the computation's current failure capture: the
// same instance that was raised, so identity checks against the original
// error keep working. When kinds are given, the capture must match at least
// one of them (compared with errors.Is); otherwise the assertion fails with
// WrongFailureKind, enumerating every expected kind alongside the original
// traceback. It also fails if the computation has no result yet
// (NoCurrentResult) or succeeded (UnexpectedSuccess).
//
// Observing a failure consumes it: the computation is left with a nil
// success, and nothing will re-surface the failure as unhandled.
func FailureResultOf(t TestingT, c Awaitable, kinds ...error) *failure.Failure {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	res := observe(c, true)
	switch {
	case res.Pending():
		fail(t, NoCurrentResult, fmt.Sprintf(
			"failure result expected on %s, but the computation has no result (yet)", describe(c)))
		return nil
	case res.Succeeded():
		fail(t, UnexpectedSuccess, fmt.Sprintf(
			"failure result expected on %s, found success result (%v) instead",
			describe(c), res.Value()))
		return nil
	case !res.Failure().Check(kinds...):
		fail(t, WrongFailureKind, fmt.Sprintf(
			"failure of kind (%s) expected on %s, found %q instead:\n%s",
			kindList(kinds), describe(c), res.Failure().Error(), res.Failure().Traceback()))
		return nil
	}
	return res.Failure()
}

// AssertNoResult fails the test (UnexpectedResult) if the computation already
// has a result, saying whether it was a success or a failure. A pending
// computation passes, and the observation is non-destructive: the eventual
// outcome fires exactly as if AssertNoResult had never been called, no matter
// how many times it was.
//
// One deliberate side effect: a pre-existing failure is still reported as a
// test failure, but is then swallowed (replaced with a nil success) so that
// nothing later re-surfaces it as an unhandled error.
func AssertNoResult(t TestingT, c Awaitable) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	res := observe(c, false)
	switch {
	case res.Succeeded():
		fail(t, UnexpectedResult, fmt.Sprintf(
			"no result expected on %s, found success result (%v) instead",
			describe(c), res.Value()))
	case res.Failed():
		c.Deferred().AddErrback(func(f *failure.Failure) any { return nil })
		fail(t, UnexpectedResult, fmt.Sprintf(
			"no result expected on %s, found failure result instead:\n%s",
			describe(c), res.Failure().Traceback()))
	}
}
