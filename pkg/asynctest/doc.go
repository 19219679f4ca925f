// Package asynctest lets a purely synchronous test inspect the current state
// of an asynchronous computation, without a scheduler, event loop or
// blocking wait, and assert that it has already succeeded with a specific
// value, already failed with an expected error kind, or produced no result
// yet.
//
// A computation is anything observable through a Deferred: a
// *deferred.Deferred itself, or a *coro.Coroutine, which is driven exactly
// one step when first observed. A negative observation is immediately
// authoritative; nothing is polled or retried.
//
// The three assertions are:
//
//   - SuccessResultOf: the computation has succeeded; returns the value
//     unchanged.
//   - FailureResultOf: the computation has failed, optionally with one of a
//     set of expected error kinds; returns the original *failure.Failure, so
//     identity checks against the raised error keep working.
//   - AssertNoResult: the computation has no result yet. Observing is
//     non-destructive: the eventual outcome later fires exactly as if the
//     assertion had never run.
//
// # Usage
//
//	func TestFetch(t *testing.T) {
//	    d := deferred.New()
//	    c := coro.New(func(await coro.Awaiter) (any, error) {
//	        return await(d)
//	    })
//
//	    asynctest.AssertNoResult(t, c)
//
//	    _ = d.Callback("done")
//	    got := asynctest.SuccessResultOf(t, c)
//	    // got == "done"
//	}
//
// Failed assertions are reported through the TestingT with an AssertionError
// carrying a Kind from the taxonomy (NoCurrentResult, UnexpectedSuccess,
// UnexpectedFailure, WrongFailureKind, UnexpectedResult) and a message that
// embeds the original error and its capture-time traceback, so the test log
// alone is enough to debug the failure.
package asynctest
