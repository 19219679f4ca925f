// Package coro implements suspendable computations driven forward one step at
// a time, with no scheduler or event loop.
//
// A Coroutine is built from an ordinary function that receives an Awaiter;
// calling the Awaiter suspends the body until the awaited value exists. The
// body runs on a dedicated goroutine but only ever executes while a caller is
// inside Step, so control flow stays cooperative and deterministic: each Step
// either completes with a value, terminates with a failure, or parks at a
// suspension point, and control returns to the caller in every case.
//
// The usual way to consume a coroutine is through Deferred, which wraps it in
// a deferred.Deferred and drives it the minimum number of steps needed for
// the current result, if any, to become observable. When the coroutine
// parks on a pending awaitable, a continuation registered on that awaitable
// resumes driving the moment it fires.
//
// # Usage
//
//	d := deferred.New()
//	c := coro.New(func(await coro.Awaiter) (any, error) {
//	    greeting, err := await(d)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return greeting.(string) + ", world", nil
//	})
//
//	cd := c.Deferred() // not fired yet: d is pending
//	_ = d.Callback("hello")
//	// cd has now fired with "hello, world".
package coro
