package asynctest

import (
	"github.com/ndg63276/twisted/pkg/deferred"
	"github.com/ndg63276/twisted/pkg/failure"
)

// Awaitable is an asynchronous computation whose current state can be
// observed through a Deferred. *deferred.Deferred satisfies it directly;
// *coro.Coroutine satisfies it by wrapping itself on first observation, which
// drives it the minimum single step needed to answer whether a result exists.
type Awaitable interface {
	Deferred() *deferred.Deferred
}

type state int

const (
	statePending state = iota
	stateSucceeded
	stateFailed
)

// Result is a snapshot of a computation's state at the moment of one
// observation: pending, succeeded with a value, or failed with a capture. A
// Result is immutable; a later completion is visible only to a later
// observation, never retroactively.
type Result struct {
	state state
	value any
	fail  *failure.Failure
}

func (r *Result) Pending() bool   { return r.state == statePending }
func (r *Result) Succeeded() bool { return r.state == stateSucceeded }
func (r *Result) Failed() bool    { return r.state == stateFailed }

// Value returns the success value; meaningful only when Succeeded.
func (r *Result) Value() any { return r.value }

// Failure returns the capture; meaningful only when Failed.
func (r *Result) Failure() *failure.Failure { return r.fail }

// Observe takes a non-destructive snapshot of the computation's current
// state. It never advances more than the minimum single step, never blocks,
// and leaves the eventual outcome untouched, so observing any number of times
// before completion changes nothing.
func Observe(c Awaitable) *Result {
	return observe(c, false)
}

// observe registers a recording continuation pair on the computation's
// Deferred. If the pair fires during registration the result already existed;
// otherwise the snapshot is pending and the recorder degrades to a pure
// passthrough, so it neither consumes nor duplicates a completion that
// arrives later.
//
// A consuming observation replaces an existing result with a nil success, so
// each completion is observable at most once through the consuming
// assertions; in particular consuming a failure swallows it.
func observe(c Awaitable, consume bool) *Result {
	d := c.Deferred()

	var res *Result
	registering := true
	d.AddCallbacks(
		func(v any) any {
			if !registering {
				return v
			}
			res = &Result{state: stateSucceeded, value: v}
			if consume {
				return nil
			}
			return v
		},
		func(f *failure.Failure) any {
			if !registering {
				return f
			}
			res = &Result{state: stateFailed, fail: f}
			if consume {
				return nil
			}
			return f
		},
	)
	registering = false

	if res == nil {
		return &Result{state: statePending}
	}
	return res
}
