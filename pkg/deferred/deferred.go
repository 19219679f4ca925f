package deferred

import (
	"fmt"
	"log/slog"

	"github.com/ndg63276/twisted/pkg/failure"
)

// Callback transforms the current result of a Deferred's chain. The returned
// value becomes the input of the next link; returning an error (including a
// *failure.Failure) switches the chain to the failure path.
type Callback func(v any) any

// Errback handles a failure travelling down the chain. Returning a non-error
// value switches the chain back to the success path; returning the failure
// unchanged passes it along.
type Errback func(f *failure.Failure) any

type link struct {
	cb Callback
	eb Errback
}

// Deferred represents a value that will exist later. Continuations registered
// with AddCallback and friends fire synchronously if the result already
// exists, otherwise exactly once when it arrives, in registration order.
//
// A Deferred is single-threaded and cooperative: all firing happens on the
// caller's stack, there is no locking and no background goroutine.
type Deferred struct {
	called  bool
	result  any // *failure.Failure marks the failure path
	chain   []link
	paused  int
	running bool
	logged  bool
}

func New() *Deferred {
	return &Deferred{}
}

// Succeed returns a Deferred that has already fired with v.
func Succeed(v any) *Deferred {
	d := New()
	_ = d.Callback(v)
	return d
}

// Fail returns a Deferred that has already fired with err. Panics if err is
// nil since a nil error cannot travel the failure path.
func Fail(err error) *Deferred {
	if err == nil {
		panic(ErrNilError)
	}
	d := New()
	_ = d.Errback(err)
	return d
}

// Deferred returns d itself. It exists so that a concrete *Deferred satisfies
// awaitable interfaces shared with coroutines and other computation shapes.
func (d *Deferred) Deferred() *Deferred {
	return d
}

// Called reports whether the Deferred has fired.
func (d *Deferred) Called() bool {
	return d.called
}

// Callback fires the Deferred with a success result. Each Deferred fires at
// most once; a second fire returns ErrAlreadyCalled.
func (d *Deferred) Callback(v any) error {
	return d.fire(v)
}

// Errback fires the Deferred with a failure. A plain error is wrapped with
// failure.Capture; an existing *failure.Failure keeps its identity.
func (d *Deferred) Errback(err error) error {
	if err == nil {
		return ErrNilError
	}
	return d.fire(failure.Capture(err))
}

func (d *Deferred) fire(result any) error {
	if d.called {
		return ErrAlreadyCalled
	}
	d.called = true
	d.result = result
	d.run()
	return nil
}

// AddCallback registers a success continuation; failures pass through.
func (d *Deferred) AddCallback(cb Callback) *Deferred {
	return d.AddCallbacks(cb, nil)
}

// AddErrback registers a failure continuation; successes pass through.
func (d *Deferred) AddErrback(eb Errback) *Deferred {
	return d.AddCallbacks(nil, eb)
}

// AddBoth registers fn on both the success and the failure path.
func (d *Deferred) AddBoth(fn Callback) *Deferred {
	return d.AddCallbacks(fn, func(f *failure.Failure) any { return fn(f) })
}

// AddCallbacks registers a success and a failure continuation as one chain
// link; exactly one of the two runs when the link is reached. A nil handler
// passes the result through unchanged.
func (d *Deferred) AddCallbacks(cb Callback, eb Errback) *Deferred {
	d.chain = append(d.chain, link{cb: cb, eb: eb})
	if d.called {
		d.run()
	}
	return d
}

// run consumes chain links against the current result until the chain is
// exhausted or the chain pauses on a nested Deferred.
func (d *Deferred) run() {
	if d.running {
		return
	}
	d.running = true
	defer func() { d.running = false }()

	for len(d.chain) > 0 {
		if d.paused > 0 {
			return
		}
		ln := d.chain[0]
		d.chain = d.chain[1:]

		var out any
		if f, ok := d.result.(*failure.Failure); ok {
			if ln.eb == nil {
				continue
			}
			out = runHandler(func() any { return ln.eb(f) })
		} else {
			if ln.cb == nil {
				continue
			}
			out = runHandler(func() any { return ln.cb(d.result) })
		}

		// A continuation returning a Deferred pauses the chain until the
		// nested result arrives.
		if inner, ok := out.(*Deferred); ok {
			d.paused++
			inner.AddBoth(func(r any) any {
				d.paused--
				d.result = coerce(r)
				d.run()
				return r
			})
			continue
		}

		d.result = coerce(out)
	}

	d.maybeLogUnhandled()
}

// runHandler converts a panicking continuation into a failure result instead
// of unwinding through the chain.
func runHandler(fn func() any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				out = failure.Capture(err)
			} else {
				out = failure.Capture(fmt.Errorf("deferred: continuation panic: %v", r))
			}
		}
	}()
	return fn()
}

// coerce routes error values onto the failure path.
func coerce(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return failure.Capture(err)
	}
	return v
}

func (d *Deferred) maybeLogUnhandled() {
	if d.logged || d.paused > 0 {
		return
	}
	log := debugLogger
	if log == nil {
		return
	}
	if f, ok := d.result.(*failure.Failure); ok {
		d.logged = true
		log.Warn("unhandled failure in deferred",
			slog.String("deferred", fmt.Sprintf("%p", d)),
			slog.String("traceback", f.Traceback()),
		)
	}
}

// debugLogger, when set, reports failures that reach the end of a chain with
// no errback left to handle them, mirroring the resolved computation still
// carrying an unobserved error.
var debugLogger *slog.Logger

// SetDebugLogger installs (or, with nil, removes) the logger used to report
// unhandled failures. Intended for tests and debugging sessions only.
func SetDebugLogger(l *slog.Logger) {
	debugLogger = l
}
