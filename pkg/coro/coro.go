package coro

import (
	"fmt"

	"github.com/ndg63276/twisted/pkg/deferred"
	"github.com/ndg63276/twisted/pkg/failure"
)

// Awaiter suspends the coroutine body until the awaitable produces a result.
// The awaitable must be a *deferred.Deferred or expose one through a
// Deferred() method (another *Coroutine does). The returned error, when
// non-nil, is the awaitable's failure.
type Awaiter func(awaitable any) (any, error)

// Coroutine is a suspendable computation advanced one unit of work at a time.
// The body runs on its own goroutine but only ever executes inside Step, so
// from the caller's point of view everything is synchronous and cooperative.
type Coroutine struct {
	body func(await Awaiter) (any, error)

	resume chan Resume
	yield  chan Outcome

	started bool
	parked  bool
	current any // awaitable of the active suspension
	done    bool
	final   Outcome

	d *deferred.Deferred // lazily created wrapper, at most one per coroutine
}

// New builds a coroutine from fn. Nothing runs until the first Step (or the
// first observation through Deferred). A panic in fn terminates the coroutine
// with a captured failure.
func New(fn func(await Awaiter) (any, error)) *Coroutine {
	return &Coroutine{
		body:   fn,
		resume: make(chan Resume),
		yield:  make(chan Outcome),
	}
}

// Step advances the coroutine by at most one unit of work:
//
//   - the first call starts the body and runs it to its first suspension or
//     to termination, ignoring the input;
//   - while parked at a suspension, a zero Resume re-reports the suspension
//     without advancing, and a value or error Resume feeds the suspension and
//     runs to the next one;
//   - after termination the terminal Outcome is sticky: every further call
//     returns it again without running anything, so a duplicate resume is
//     harmless.
func (c *Coroutine) Step(in Resume) Outcome {
	if c.done {
		return c.final
	}
	if !c.started {
		c.started = true
		go c.run()
		return c.note(<-c.yield)
	}
	// started, not done: the body is parked at a suspension point.
	switch in.mode {
	case resumeObserve:
		return Suspended(c.current)
	default:
		c.parked = false
		c.resume <- in
		return c.note(<-c.yield)
	}
}

func (c *Coroutine) run() {
	c.yield <- func() (out Outcome) {
		defer func() {
			if r := recover(); r != nil {
				out = Errored(recoveredError(r))
			}
		}()
		v, err := c.body(c.await)
		if err != nil {
			return Errored(err)
		}
		return Completed(v)
	}()
}

func (c *Coroutine) await(awaitable any) (any, error) {
	c.yield <- Suspended(awaitable)
	in := <-c.resume
	if in.mode == resumeError {
		return nil, in.err
	}
	return in.value, nil
}

func (c *Coroutine) note(out Outcome) Outcome {
	if out.Kind() == OutcomeSuspended {
		c.parked = true
		c.current = out.Inner()
	} else {
		c.done = true
		c.final = out
	}
	return out
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("coro: body panic: %v", r)
}

// Deferred wraps the coroutine in a Deferred, driving it just far enough to
// answer whether a result already exists. The wrapper is created once and
// cached, so repeated observations share the same continuations and the
// ultimate outcome is recorded exactly once.
//
// Driving works one step at a time: a terminal step fires the wrapper; a
// suspension is checked for an immediate result by the same logic (a fired
// inner Deferred, a finished inner coroutine) and fed straight back in; a
// genuinely pending suspension parks the coroutine with a continuation
// registered on the inner awaitable, which resumes driving when it fires.
func (c *Coroutine) Deferred() *deferred.Deferred {
	if c.d == nil {
		c.d = deferred.New()
		c.drive(Resume{})
	}
	return c.d
}

func (c *Coroutine) drive(in Resume) {
	for {
		out := c.Step(in)
		switch out.Kind() {
		case OutcomeValue:
			_ = c.d.Callback(out.Value())
			return
		case OutcomeError:
			_ = c.d.Errback(out.Failure())
			return
		case OutcomeSuspended:
			inner, err := asDeferred(out.Inner())
			if err != nil {
				// Raise the problem into the body at the await point.
				in = ResumeError(err)
				continue
			}
			inner.AddCallbacks(
				func(v any) any {
					c.drive(ResumeValue(v))
					return nil
				},
				func(f *failure.Failure) any {
					c.drive(ResumeError(f))
					return nil
				},
			)
			return
		}
	}
}

func asDeferred(awaitable any) (*deferred.Deferred, error) {
	if p, ok := awaitable.(interface{ Deferred() *deferred.Deferred }); ok {
		return p.Deferred(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrBadAwaitable, awaitable)
}
