// Package deferred provides a push-based primitive representing a value that
// will exist later, observed through a chain of continuations rather than by
// blocking.
//
// A Deferred fires exactly once, with either a success value (Callback) or a
// failure (Errback). Continuations are registered with AddCallback,
// AddErrback, AddCallbacks and AddBoth; they run synchronously on the firing
// caller's stack, in registration order, and each continuation's return value
// becomes the input of the next one. Returning an error switches the chain to
// the failure path; returning any other value switches it back. Returning
// another *Deferred pauses the chain until the nested result arrives.
//
// Everything is single-threaded and cooperative: there is no goroutine, no
// locking and no blocking wait anywhere in the package. This is what makes a
// Deferred observable from a purely synchronous caller: registering a
// continuation on an already-fired Deferred runs it before the registration
// call returns.
//
// # Usage
//
//	d := deferred.New()
//	d.AddCallback(func(v any) any {
//	    return fmt.Sprintf("got %v", v)
//	}).AddErrback(func(f *failure.Failure) any {
//	    return "recovered: " + f.Error()
//	})
//
//	_ = d.Callback(42) // runs the chain synchronously
//
// Failures travel as *failure.Failure values carrying the stack captured at
// raise time, so an errback at the end of a long chain still sees the
// original diagnostic context.
package deferred
