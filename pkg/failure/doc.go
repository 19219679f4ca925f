// Package failure captures errors together with the call stack at the moment
// they were raised, so that diagnostics survive being passed around as plain
// values.
//
// A *Failure is created once with Capture and shared by reference from then
// on; it is never copied or regenerated, which keeps identity comparisons
// against the original failure valid. Capture is idempotent: wrapping an
// existing *Failure returns the same instance.
//
// # Usage
//
//	f := failure.Capture(io.ErrUnexpectedEOF)
//
//	if f.Check(io.ErrUnexpectedEOF, io.EOF) {
//	    log.Println(f.Traceback())
//	}
//
// Check matches the wrapped error against a set of expected kinds using
// errors.Is, so both sentinel errors and wrapped error chains work. An empty
// kind set matches any failure.
package failure
