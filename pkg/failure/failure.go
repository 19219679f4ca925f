package failure

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Failure couples an error with a rendering of the call stack captured at the
// moment the error was raised. A Failure is created once and shared by
// reference wherever the same failure is reported, so identity comparisons
// against the original always succeed.
type Failure struct {
	err   error
	stack string
}

// Capture wraps err in a Failure carrying the current call stack. If err is
// already a *Failure it is returned unchanged rather than re-wrapped, which
// preserves both the original capture site and the instance identity.
// Capture(nil) returns nil.
func Capture(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{err: err, stack: renderStack(2)}
}

// Error implements the error interface, reporting the wrapped error's text.
func (f *Failure) Error() string {
	return f.err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (f *Failure) Unwrap() error {
	return f.err
}

// Check reports whether the wrapped error matches any of the given kinds,
// compared with errors.Is. An empty kind set matches every failure.
func (f *Failure) Check(kinds ...error) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, kind := range kinds {
		if errors.Is(f.err, kind) {
			return true
		}
	}
	return false
}

// Traceback renders the capture-time stack together with the error text. The
// output is deterministic for a given call path and is never truncated, so it
// can be embedded verbatim in assertion messages.
func (f *Failure) Traceback() string {
	var b strings.Builder
	b.WriteString("traceback (most recent call first):\n")
	b.WriteString(f.stack)
	fmt.Fprintf(&b, "error: %v\n", f.err)
	return b.String()
}

// renderStack formats the caller's stack, dropping skip frames plus the
// runtime.Callers frame itself.
func renderStack(skip int) string {
	pc := make([]uintptr, 64)
	n := runtime.Callers(skip+1, pc)
	if n == 0 {
		return "\t(no stack available)\n"
	}
	frames := runtime.CallersFrames(pc[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "\t%s\n\t\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
