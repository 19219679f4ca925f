package deferred_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndg63276/twisted/pkg/deferred"
	"github.com/ndg63276/twisted/pkg/failure"
)

func TestDebugLoggerReportsUnhandledFailure(t *testing.T) {
	// Not parallel: installs the package-level debug logger.
	var buf bytes.Buffer
	deferred.SetDebugLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer deferred.SetDebugLogger(nil)

	_ = deferred.Fail(errors.New("nobody watching"))

	assert.Contains(t, buf.String(), "unhandled failure in deferred")
	assert.Contains(t, buf.String(), "nobody watching")

	// A handled failure is not reported.
	buf.Reset()
	d := deferred.New()
	d.AddErrback(func(f *failure.Failure) any { return nil })
	require.NoError(t, d.Errback(errors.New("handled")))

	assert.Empty(t, buf.String())
}

func TestCallbackRunsChain(t *testing.T) {
	t.Parallel()

	t.Run("registered before firing", func(t *testing.T) {
		t.Parallel()

		d := deferred.New()
		var got any
		d.AddCallback(func(v any) any {
			got = v
			return v
		})

		require.False(t, d.Called())
		require.NoError(t, d.Callback(42))

		assert.True(t, d.Called())
		assert.Equal(t, 42, got)
	})

	t.Run("registered after firing runs synchronously", func(t *testing.T) {
		t.Parallel()

		d := deferred.Succeed("done")
		var got any
		d.AddCallback(func(v any) any {
			got = v
			return v
		})

		assert.Equal(t, "done", got)
	})

	t.Run("return value feeds the next link", func(t *testing.T) {
		t.Parallel()

		d := deferred.New()
		var got any
		d.AddCallback(func(v any) any {
			return v.(int) * 2
		}).AddCallback(func(v any) any {
			got = v
			return v
		})

		require.NoError(t, d.Callback(21))
		assert.Equal(t, 42, got)
	})

	t.Run("registration order is firing order", func(t *testing.T) {
		t.Parallel()

		d := deferred.New()
		var order []string
		d.AddCallback(func(v any) any {
			order = append(order, "first")
			return v
		})
		d.AddCallback(func(v any) any {
			order = append(order, "second")
			return v
		})

		require.NoError(t, d.Callback(nil))
		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestSingleFire(t *testing.T) {
	t.Parallel()

	d := deferred.Succeed(1)

	assert.ErrorIs(t, d.Callback(2), deferred.ErrAlreadyCalled)
	assert.ErrorIs(t, d.Errback(errors.New("late")), deferred.ErrAlreadyCalled)
}

func TestErrback(t *testing.T) {
	t.Parallel()

	t.Run("nil error is rejected", func(t *testing.T) {
		t.Parallel()

		d := deferred.New()
		assert.ErrorIs(t, d.Errback(nil), deferred.ErrNilError)
		assert.False(t, d.Called())
	})

	t.Run("failure identity is preserved", func(t *testing.T) {
		t.Parallel()

		f := failure.Capture(errors.New("original"))
		d := deferred.New()
		var seen *failure.Failure
		d.AddErrback(func(got *failure.Failure) any {
			seen = got
			return nil
		})

		require.NoError(t, d.Errback(f))
		assert.Same(t, f, seen)
	})

	t.Run("callbacks are skipped on the failure path", func(t *testing.T) {
		t.Parallel()

		d := deferred.Fail(errors.New("boom"))
		called := false
		var seen *failure.Failure
		d.AddCallback(func(v any) any {
			called = true
			return v
		}).AddErrback(func(f *failure.Failure) any {
			seen = f
			return nil
		})

		assert.False(t, called)
		require.NotNil(t, seen)
		assert.Equal(t, "boom", seen.Error())
	})
}

func TestPathSwitching(t *testing.T) {
	t.Parallel()

	t.Run("callback returning error switches to failure path", func(t *testing.T) {
		t.Parallel()

		errBad := errors.New("went bad")
		d := deferred.New()
		var seen *failure.Failure
		d.AddCallback(func(v any) any {
			return errBad
		}).AddErrback(func(f *failure.Failure) any {
			seen = f
			return nil
		})

		require.NoError(t, d.Callback("fine so far"))
		require.NotNil(t, seen)
		assert.True(t, errors.Is(seen, errBad))
	})

	t.Run("errback returning a value switches back to success path", func(t *testing.T) {
		t.Parallel()

		d := deferred.Fail(errors.New("boom"))
		var got any
		d.AddErrback(func(f *failure.Failure) any {
			return "recovered"
		}).AddCallback(func(v any) any {
			got = v
			return v
		})

		assert.Equal(t, "recovered", got)
	})

	t.Run("panicking continuation becomes a failure", func(t *testing.T) {
		t.Parallel()

		errPanic := errors.New("panicked")
		d := deferred.New()
		var seen *failure.Failure
		d.AddCallback(func(v any) any {
			panic(errPanic)
		}).AddErrback(func(f *failure.Failure) any {
			seen = f
			return nil
		})

		require.NoError(t, d.Callback(nil))
		require.NotNil(t, seen)
		assert.True(t, errors.Is(seen, errPanic))
	})
}

func TestChainPausesOnNestedDeferred(t *testing.T) {
	t.Parallel()

	t.Run("resumes when the nested deferred fires", func(t *testing.T) {
		t.Parallel()

		inner := deferred.New()
		d := deferred.New()
		var got any
		d.AddCallback(func(v any) any {
			return inner
		}).AddCallback(func(v any) any {
			got = v
			return v
		})

		require.NoError(t, d.Callback("start"))
		assert.Nil(t, got, "chain must wait for the nested deferred")

		require.NoError(t, inner.Callback("inner result"))
		assert.Equal(t, "inner result", got)
	})

	t.Run("already-fired nested deferred resumes immediately", func(t *testing.T) {
		t.Parallel()

		d := deferred.New()
		var got any
		d.AddCallback(func(v any) any {
			return deferred.Succeed("immediate")
		}).AddCallback(func(v any) any {
			got = v
			return v
		})

		require.NoError(t, d.Callback(nil))
		assert.Equal(t, "immediate", got)
	})

	t.Run("nested failure travels the failure path", func(t *testing.T) {
		t.Parallel()

		errInner := errors.New("inner boom")
		inner := deferred.New()
		d := deferred.New()
		var seen *failure.Failure
		d.AddCallback(func(v any) any {
			return inner
		}).AddErrback(func(f *failure.Failure) any {
			seen = f
			return nil
		})

		require.NoError(t, d.Callback(nil))
		require.NoError(t, inner.Errback(errInner))

		require.NotNil(t, seen)
		assert.True(t, errors.Is(seen, errInner))
	})
}

func TestContinuationAddedDuringRun(t *testing.T) {
	t.Parallel()

	// A continuation registering another continuation on the same deferred
	// must not re-enter the chain; the new link runs in order afterwards.
	d := deferred.New()
	var order []string
	d.AddCallback(func(v any) any {
		order = append(order, "outer")
		d.AddCallback(func(v any) any {
			order = append(order, "inner")
			return v
		})
		return v
	})

	require.NoError(t, d.Callback(nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestResultReplacement(t *testing.T) {
	t.Parallel()

	// An observer consuming the result replaces it for later continuations.
	d := deferred.Succeed("precious")
	d.AddCallback(func(v any) any { return nil })

	var got any = "sentinel"
	d.AddCallback(func(v any) any {
		got = v
		return v
	})

	assert.Nil(t, got)
}

func TestFailPanicsOnNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { deferred.Fail(nil) })
}

func TestDeferredReturnsSelf(t *testing.T) {
	t.Parallel()

	d := deferred.New()
	assert.Same(t, d, d.Deferred())
}

func ExampleDeferred() {
	d := deferred.New()
	d.AddCallback(func(v any) any {
		return fmt.Sprintf("got %v", v)
	}).AddCallback(func(v any) any {
		fmt.Println(v)
		return v
	})

	_ = d.Callback(42)
	// Output: got 42
}
