package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndg63276/twisted/pkg/failure"
)

func TestCapture(t *testing.T) {
	t.Parallel()

	t.Run("wraps error with stack", func(t *testing.T) {
		t.Parallel()

		err := errors.New("bad times")
		f := failure.Capture(err)

		require.NotNil(t, f)
		assert.Equal(t, "bad times", f.Error())
		assert.Same(t, err, f.Unwrap())
	})

	t.Run("idempotent on existing failure", func(t *testing.T) {
		t.Parallel()

		original := failure.Capture(errors.New("once"))
		again := failure.Capture(original)

		assert.Same(t, original, again)
	})

	t.Run("nil error yields nil failure", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, failure.Capture(nil))
	})
}

func TestFailureCheck(t *testing.T) {
	t.Parallel()

	errNotFound := errors.New("not found")
	errTimeout := errors.New("timed out")

	t.Run("empty kind set matches anything", func(t *testing.T) {
		t.Parallel()

		f := failure.Capture(errNotFound)
		assert.True(t, f.Check())
	})

	t.Run("matches listed kind", func(t *testing.T) {
		t.Parallel()

		f := failure.Capture(errNotFound)
		assert.True(t, f.Check(errNotFound))
		assert.True(t, f.Check(errTimeout, errNotFound))
	})

	t.Run("rejects unlisted kind", func(t *testing.T) {
		t.Parallel()

		f := failure.Capture(errNotFound)
		assert.False(t, f.Check(errTimeout))
	})

	t.Run("matches through wrapped chains", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("lookup: %w", errNotFound)
		f := failure.Capture(wrapped)

		assert.True(t, f.Check(errNotFound))
	})
}

func TestFailureErrorsInterop(t *testing.T) {
	t.Parallel()

	errBase := errors.New("base")
	f := failure.Capture(errBase)

	assert.True(t, errors.Is(f, errBase))

	var back *failure.Failure
	require.True(t, errors.As(fmt.Errorf("outer: %w", f), &back))
	assert.Same(t, f, back)
}

func TestFailureTraceback(t *testing.T) {
	t.Parallel()

	f := failure.Capture(errors.New("bad times"))
	tb := f.Traceback()

	assert.Contains(t, tb, "traceback (most recent call first):")
	assert.Contains(t, tb, "error: bad times")
	// The capture site (this test) must appear in the rendered stack.
	assert.Contains(t, tb, "failure_test.TestFailureTraceback")

	// Rendering is stable for the same capture.
	assert.Equal(t, tb, f.Traceback())
}
