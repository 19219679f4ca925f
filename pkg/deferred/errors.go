package deferred

import "errors"

var (
	ErrAlreadyCalled = errors.New("deferred: result already fired")
	ErrNilError      = errors.New("deferred: errback requires a non-nil error")
)
