package coro

import "errors"

// ErrBadAwaitable reports an await on something that is neither a Deferred
// nor exposes one.
var ErrBadAwaitable = errors.New("coro: awaitable is neither a deferred nor a coroutine")
