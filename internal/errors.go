package internal

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrProvider            = errors.New("rate provider error")
	ErrTransport           = errors.New("rate provider unreachable")
	// ErrCacheIO is never fatal: callers log it and carry on without the persisted cache.
	ErrCacheIO = errors.New("rate cache i/o")
)
