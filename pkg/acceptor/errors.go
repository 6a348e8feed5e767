package acceptor

import "errors"

var (
	// ErrBindFailed is returned when the port cannot be bound.
	ErrBindFailed = errors.New("bind failed")
	// ErrListenFailed is returned when the bound socket cannot listen.
	ErrListenFailed = errors.New("listen failed")

	errInvalidPort = errors.New("invalid port")
)
