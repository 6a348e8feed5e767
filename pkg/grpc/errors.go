package grpc

import (
	"errors"
)

var (
	errInternalError = errors.New("internal error")
	errAlreadyBound  = errors.New("health server already bound")
	errUnknownCheck  = errors.New("no health status for service")
)
