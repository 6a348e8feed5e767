package relay

import "errors"

var (
	// ErrNegotiationFailed means the HTTP response header could not be sent.
	ErrNegotiationFailed = errors.New("failed to send stream header")
	// ErrReadFailed means the capture source returned an error or no data.
	ErrReadFailed = errors.New("frame read failed")
	// ErrWriteFailed means a write to the client failed.
	ErrWriteFailed = errors.New("client write failed")
	// ErrShortWrite is wrapped by ErrWriteFailed when fewer bytes were written than requested.
	ErrShortWrite = errors.New("short write")

	errEmptyFrame       = errors.New("source returned no data")
	errInvalidFrameSize = errors.New("invalid frame size")
	errListenerClosed   = errors.New("listener closed unexpectedly")
)
