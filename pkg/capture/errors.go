package capture

import "errors"

var (
	// ErrDeviceUnavailable is returned when the capture device cannot be opened.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	// ErrUnsupportedFormat is returned when the driver rejects the requested format.
	ErrUnsupportedFormat = errors.New("unsupported capture format")
	// ErrUnsupportedPlatform is wrapped by ErrDeviceUnavailable outside Linux.
	ErrUnsupportedPlatform = errors.New("V4L2 capture is only available on linux")

	errInvalidDimensions = errors.New("width and height must be positive")
)
