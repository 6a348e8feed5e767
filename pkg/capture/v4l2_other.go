//go:build !linux

package capture

import "fmt"

// Configure is not supported outside Linux.
func Configure(path string, width, height int, format PixelFormat) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errInvalidDimensions)
	}

	return nil, fmt.Errorf("%w: %s (%s): %w", ErrDeviceUnavailable, path, format, ErrUnsupportedPlatform)
}
