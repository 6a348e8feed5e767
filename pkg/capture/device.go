package capture

import (
	"io"
	"log"

	"github.com/mfreeman451/camrelay/pkg/models"
)

// Device is an open, configured capture device.
type Device struct {
	rc        io.ReadCloser
	path      string
	width     int
	height    int
	format    PixelFormat
	frameSize int
}

// Read performs one blocking read from the device.
func (d *Device) Read(p []byte) (int, error) {
	return d.rc.Read(p)
}

// FrameSize returns the driver-reported size of one frame in bytes.
func (d *Device) FrameSize() int {
	return d.frameSize
}

// Path returns the device path the handle was opened from.
func (d *Device) Path() string {
	return d.path
}

// Info describes the negotiated device configuration.
func (d *Device) Info() models.DeviceInfo {
	return models.DeviceInfo{
		Path:        d.path,
		Width:       d.width,
		Height:      d.height,
		PixelFormat: d.format.String(),
		FrameSize:   d.frameSize,
	}
}

// Close releases the device.
func (d *Device) Close() error {
	log.Printf("Closing capture device %s", d.path)

	return d.rc.Close()
}
