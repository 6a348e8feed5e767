package capture

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDevice(t *testing.T) {
	rc := &closeTracker{Reader: strings.NewReader("jpegdata")}
	dev := &Device{
		rc:        rc,
		path:      "/dev/video99",
		width:     1280,
		height:    720,
		format:    PixelFormatMJPEG,
		frameSize: 4096,
	}

	var src Source = dev

	assert.Equal(t, 4096, src.FrameSize())

	buf := make([]byte, src.FrameSize())
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(buf[:n]))

	info := dev.Info()
	assert.Equal(t, "/dev/video99", info.Path)
	assert.Equal(t, "MJPG", info.PixelFormat)
	assert.Equal(t, 4096, info.FrameSize)

	require.NoError(t, dev.Close())
	assert.True(t, rc.closed)
}
