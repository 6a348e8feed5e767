//go:build linux

package capture

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	v4l2BufTypeVideoCapture = 1
	v4l2FieldNone           = 1

	iocWrite     = 1
	iocRead      = 2
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

// v4l2PixFormat mirrors struct v4l2_pix_format.
type v4l2PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  uint32
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   uint32
	Priv         uint32
	Flags        uint32
	YcbcrEnc     uint32
	Quantization uint32
	XferFunc     uint32
}

// v4l2Format mirrors struct v4l2_format. The fmt union holds pointers in
// some of its members, so it starts on a pointer-aligned offset.
type v4l2Format struct {
	Type uint32
	_    [0]uintptr
	Fmt  [200]byte
}

func (f *v4l2Format) pix() *v4l2PixFormat {
	return (*v4l2PixFormat)(unsafe.Pointer(&f.Fmt[0]))
}

func iowr(typ, nr, size uintptr) uintptr {
	return (iocRead|iocWrite)<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNRShift
}

var vidiocSFmt = iowr('V', 5, unsafe.Sizeof(v4l2Format{}))

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))

		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}

// Configure opens the device at path and requests a non-interlaced capture
// format of the given size and pixel format. The returned Device reports the
// frame size the driver settled on, which may differ from width*height.
func Configure(path string, width, height int, format PixelFormat) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errInvalidDimensions)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDeviceUnavailable, path, err)
	}

	var vf v4l2Format

	vf.Type = v4l2BufTypeVideoCapture
	pix := vf.pix()
	pix.Width = uint32(width)
	pix.Height = uint32(height)
	pix.PixelFormat = uint32(format)
	pix.Field = v4l2FieldNone

	if err := ioctl(fd, vidiocSFmt, unsafe.Pointer(&vf)); err != nil {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("%w: VIDIOC_S_FMT %s on %s: %w", ErrUnsupportedFormat, format, path, err)
	}

	if pix.SizeImage == 0 {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("%w: driver reported zero frame size for %s", ErrUnsupportedFormat, path)
	}

	if int(pix.Width) != width || int(pix.Height) != height || PixelFormat(pix.PixelFormat) != format {
		log.Printf("Device %s negotiated %dx%d %s (requested %dx%d %s)",
			path, pix.Width, pix.Height, PixelFormat(pix.PixelFormat), width, height, format)
	}

	log.Printf("Configured %s: %dx%d %s, frame size %d bytes",
		path, pix.Width, pix.Height, PixelFormat(pix.PixelFormat), pix.SizeImage)

	return &Device{
		rc:        os.NewFile(uintptr(fd), path),
		path:      path,
		width:     int(pix.Width),
		height:    int(pix.Height),
		format:    PixelFormat(pix.PixelFormat),
		frameSize: int(pix.SizeImage),
	}, nil
}
