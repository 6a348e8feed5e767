package capture

// PixelFormat is a V4L2 FourCC pixel format code.
type PixelFormat uint32

// FourCC packs four characters into a PixelFormat, least significant byte first.
func FourCC(a, b, c, d byte) PixelFormat {
	return PixelFormat(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

var (
	// PixelFormatMJPEG is V4L2_PIX_FMT_MJPEG.
	PixelFormatMJPEG = FourCC('M', 'J', 'P', 'G')
	// PixelFormatJPEG is V4L2_PIX_FMT_JPEG.
	PixelFormatJPEG = FourCC('J', 'P', 'E', 'G')
)

func (f PixelFormat) String() string {
	return string([]byte{
		byte(f),
		byte(f >> 8),
		byte(f >> 16),
		byte(f >> 24),
	})
}
