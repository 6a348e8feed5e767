package capture

//go:generate mockgen -destination=mock_capture.go -package=capture github.com/mfreeman451/camrelay/pkg/capture Source

// Source yields one complete compressed frame per Read call.
type Source interface {
	// Read blocks until a frame is available and copies it into p.
	Read(p []byte) (int, error)

	// FrameSize is the buffer size the driver negotiated for a single frame.
	FrameSize() int
}
