package relay

import "strconv"

const (
	// Boundary is the multipart boundary token.
	Boundary = "frame"

	// ContentType is the stream's response content type.
	ContentType = "multipart/x-mixed-replace; boundary=" + Boundary

	// PartContentType is the content type of every part.
	PartContentType = "image/jpeg"

	// StreamHeader is sent once per client, before any part.
	StreamHeader = "HTTP/1.1 200 OK\r\n" +
		"Content-Type: " + ContentType + "\r\n" +
		"\r\n"

	partHeaderPrefix = "--" + Boundary + "\r\n" +
		"Content-Type: " + PartContentType + "\r\n" +
		"Content-Length: "

	// maxPartHeaderLen covers the prefix, a 20-digit length and the terminator.
	maxPartHeaderLen = len(partHeaderPrefix) + 20 + 4
)

var (
	streamHeader = []byte(StreamHeader)
	partTrailer  = []byte("\r\n")
)

// AppendPartHeader appends the header block for a part carrying n payload
// bytes to dst.
func AppendPartHeader(dst []byte, n int) []byte {
	dst = append(dst, partHeaderPrefix...)
	dst = strconv.AppendInt(dst, int64(n), 10)

	return append(dst, "\r\n\r\n"...)
}
