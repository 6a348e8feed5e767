package relay

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/textproto"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameSource returns frames of the listed sizes, then (0, io.EOF). With no
// sizes it produces full frames forever.
type frameSource struct {
	mu        sync.Mutex
	frameSize int
	sizes     []int
	reads     int
}

func (f *frameSource) FrameSize() int {
	return f.frameSize
}

func (f *frameSource) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reads++

	n := f.frameSize

	if f.sizes != nil {
		if f.reads > len(f.sizes) {
			return 0, io.EOF
		}

		n = f.sizes[f.reads-1]
	}

	if n <= 0 {
		return 0, nil
	}

	for i := range p[:n] {
		p[i] = byte(f.reads)
	}

	return n, nil
}

func (f *frameSource) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.reads
}

type part struct {
	contentType string
	payload     []byte
}

// streamReader parses the relay's output the way an HTTP client would.
type streamReader struct {
	br *bufio.Reader
	tp *textproto.Reader
}

func newStreamReader(t *testing.T, r io.Reader) *streamReader {
	t.Helper()

	br := bufio.NewReader(r)

	resp, err := http.ReadResponse(br, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "HTTP/1.1", resp.Proto)

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/x-mixed-replace", mediaType)
	require.Equal(t, Boundary, params["boundary"])

	body := bufio.NewReader(resp.Body)

	return &streamReader{br: body, tp: textproto.NewReader(body)}
}

// next reads one part. It returns io.EOF once the connection is closed
// cleanly between parts.
func (s *streamReader) next(t *testing.T) (part, error) {
	t.Helper()

	line, err := s.tp.ReadLine()
	if err != nil {
		return part{}, err
	}

	require.Equal(t, "--"+Boundary, line)

	hdr, err := s.tp.ReadMIMEHeader()
	require.NoError(t, err)

	n, err := strconv.Atoi(hdr.Get("Content-Length"))
	require.NoError(t, err)

	payload := make([]byte, n)
	_, err = io.ReadFull(s.br, payload)
	require.NoError(t, err)

	trailer := make([]byte, 2)
	_, err = io.ReadFull(s.br, trailer)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", string(trailer))

	return part{contentType: hdr.Get("Content-Type"), payload: payload}, nil
}

func (s *streamReader) all(t *testing.T) []part {
	t.Helper()

	var parts []part

	for {
		p, err := s.next(t)
		if errors.Is(err, io.EOF) {
			return parts
		}

		require.NoError(t, err)

		parts = append(parts, p)
	}
}
