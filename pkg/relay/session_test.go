package relay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/mfreeman451/camrelay/pkg/capture"
	"github.com/mfreeman451/camrelay/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func runSession(ctx context.Context, conn net.Conn, src capture.Source, opts SessionOptions) <-chan SessionResult {
	done := make(chan SessionResult, 1)

	go func() {
		done <- NewSession(conn, src, opts).Run(ctx)
	}()

	return done
}

func waitResult(t *testing.T, done <-chan SessionResult) SessionResult {
	t.Helper()

	select {
	case res := <-done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
		return SessionResult{}
	}
}

func TestSession_TwoFramesThenEmptyRead(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	src := &frameSource{frameSize: 5000, sizes: []int{5000, 5000, 0}}
	done := runSession(context.Background(), server, src, SessionOptions{})

	parts := newStreamReader(t, client).all(t)

	require.Len(t, parts, 2)

	for i, p := range parts {
		assert.Equal(t, "image/jpeg", p.contentType)
		assert.Len(t, p.payload, 5000)
		assert.Equal(t, bytes.Repeat([]byte{byte(i + 1)}, 5000), p.payload)
	}

	res := waitResult(t, done)
	assert.Equal(t, int64(2), res.Frames)
	assert.Equal(t, int64(10000), res.Bytes)
	assert.Equal(t, models.ReasonReadFailed, res.Reason)
	require.ErrorIs(t, res.Err, ErrReadFailed)
	assert.Equal(t, 3, src.readCount())
}

func TestSession_ContentLengthIsBytesRead(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	sizes := []int{100, 4096, 7, 5000}
	src := &frameSource{frameSize: 5000, sizes: sizes}
	done := runSession(context.Background(), server, src, SessionOptions{})

	parts := newStreamReader(t, client).all(t)
	require.Len(t, parts, len(sizes))

	for i, p := range parts {
		assert.Len(t, p.payload, sizes[i])
	}

	res := waitResult(t, done)
	assert.Equal(t, int64(4), res.Frames)
	assert.Equal(t, int64(100+4096+7+5000), res.Bytes)
}

func TestSession_HeaderSentOnce(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	src := &frameSource{frameSize: 64, sizes: []int{64, 64, 64}}
	done := runSession(context.Background(), server, src, SessionOptions{})

	raw, err := io.ReadAll(client)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(raw, []byte(StreamHeader)))
	assert.Equal(t, 1, bytes.Count(raw, []byte("HTTP/1.1 200 OK")))
	assert.Equal(t, 1, bytes.Count(raw, []byte("multipart/x-mixed-replace")))
	assert.Equal(t, 3, bytes.Count(raw, []byte("--frame\r\n")))

	waitResult(t, done)
}

func TestSession_ZeroReadSendsNoPart(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	src := &frameSource{frameSize: 5000, sizes: []int{0}}
	done := runSession(context.Background(), server, src, SessionOptions{})

	raw, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.Equal(t, StreamHeader, string(raw))

	res := waitResult(t, done)
	assert.Equal(t, models.ReasonReadFailed, res.Reason)
	assert.Zero(t, res.Frames)
}

func TestSession_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := capture.NewMockSource(ctrl)
	errDevice := errors.New("device gone")

	gomock.InOrder(
		src.EXPECT().FrameSize().Return(16),
		src.EXPECT().Read(gomock.Len(16)).Return(0, errDevice),
	)

	server, client := net.Pipe()
	defer client.Close()

	done := runSession(context.Background(), server, src, SessionOptions{})

	raw, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.Equal(t, StreamHeader, string(raw))

	res := waitResult(t, done)
	assert.Equal(t, models.ReasonReadFailed, res.Reason)
	require.ErrorIs(t, res.Err, ErrReadFailed)
	require.ErrorIs(t, res.Err, errDevice)
}

func TestSession_ClientGoneBeforeHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: the source must not be touched.
	src := capture.NewMockSource(ctrl)

	server, client := net.Pipe()
	require.NoError(t, client.Close())

	var transitions []State

	res := NewSession(server, src, SessionOptions{
		OnTransition: func(_, to State) { transitions = append(transitions, to) },
	}).Run(context.Background())

	assert.Equal(t, models.ReasonNegotiationFailed, res.Reason)
	require.ErrorIs(t, res.Err, ErrNegotiationFailed)
	require.ErrorIs(t, res.Err, ErrWriteFailed)
	assert.Equal(t, []State{StateClosed}, transitions)
}

func TestSession_ClientDisconnectMidStream(t *testing.T) {
	server, client := net.Pipe()

	src := &frameSource{frameSize: 1024}
	done := runSession(context.Background(), server, src, SessionOptions{})

	sr := newStreamReader(t, client)
	_, err := sr.next(t)
	require.NoError(t, err)

	// Read part of the next frame's header, then drop the connection.
	partial := make([]byte, 5)
	_, err = io.ReadFull(sr.br, partial)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	res := waitResult(t, done)
	assert.Equal(t, models.ReasonWriteFailed, res.Reason)
	require.ErrorIs(t, res.Err, ErrWriteFailed)
	assert.GreaterOrEqual(t, res.Frames, int64(1))
}

// shortWriter accepts at most limit bytes per Write without reporting an error.
type shortWriter struct {
	limit  int
	buf    bytes.Buffer
	closed bool
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		p = p[:w.limit]
	}

	return w.buf.Write(p)
}

func (w *shortWriter) Close() error {
	w.closed = true
	return nil
}

func TestSession_ShortWriteIsFailure(t *testing.T) {
	w := &shortWriter{limit: len(StreamHeader) + 10}
	src := &frameSource{frameSize: 5000}

	res := NewSession(w, src, SessionOptions{}).Run(context.Background())

	assert.Equal(t, models.ReasonWriteFailed, res.Reason)
	require.ErrorIs(t, res.Err, ErrShortWrite)
	assert.Zero(t, res.Frames)
	assert.True(t, w.closed)
	assert.Equal(t, 1, src.readCount())
}

func TestSession_Transitions(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	type edge struct{ from, to State }

	var edges []edge

	src := &frameSource{frameSize: 8, sizes: []int{8}}
	sess := NewSession(server, src, SessionOptions{
		OnTransition: func(from, to State) { edges = append(edges, edge{from, to}) },
	})
	assert.Equal(t, StateNegotiating, sess.State())

	done := make(chan SessionResult, 1)

	go func() { done <- sess.Run(context.Background()) }()

	_, err := io.ReadAll(client)
	require.NoError(t, err)
	waitResult(t, done)

	assert.Equal(t, []edge{
		{StateNegotiating, StateStreaming},
		{StateStreaming, StateClosed},
	}, edges)
	assert.Equal(t, StateClosed, sess.State())

	res := sess.Run(context.Background())
	require.Error(t, res.Err)
}

func TestSession_SleepsAfterEachFrame(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	const interval = 40 * time.Millisecond

	src := &frameSource{frameSize: 8, sizes: []int{8, 8, 0}}
	start := time.Now()
	done := runSession(context.Background(), server, src, SessionOptions{FrameInterval: interval})

	parts := newStreamReader(t, client).all(t)
	require.Len(t, parts, 2)

	waitResult(t, done)
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestSession_CanceledDuringPause(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &countingRecorder{}
	src := &frameSource{frameSize: 8}
	done := runSession(ctx, server, src, SessionOptions{FrameInterval: time.Hour, Recorder: rec})

	sr := newStreamReader(t, client)
	_, err := sr.next(t)
	require.NoError(t, err)

	cancel()

	res := waitResult(t, done)
	assert.Equal(t, models.ReasonCanceled, res.Reason)
	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, int64(1), res.Frames)
	assert.Equal(t, 1, rec.frames)
	assert.Equal(t, 8, rec.bytes)
}

type countingRecorder struct {
	frames int
	bytes  int
}

func (c *countingRecorder) FrameSent(n int) {
	c.frames++
	c.bytes += n
}
