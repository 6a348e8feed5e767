package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/mfreeman451/camrelay/pkg/capture"
	"github.com/mfreeman451/camrelay/pkg/models"
)

// FrameRecorder is notified after each frame is fully written.
type FrameRecorder interface {
	FrameSent(payloadBytes int)
}

// SessionOptions tunes a Session.
type SessionOptions struct {
	// FrameInterval is slept after every sent frame. Zero disables the pause.
	FrameInterval time.Duration

	// Recorder, when set, counts delivered frames.
	Recorder FrameRecorder

	// OnTransition, when set, is called on every state change.
	OnTransition func(from, to State)
}

// SessionResult summarizes a finished session.
type SessionResult struct {
	Frames int64
	Bytes  int64
	Reason models.CloseReason
	Err    error
}

// Session streams frames from one source to one client connection.
// It is not safe for concurrent use.
type Session struct {
	conn   io.WriteCloser
	source capture.Source
	opts   SessionOptions
	state  State
	buf    []byte
	header []byte
	frames int64
	bytes  int64
}

// NewSession creates a session in the negotiating state. The session owns
// conn and closes it when Run returns; source is only read.
func NewSession(conn io.WriteCloser, source capture.Source, opts SessionOptions) *Session {
	return &Session{
		conn:   conn,
		source: source,
		opts:   opts,
		state:  StateNegotiating,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run sends the stream header, then relays frames until the source stops
// producing data, a client write fails, or ctx is canceled.
func (s *Session) Run(ctx context.Context) SessionResult {
	if s.state != StateNegotiating {
		return SessionResult{Reason: models.ReasonNone, Err: fmt.Errorf("session already %s", s.state)}
	}

	if err := s.write(streamHeader); err != nil {
		return s.close(models.ReasonNegotiationFailed, fmt.Errorf("%w: %w", ErrNegotiationFailed, err))
	}

	frameSize := s.source.FrameSize()
	if frameSize <= 0 {
		return s.close(models.ReasonReadFailed, fmt.Errorf("%w: %w: %d", ErrReadFailed, errInvalidFrameSize, frameSize))
	}

	s.buf = make([]byte, frameSize)
	s.header = make([]byte, 0, maxPartHeaderLen)
	s.transition(StateStreaming)

	for {
		if reason, err := s.relayFrame(ctx); err != nil {
			return s.close(reason, err)
		}
	}
}

// relayFrame moves one frame from the source to the client, then waits out
// the frame interval.
func (s *Session) relayFrame(ctx context.Context) (models.CloseReason, error) {
	if err := ctx.Err(); err != nil {
		return models.ReasonCanceled, err
	}

	n, err := s.source.Read(s.buf)
	if err != nil {
		return models.ReasonReadFailed, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	if n <= 0 {
		return models.ReasonReadFailed, fmt.Errorf("%w: %w", ErrReadFailed, errEmptyFrame)
	}

	s.header = AppendPartHeader(s.header[:0], n)

	for _, p := range [][]byte{s.header, s.buf[:n], partTrailer} {
		if err := s.write(p); err != nil {
			return models.ReasonWriteFailed, err
		}
	}

	s.frames++
	s.bytes += int64(n)

	if s.opts.Recorder != nil {
		s.opts.Recorder.FrameSent(n)
	}

	if s.opts.FrameInterval <= 0 {
		return models.ReasonNone, nil
	}

	timer := time.NewTimer(s.opts.FrameInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.ReasonCanceled, ctx.Err()
	case <-timer.C:
		return models.ReasonNone, nil
	}
}

// write sends p in a single call. A short write counts as a failure.
func (s *Session) write(p []byte) error {
	n, err := s.conn.Write(p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if n != len(p) {
		return fmt.Errorf("%w: %w: %d of %d bytes", ErrWriteFailed, ErrShortWrite, n, len(p))
	}

	return nil
}

func (s *Session) close(reason models.CloseReason, cause error) SessionResult {
	s.buf = nil
	s.header = nil

	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("Error closing client connection: %v", err)
	}

	s.transition(StateClosed)

	return SessionResult{
		Frames: s.frames,
		Bytes:  s.bytes,
		Reason: reason,
		Err:    cause,
	}
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to

	if s.opts.OnTransition != nil {
		s.opts.OnTransition(from, to)
	}
}
