package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/mfreeman451/camrelay/pkg/capture"
	"github.com/mfreeman451/camrelay/pkg/config"
	"github.com/mfreeman451/camrelay/pkg/metrics"
	"github.com/mfreeman451/camrelay/pkg/models"
	"golang.org/x/time/rate"
)

const (
	defaultAcceptRetryInterval = 100 * time.Millisecond
)

// ServerOption is a function type that modifies Server configuration.
type ServerOption func(*Server)

// Server is the relay's accept loop. It serves one client at a time: a new
// connection is only accepted after the previous session has closed.
type Server struct {
	listener      net.Listener
	source        capture.Source
	device        models.DeviceInfo
	frameInterval time.Duration
	collector     metrics.RelayCollector
	retry         *rate.Limiter
	startedAt     time.Time

	mu      sync.Mutex
	active  net.Conn
	cancel  context.CancelFunc
	stopped bool
}

// NewServer creates a relay server reading from source and accepting on listener.
func NewServer(listener net.Listener, source capture.Source, opts ...ServerOption) *Server {
	s := &Server{
		listener:      listener,
		source:        source,
		frameInterval: config.DefaultFrameInterval,
		retry:         rate.NewLimiter(rate.Every(defaultAcceptRetryInterval), 1),
		startedAt:     time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.collector == nil {
		s.collector = metrics.NewManager(models.MetricsConfig{})
	}

	return s
}

// WithFrameInterval sets the pause after every sent frame.
func WithFrameInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		s.frameInterval = d
	}
}

// WithCollector sets the metrics collector.
func WithCollector(c metrics.RelayCollector) ServerOption {
	return func(s *Server) {
		s.collector = c
	}
}

// WithDeviceInfo sets the device description reported by Status.
func WithDeviceInfo(info models.DeviceInfo) ServerOption {
	return func(s *Server) {
		s.device = info
	}
}

// WithAcceptRetryInterval sets the minimum spacing between accept retries.
func WithAcceptRetryInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		s.retry = rate.NewLimiter(rate.Every(d), 1)
	}
}

// Start runs the accept loop until Stop is called or ctx is canceled.
// Accept errors are logged and retried.
func (s *Server) Start(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		if err := s.shutdown(); err != nil {
			log.Printf("Error stopping relay: %v", err)
		}
	})
	defer stop()

	// Stop cancels this context to wake a session paused between frames.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !s.setCancel(cancel) {
		return nil
	}

	log.Printf("Relay accepting clients on %s", s.listener.Addr())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isStopped() {
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("%w: %w", errListenerClosed, err)
			}

			s.collector.AcceptFailed()
			log.Printf("Accept failed, retrying: %v", err)

			if err := s.retry.Wait(ctx); err != nil {
				return nil
			}

			continue
		}

		s.serve(ctx, conn)
	}
}

// Stop closes the listener and the active client connection, if any.
func (s *Server) Stop(_ context.Context) error {
	log.Printf("Stopping relay on %s", s.listener.Addr())

	return s.shutdown()
}

func (s *Server) shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}

	s.stopped = true

	if s.cancel != nil {
		s.cancel()
	}

	if s.active != nil {
		if err := s.active.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("Error closing active client: %v", err)
		}
	}

	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close listener: %w", err)
	}

	return nil
}

// setCancel records the session context's cancel func. It reports false
// when the server has already been stopped.
func (s *Server) setCancel(cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	s.cancel = cancel

	return true
}

func (s *Server) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopped
}

// setActive records conn as the live client. It reports false when the
// server has already been stopped.
func (s *Server) setActive(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conn != nil && s.stopped {
		return false
	}

	s.active = conn

	return true
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()

	if !s.setActive(conn) {
		_ = conn.Close()

		return
	}

	defer s.setActive(nil)

	started := time.Now()

	log.Printf("Client %s connected", remote)
	s.collector.SessionStarted(remote, started)

	session := NewSession(conn, s.source, SessionOptions{
		FrameInterval: s.frameInterval,
		Recorder:      s.collector,
	})

	result := session.Run(ctx)
	ended := time.Now()

	record := models.SessionRecord{
		RemoteAddr: remote,
		StartedAt:  started,
		EndedAt:    ended,
		Frames:     result.Frames,
		Bytes:      result.Bytes,
		Reason:     result.Reason,
		Duration:   ended.Sub(started),
	}

	if result.Err != nil {
		record.Error = result.Err.Error()
	}

	s.collector.SessionEnded(record)

	log.Printf("Client %s disconnected after %d frames (%s): %v", remote, result.Frames, result.Reason, result.Err)
}

// Status returns the current relay status.
func (s *Server) Status() models.RelayStatus {
	totals := s.collector.Totals()

	return models.RelayStatus{
		Device:        s.device,
		ListenAddr:    s.listener.Addr().String(),
		Streaming:     totals.Streaming,
		CurrentClient: totals.CurrentClient,
		ClientSince:   totals.ClientSince,
		TotalSessions: totals.Sessions,
		TotalFrames:   totals.Frames,
		TotalBytes:    totals.Bytes,
		AcceptErrors:  totals.AcceptErrors,
		StartedAt:     s.startedAt,
		UpTime:        time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// Sessions returns recent finished sessions, newest first.
func (s *Server) Sessions() []models.SessionRecord {
	return s.collector.Sessions()
}

// LatestSession returns the most recently finished session, or nil.
func (s *Server) LatestSession() *models.SessionRecord {
	return s.collector.LatestSession()
}
